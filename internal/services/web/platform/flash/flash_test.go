package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	writeRR := httptest.NewRecorder()

	Write(writeRR, req, NoticeSuccess("notice.event_created"))
	setCookieHeader := writeRR.Header().Get("Set-Cookie")
	if setCookieHeader == "" {
		t.Fatalf("expected Set-Cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)

	readRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(readRR, req)
	if !ok {
		t.Fatalf("ReadAndClear() ok = false, want true")
	}
	if notice.Kind != KindSuccess {
		t.Fatalf("notice.Kind = %q, want %q", notice.Kind, KindSuccess)
	}
	if notice.Key != "notice.event_created" {
		t.Fatalf("notice.Key = %q", notice.Key)
	}
	if cleared := readRR.Header().Get("Set-Cookie"); !strings.Contains(cleared, "Max-Age=0") {
		t.Fatalf("clear Set-Cookie = %q, want expired cookie", cleared)
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64"})
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req); ok {
		t.Fatalf("ReadAndClear() ok = true, want false")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
}

func TestReadAndClearWithoutCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if _, ok := ReadAndClear(rr, httptest.NewRequest(http.MethodGet, "/events", nil)); ok {
		t.Fatal("ReadAndClear() ok = true, want false")
	}
	if got := rr.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want empty", got)
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	for _, notice := range []Notice{{Kind: KindSuccess}, {Kind: "shout", Key: "notice.signed_in"}} {
		rr := httptest.NewRecorder()
		Write(rr, req, notice)
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Write(%+v) Set-Cookie = %q, want empty", notice, got)
		}
	}
}

func TestWriteMarksCookieSecureBehindHTTPSProxy(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()
	Write(rr, req, NoticeError("error.event_exists"))
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if !cookie.Secure {
		t.Fatal("expected secure cookie")
	}
}
