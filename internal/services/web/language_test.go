package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/login", want: language.AmericanEnglish},
		{name: "query wins", target: "/login?lang=pt-BR", cookie: "en-US", accept: "en-US", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "cookie", target: "/login", cookie: "pt-BR", accept: "en-US", want: language.BrazilianPortuguese},
		{name: "accept language", target: "/login", accept: "pt-BR,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "unknown query falls through", target: "/login?lang=xx", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req)
			if got != tc.want {
				t.Fatalf("ResolveTag() = %v, want %v", got, tc.want)
			}
			if persist != tc.wantPersist {
				t.Fatalf("persist = %t, want %t", persist, tc.wantPersist)
			}
		})
	}
}

func TestResolveLocalizerPersistsQueryChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	_, lang := resolveLocalizer(rr, httptest.NewRequest(http.MethodGet, "/login?lang=pt-BR", nil))
	if lang != "pt-BR" {
		t.Fatalf("lang = %q, want pt-BR", lang)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != LangCookieName || cookie.Value != "pt-BR" {
		t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
	}
}
