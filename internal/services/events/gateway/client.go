// Package gateway is the HTTP client for the remote data gateway that owns
// the users and events collections.
//
// The gateway speaks the json-server dialect: collections under /users and
// /events, page listing through _page and _limit with an X-Total-Count
// header, and substring filtering through <field>_like.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/eventboard/internal/platform/errors"
	platformotel "github.com/louisbranch/eventboard/internal/platform/otel"
	"github.com/louisbranch/eventboard/internal/platform/timeouts"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
)

// TotalCountHeader carries the collection size on paged responses.
const TotalCountHeader = "X-Total-Count"

// RequestIDHeader correlates gateway calls with inbound requests.
const RequestIDHeader = "X-Request-ID"

const tracerName = "github.com/louisbranch/eventboard/internal/services/events/gateway"

// maxErrorBody bounds how much of a failed response is kept for messages.
const maxErrorBody = 512

// Config defines the gateway client inputs.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client issues typed requests against the remote data gateway.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// Page is one page of events plus the collection size the gateway reported.
type Page struct {
	Events     []domain.Event
	TotalCount int
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("gateway base url is required")
	}
	baseURL, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse gateway base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("gateway base url must be http or https: %q", raw)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.GatewayRequest
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		tracer:     platformotel.Tracer(tracerName),
		propagator: platformotel.Propagator(),
	}, nil
}

// ListUsers returns the full user collection.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if _, err := c.do(ctx, "list_users", http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListEvents returns the full event collection.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if _, err := c.do(ctx, "list_events", http.MethodGet, "/events", nil, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsPage returns one page of events. TotalCount comes from the
// X-Total-Count header and falls back to the page length when absent.
func (c *Client) ListEventsPage(ctx context.Context, page, limit int) (Page, error) {
	query := url.Values{}
	query.Set("_page", strconv.Itoa(page))
	query.Set("_limit", strconv.Itoa(limit))

	var events []domain.Event
	header, err := c.do(ctx, "list_events_page", http.MethodGet, "/events", query, nil, &events)
	if err != nil {
		return Page{}, err
	}
	total := len(events)
	if raw := strings.TrimSpace(header.Get(TotalCountHeader)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Page{}, apperrors.Wrap(apperrors.KindParse, "error.gateway_decode", "parse total count header", fmt.Errorf("invalid %s %q", TotalCountHeader, raw))
		}
		total = parsed
	}
	return Page{Events: events, TotalCount: total}, nil
}

// SearchEvents returns events whose name contains name and whose date equals
// date. Empty arguments do not filter.
func (c *Client) SearchEvents(ctx context.Context, name, date string) ([]domain.Event, error) {
	query := url.Values{}
	if name = strings.TrimSpace(name); name != "" {
		query.Set("name_like", name)
	}
	if date = strings.TrimSpace(date); date != "" {
		query.Set("date", date)
	}
	var events []domain.Event
	if _, err := c.do(ctx, "search_events", http.MethodGet, "/events", query, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns one event.
func (c *Client) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	var event domain.Event
	if _, err := c.do(ctx, "get_event", http.MethodGet, eventPath(id), nil, nil, &event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// CreateEvent creates an event and returns it with the server-assigned id.
func (c *Client) CreateEvent(ctx context.Context, input domain.NewEvent) (domain.Event, error) {
	if input.Participants == nil {
		input.Participants = []domain.Participant{}
	}
	var event domain.Event
	if _, err := c.do(ctx, "create_event", http.MethodPost, "/events", nil, input, &event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// PatchEvent applies a partial update and returns the stored event.
func (c *Client) PatchEvent(ctx context.Context, id int64, patch domain.EventPatch) (domain.Event, error) {
	var event domain.Event
	if _, err := c.do(ctx, "patch_event", http.MethodPatch, eventPath(id), nil, patchBody(patch), &event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	_, err := c.do(ctx, "delete_event", http.MethodDelete, eventPath(id), nil, nil, nil)
	return err
}

func eventPath(id int64) string {
	return "/events/" + strconv.FormatInt(id, 10)
}

// patchBody keeps an explicit empty participant list on the wire so that
// removing the last participant is not mistaken for "unchanged".
func patchBody(patch domain.EventPatch) map[string]any {
	body := map[string]any{}
	if patch.Name != nil {
		body["name"] = *patch.Name
	}
	if patch.Date != nil {
		body["date"] = *patch.Date
	}
	if patch.Participants != nil {
		body["participants"] = patch.Participants
	}
	return body
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) (http.Header, error) {
	if c == nil || c.baseURL == nil {
		return nil, apperrors.EK(apperrors.KindUnavailable, "error.gateway_unreachable", "gateway client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "gateway."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	target := *c.baseURL
	target.Path = c.baseURL.Path + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(span, apperrors.Wrap(apperrors.KindInvalidInput, "", "encode "+op+" request", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, c.fail(span, apperrors.Wrap(apperrors.KindTransport, "error.gateway_unreachable", "build "+op+" request", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, requestIDFromContext(ctx))
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(span, apperrors.Wrap(apperrors.KindTransport, "error.gateway_unreachable", op, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.Header, c.fail(span, statusError(op, resp.StatusCode, snippet))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, c.fail(span, apperrors.Wrap(apperrors.KindParse, "error.gateway_decode", "decode "+op+" response", err))
	}
	return resp.Header, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func statusError(op string, status int, body []byte) error {
	cause := fmt.Errorf("status %d", status)
	if text := strings.TrimSpace(string(body)); text != "" {
		cause = fmt.Errorf("status %d: %s", status, text)
	}
	if status == http.StatusNotFound {
		return apperrors.Wrap(apperrors.KindNotFound, "error.event_not_found", op, cause)
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "error.gateway_status", op, cause)
}

type requestIDKey struct{}

// WithRequestID stores an inbound request id so gateway calls reuse it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	requestID = strings.TrimSpace(requestID)
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if value, ok := ctx.Value(requestIDKey{}).(string); ok && value != "" {
			return value
		}
	}
	return uuid.NewString()
}
