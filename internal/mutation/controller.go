// Package mutation provides a client-side controller governing one logical
// write endpoint: loading/error/warning/data state, double-submit protection,
// a bounded timeout, and envelope parsing. One controller instance binds one
// endpoint; instances are independent and safe for concurrent use.
package mutation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/result"
)

// DefaultTimeout bounds one mutation request. It is deliberately long:
// payloads may carry file uploads.
const DefaultTimeout = 60 * time.Second

const inFlightMessage = "En indsendelse er allerede i gang. Vent venligst på svar."

// Payload is a wire-ready request body produced by a Transform.
type Payload struct {
	Body        io.Reader
	ContentType string
}

// JSONPayload marshals v into an application/json payload.
func JSONPayload(v any) (Payload, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("marshaling mutation payload: %w", err)
	}
	return Payload{Body: bytes.NewReader(body), ContentType: "application/json"}, nil
}

// MultipartPayload builds a multipart/form-data payload: data is marshaled
// into the "data" part and each file list is attached under its field name.
func MultipartPayload(data any, files map[string][]NamedFile) (Payload, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(data)
	if err != nil {
		return Payload{}, fmt.Errorf("marshaling data part: %w", err)
	}
	if err := writer.WriteField("data", string(encoded)); err != nil {
		return Payload{}, fmt.Errorf("writing data part: %w", err)
	}
	for field, list := range files {
		for _, f := range list {
			part, err := writer.CreateFormFile(field, f.Name)
			if err != nil {
				return Payload{}, fmt.Errorf("creating file part %q: %w", field, err)
			}
			if _, err := part.Write(f.Data); err != nil {
				return Payload{}, fmt.Errorf("writing file part %q: %w", field, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return Payload{}, fmt.Errorf("closing multipart body: %w", err)
	}
	return Payload{Body: &buf, ContentType: writer.FormDataContentType()}, nil
}

// NamedFile is one file attachment in a multipart payload.
type NamedFile struct {
	Name string
	Data []byte
}

// State is a snapshot of a controller's lifecycle flags.
type State[D any] struct {
	IsLoading bool
	Error     string
	Warnings  []string
	Data      *D
}

// Options configures a Controller.
type Options[V, D any] struct {
	// Method defaults to POST.
	Method string
	URL    string
	// Transform maps variables to a wire payload. Nil means variables are
	// marshaled as JSON.
	Transform func(V) (Payload, error)
	// Timeout defaults to DefaultTimeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	// Token, when set, is sent as a bearer token.
	Token     string
	OnSuccess func(D, []string)
	OnError   func(*apperr.Error)
}

// Controller wraps one write endpoint. At most one request per instance is
// ever outstanding; a second Mutate while one is pending fails immediately
// without touching the network.
type Controller[V, D any] struct {
	opts Options[V, D]

	mu       sync.Mutex
	inFlight bool
	state    State[D]
}

// NewController creates a controller for one endpoint, applying defaults.
func NewController[V, D any](opts Options[V, D]) *Controller[V, D] {
	if opts.Method == "" {
		opts.Method = http.MethodPost
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Transform == nil {
		opts.Transform = func(v V) (Payload, error) { return JSONPayload(v) }
	}
	return &Controller[V, D]{opts: opts}
}

// State returns a snapshot of the controller's current lifecycle flags.
func (c *Controller[V, D]) State() State[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.state
	if c.state.Warnings != nil {
		snapshot.Warnings = append([]string(nil), c.state.Warnings...)
	}
	return snapshot
}

// envelope is the wire contract shared with the HTTP layer.
type envelope struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    string          `json:"error,omitempty"`
	Code     apperr.Code     `json:"code,omitempty"`
	Details  json.RawMessage `json:"details,omitempty"`
}

// Mutate issues one request through the controller's lifecycle. It rejects
// immediately if a prior call on this instance is still pending.
func (c *Controller[V, D]) Mutate(ctx context.Context, variables V) result.WithWarnings[D] {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		log.Warn("Mutation rejected, one already in flight", "url", c.opts.URL)
		return result.ErrWith[D](apperr.Validation(inFlightMessage))
	}
	c.inFlight = true
	c.state = State[D]{IsLoading: true}
	c.mu.Unlock()

	res := c.dispatch(ctx, variables)
	c.settle(res)
	return res
}

func (c *Controller[V, D]) dispatch(ctx context.Context, variables V) result.WithWarnings[D] {
	payload, err := c.opts.Transform(variables)
	if err != nil {
		return result.ErrWith[D](apperr.Internal("Kunne ikke forberede forespørgslen.").WithCause(err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, c.opts.Method, c.opts.URL, payload.Body)
	if err != nil {
		return result.ErrWith[D](apperr.Internal("").WithCause(err))
	}
	req.Header.Set("Content-Type", payload.ContentType)
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result.ErrWith[D](apperr.Timeout("").WithCause(err))
		}
		return result.ErrWith[D](apperr.Network("").WithCause(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result.ErrWith[D](apperr.Network("").WithCause(err))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return result.ErrWith[D](apperr.Upstream(resp.StatusCode, "Serveren gav et uventet svar.").WithCause(err))
	}
	if !env.Success {
		return result.ErrWith[D](c.envelopeError(resp.StatusCode, env))
	}

	var data D
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return result.ErrWith[D](apperr.Upstream(resp.StatusCode, "Serveren gav et uventet svar.").WithCause(err))
		}
	}
	return result.OkWith(data, env.Warnings)
}

// envelopeError rebuilds an *apperr.Error from a failure envelope, keeping
// the server's code and message when present.
func (c *Controller[V, D]) envelopeError(status int, env envelope) *apperr.Error {
	message := env.Error
	if message == "" {
		message = "Der opstod en ukendt fejl."
	}
	code := env.Code
	if code == "" {
		code = apperr.CodeUpstream
	}
	appErr := &apperr.Error{Code: code, Status: status, Message: message}
	if len(env.Details) > 0 {
		appErr.Details = env.Details
	}
	return appErr
}

// settle records the outcome, fires the matching hook, and releases the
// in-flight guard so a subsequent Mutate can proceed.
func (c *Controller[V, D]) settle(res result.WithWarnings[D]) {
	c.mu.Lock()
	c.inFlight = false
	if res.IsOk() {
		value := res.Value()
		c.state = State[D]{Warnings: res.Warnings(), Data: &value}
	} else {
		c.state = State[D]{Error: res.Err().Message}
	}
	c.mu.Unlock()

	if res.IsOk() {
		if c.opts.OnSuccess != nil {
			c.opts.OnSuccess(res.Value(), res.Warnings())
		}
		return
	}
	log.Warn("Mutation failed", "url", c.opts.URL, "code", res.Err().Code, "error", res.Err().Message)
	if c.opts.OnError != nil {
		c.opts.OnError(res.Err())
	}
}
