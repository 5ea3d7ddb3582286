package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/metrics"
)

// APIClient is the HTTP implementation of the Client interface.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	metrics    metrics.Metrics
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// NewClient creates a store client bound to the given bearer token. Pass the
// server API token for the composition root's own client; per-request clients
// are derived from it with WithToken.
func NewClient(baseURL, token string, m metrics.Metrics) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
		metrics:    m,
	}
}

// NewClientWithHTTP creates a client with a specific http.Client instance.
// Useful for tests that need to intercept transport behavior.
func NewClientWithHTTP(httpClient *http.Client, baseURL, token string, m metrics.Metrics) *APIClient {
	return &APIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		metrics:    m,
	}
}

func (c *APIClient) WithToken(token string) Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *APIClient) Find(ctx context.Context, collection string, q Query) (*DocumentList, error) {
	endpoint := "/api/" + collection
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	env, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var docs []json.RawMessage
	if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		if err := json.Unmarshal(env.Data, &docs); err != nil {
			return nil, apperr.Upstream(0, "Uventet svar fra indholdsserveren.").WithCause(err)
		}
	}
	list := &DocumentList{Documents: docs}
	if env.Meta != nil {
		list.Pagination = env.Meta.Pagination
	}
	return list, nil
}

func (c *APIClient) FindOne(ctx context.Context, collection, documentID string, q Query) (json.RawMessage, error) {
	endpoint := "/api/" + collection + "/" + url.PathEscape(documentID)
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	env, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return nil, nil
	}
	return env.Data, nil
}

func (c *APIClient) Create(ctx context.Context, collection string, data any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	env, err := c.do(ctx, http.MethodPost, "/api/"+collection, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *APIClient) Update(ctx context.Context, collection, documentID string, data any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	endpoint := "/api/" + collection + "/" + url.PathEscape(documentID)
	env, err := c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *APIClient) Delete(ctx context.Context, collection, documentID string) error {
	endpoint := "/api/" + collection + "/" + url.PathEscape(documentID)
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	return err
}

// Upload sends files to the store's upload endpoint, optionally linked to an
// owning record via ref/refId/field in the same multipart call.
func (c *APIClient) Upload(ctx context.Context, req UploadRequest) ([]UploadedFile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range req.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Name))
		if f.ContentType != "" {
			header.Set("Content-Type", f.ContentType)
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, apperr.Internal("").WithCause(err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, apperr.Internal("").WithCause(err)
		}
	}
	if req.Ref != "" {
		_ = writer.WriteField("ref", req.Ref)
		_ = writer.WriteField("refId", strconv.Itoa(req.RefID))
		_ = writer.WriteField("field", req.Field)
	}
	if err := writer.Close(); err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	c.setAuth(httpReq)

	respBody, status, err := c.roundTrip(httpReq)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, classifyStatus(status, upstreamMessage(respBody))
	}

	// The upload endpoint answers with a bare array, not the data envelope.
	var uploaded []UploadedFile
	if err := json.Unmarshal(respBody, &uploaded); err != nil {
		return nil, apperr.Upstream(0, "Uventet svar fra upload-endepunktet.").WithCause(err)
	}
	return uploaded, nil
}

func (c *APIClient) Login(ctx context.Context, identifier, password string) (*AuthSession, error) {
	body, err := json.Marshal(map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/local", bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, status, err := c.roundTrip(httpReq)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized {
			return nil, apperr.Unauthorized("Forkert brugernavn eller adgangskode.")
		}
		return nil, classifyStatus(status, upstreamMessage(respBody))
	}

	var session struct {
		JWT  string          `json:"jwt"`
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, apperr.Upstream(0, "Uventet svar fra login-endepunktet.").WithCause(err)
	}
	if session.JWT == "" {
		return nil, apperr.Unauthorized("Forkert brugernavn eller adgangskode.")
	}
	return &AuthSession{Token: session.JWT, User: session.User}, nil
}

func (c *APIClient) Me(ctx context.Context) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	c.setAuth(httpReq)

	respBody, status, err := c.roundTrip(httpReq)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, classifyStatus(status, upstreamMessage(respBody))
	}
	return respBody, nil
}

// do performs an envelope-shaped request against the store and classifies
// transport and API failures into apperr values.
func (c *APIClient) do(ctx context.Context, method, endpoint string, body io.Reader) (*envelope, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, apperr.Internal("").WithCause(err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(httpReq)

	respBody, status, err := c.roundTrip(httpReq)
	if err != nil {
		return nil, err
	}

	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			if status >= 200 && status < 300 {
				return nil, apperr.Upstream(0, "Uventet svar fra indholdsserveren.").WithCause(err)
			}
			return nil, classifyStatus(status, "")
		}
	}

	if status < 200 || status >= 300 {
		message := ""
		if env.Error != nil {
			message = env.Error.Message
		}
		return nil, classifyStatus(status, message)
	}
	return &env, nil
}

func (c *APIClient) setAuth(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *APIClient) roundTrip(req *http.Request) ([]byte, int, error) {
	c.metrics.IncStoreRequests()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveStoreRequestDuration(time.Since(start).Seconds())
	if err != nil {
		c.metrics.IncStoreErrors()
		log.Error("Store request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, 0, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncStoreErrors()
		return nil, 0, apperr.Network("").WithCause(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncStoreErrors()
		log.Warn("Store returned non-2xx status", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	}
	log.Debug("Store request completed", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	return respBody, resp.StatusCode, nil
}

// classifyTransport distinguishes timeouts from other transport failures.
func classifyTransport(err error) *apperr.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Timeout("").WithCause(err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperr.Timeout("").WithCause(err)
	}
	return apperr.Network("").WithCause(err)
}

// classifyStatus maps a store HTTP status to the closed error taxonomy.
func classifyStatus(status int, message string) *apperr.Error {
	switch status {
	case http.StatusBadRequest:
		if message == "" {
			message = "Serveren afviste forespørgslen."
		}
		return apperr.Validation(message)
	case http.StatusUnauthorized:
		return apperr.Unauthorized("")
	case http.StatusForbidden:
		return apperr.Forbidden("")
	case http.StatusNotFound:
		return apperr.NotFound("")
	case http.StatusConflict:
		return apperr.AlreadyExists("Indholdet findes allerede.")
	case http.StatusRequestEntityTooLarge:
		return apperr.FileTooLarge("Filen er for stor.")
	default:
		if message == "" {
			message = fmt.Sprintf("Indholdsserveren svarede med fejl (%d).", status)
		}
		return apperr.Upstream(status, message)
	}
}

// upstreamMessage extracts the store's error message from a raw body, if any.
func upstreamMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == nil {
		return ""
	}
	return env.Error.Message
}
