package authclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/infra/httpclient"
	"github.com/aalvaropc/modreg/internal/ports"
)

// errorPath locates the server-supplied message in an error response body.
const errorPath = "$.error"

// Client talks to the moderator registration endpoint.
type Client struct {
	exec     *httpclient.Executor
	endpoint string
	headers  map[string]string
}

type Option func(*Client)

// WithExecutor replaces the default executor.
func WithExecutor(e *httpclient.Executor) Option {
	return func(c *Client) { c.exec = e }
}

// WithHeader adds a header to every request.
func WithHeader(k, v string) Option {
	return func(c *Client) { c.headers[k] = v }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		exec:     httpclient.NewExecutor(),
		endpoint: endpoint,
		headers:  map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.AuthService = (*Client)(nil)

// Register posts req as JSON. A 2xx status is a transport-level success and the
// body is ignored; anything else becomes a *domain.ServiceError.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	httpReq, err := httpclient.BuildJSONRequest(ctx, http.MethodPost, c.endpoint, c.headers, req)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	resp, err := c.exec.Do(ctx, httpReq)
	if err != nil {
		return domain.RegisterResponse{}, &domain.OpError{
			Op:   "authclient.register",
			Kind: domain.KindTransport,
			Path: c.endpoint,
			Err:  err,
		}
	}

	if resp.Status >= 200 && resp.Status < 300 {
		return domain.RegisterResponse{Status: resp.Status}, nil
	}

	return domain.RegisterResponse{}, &domain.OpError{
		Op:   "authclient.register",
		Kind: domain.KindServer,
		Path: c.endpoint,
		Err: &domain.ServiceError{
			Status:  resp.Status,
			Message: errorMessage(resp.BodyBytes),
		},
	}
}

// errorMessage returns the "error" string from a JSON body as sent, or "".
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	val, err := jsonpath.Get(errorPath, doc)
	if err != nil {
		return ""
	}

	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}
