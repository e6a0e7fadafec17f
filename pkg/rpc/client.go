package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	client "github.com/mutablelogic/go-client"
	"go.opentelemetry.io/otel"
)

// Caller invokes procedures and returns the raw JSON result data.
type Caller interface {
	Do(ctx context.Context, kind Kind, path string, input any) (json.RawMessage, error)
}

// Client calls procedures served by a remote Handler.
type Client struct {
	*client.Client
}

// NewClient creates a client for the handler mounted at baseURL,
// e.g. "http://localhost:8080/api/rpc". Calls are traced with the package
// tracer unless opts supply another.
func NewClient(baseURL string, opts ...client.ClientOpt) (*Client, error) {
	defaults := []client.ClientOpt{
		client.OptEndpoint(strings.TrimSuffix(baseURL, "/")),
		client.OptTracer(otel.Tracer(tracerName)),
	}

	c, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("rpc client: %w", err)
	}
	return &Client{Client: c}, nil
}

// Do performs the call. A failure reported by the server is returned as an
// *Error carrying the server's message.
func (c *Client) Do(ctx context.Context, kind Kind, path string, input any) (json.RawMessage, error) {
	var (
		payload client.Payload
		reqOpts = []client.RequestOpt{client.OptPath(path)}
	)

	if kind == KindMutation {
		p, err := client.NewJSONRequest(input)
		if err != nil {
			return nil, fmt.Errorf("encode input: %w", err)
		}
		payload = p
	} else {
		data, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("encode input: %w", err)
		}
		reqOpts = append(reqOpts, client.OptQuery(url.Values{"input": {string(data)}}))
	}

	var env envelope
	if err := c.DoWithContext(ctx, payload, &env, reqOpts...); err != nil {
		return nil, failure(err)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Result == nil {
		return nil, fmt.Errorf("decode %s response: missing result", path)
	}
	return env.Result.Data, nil
}

// envelope is the response body written by Handler.
type envelope struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *Error `json:"error"`
}

// Unmarshal decodes the envelope whatever the response content type.
func (e *envelope) Unmarshal(header http.Header, body io.Reader) error {
	if err := json.NewDecoder(body).Decode(e); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var statusPattern = regexp.MustCompile(`\b[45]\d\d\b`)

// failure recovers the server's error envelope from a non-2xx response
// reported by go-client, which appends the response body to its error.
// Bodies without an envelope keep the response status.
func failure(err error) error {
	text := err.Error()

	if i := strings.Index(text, `{"error"`); i >= 0 {
		var env envelope
		if json.NewDecoder(strings.NewReader(text[i:])).Decode(&env) == nil && env.Error != nil {
			return env.Error
		}
	}

	if m := statusPattern.FindString(text); m != "" {
		status, _ := strconv.Atoi(m)
		return &Error{Status: status, Code: CodeFor(status), Message: text, err: err}
	}
	return fmt.Errorf("call: %w", err)
}

// Local calls procedures on an in-process Router, round-tripping inputs and
// results through JSON the same way the HTTP transport does.
type Local struct {
	router *Router
}

// NewLocal creates a Caller bound to router.
func NewLocal(router *Router) *Local {
	return &Local{router: router}
}

// Do calls the procedure at path. kind must match the procedure's kind.
func (l *Local) Do(ctx context.Context, kind Kind, path string, input any) (json.RawMessage, error) {
	proc, ok := l.router.Lookup(path)
	if !ok {
		return nil, NewError(http.StatusNotFound, fmt.Sprintf("procedure not found: %s", path))
	}
	if proc.Kind != kind {
		return nil, NewError(http.StatusMethodNotAllowed, fmt.Sprintf("%s procedure %s called as %s", proc.Kind, path, kind))
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}

	result, err := l.router.Call(ctx, path, payload)
	if err != nil {
		return nil, AsError(err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

// CallQuery invokes a query procedure and decodes its result into Out.
func CallQuery[Out any](ctx context.Context, c Caller, path string, input any) (Out, error) {
	return call[Out](ctx, c, KindQuery, path, input)
}

// CallMutation invokes a mutation procedure and decodes its result into Out.
func CallMutation[Out any](ctx context.Context, c Caller, path string, input any) (Out, error) {
	return call[Out](ctx, c, KindMutation, path, input)
}

func call[Out any](ctx context.Context, c Caller, kind Kind, path string, input any) (Out, error) {
	var out Out

	data, err := c.Do(ctx, kind, path, input)
	if err != nil {
		return out, err
	}

	if len(data) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s result: %w", path, err)
	}
	return out, nil
}
