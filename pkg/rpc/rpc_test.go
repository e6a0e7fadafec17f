package rpc_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	goclient "github.com/mutablelogic/go-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

type echoInput struct {
	Value string `json:"value"`
}

type echoOutput struct {
	Echo string `json:"echo"`
}

var errBoom = errors.New("boom")

func testRouter() *rpc.Router {
	return rpc.NewRouter(map[string]rpc.Procedures{
		"echo": {
			"get": rpc.Query(func(ctx context.Context, in echoInput) (echoOutput, error) {
				return echoOutput{Echo: in.Value}, nil
			}),
			"set": rpc.Mutation(func(ctx context.Context, in echoInput) (echoOutput, error) {
				if in.Value == "" {
					return echoOutput{}, rpc.NewError(http.StatusBadRequest, "value is required")
				}
				return echoOutput{Echo: strings.ToUpper(in.Value)}, nil
			}),
			"fail": rpc.Mutation(func(ctx context.Context, in echoInput) (echoOutput, error) {
				return echoOutput{}, errBoom
			}),
		},
		"other": {
			"ping": rpc.Query(func(ctx context.Context, _ struct{}) (string, error) {
				return "pong", nil
			}),
		},
	})
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouter_Lookup(t *testing.T) {
	r := testRouter()

	tests := []struct {
		path string
		ok   bool
		kind rpc.Kind
	}{
		{"echo.get", true, rpc.KindQuery},
		{"echo.set", true, rpc.KindMutation},
		{"other.ping", true, rpc.KindQuery},
		{"echo.missing", false, ""},
		{"missing.get", false, ""},
		{"echo", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			proc, ok := r.Lookup(tt.path)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.kind, proc.Kind)
			}
		})
	}
}

func TestRouter_Paths(t *testing.T) {
	r := testRouter()

	assert.Equal(t, []string{"echo.fail", "echo.get", "echo.set", "other.ping"}, r.Paths())
	assert.Equal(t, []string{"echo", "other"}, r.Namespaces())
}

func TestRouter_CallForwardsUnchanged(t *testing.T) {
	r := testRouter()

	result, err := r.Call(context.Background(), "echo.get", json.RawMessage(`{"value":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, echoOutput{Echo: "hi"}, result)

	_, err = r.Call(context.Background(), "echo.fail", nil)
	assert.Same(t, errBoom, err)
}

func TestRouter_CallUnknownPath(t *testing.T) {
	r := testRouter()

	_, err := r.Call(context.Background(), "echo.nope", nil)

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusNotFound, rpcErr.Status)
	assert.Equal(t, rpc.CodeNotFound, rpcErr.Code)
}

func TestRouter_CopiesTable(t *testing.T) {
	procs := rpc.Procedures{
		"ping": rpc.Query(func(ctx context.Context, _ struct{}) (string, error) { return "pong", nil }),
	}
	r := rpc.NewRouter(map[string]rpc.Procedures{"a": procs})

	delete(procs, "ping")

	_, ok := r.Lookup("a.ping")
	assert.True(t, ok)
}

func TestProcedure_InvalidInput(t *testing.T) {
	r := testRouter()

	_, err := r.Call(context.Background(), "echo.get", json.RawMessage(`{"value":1}`))

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusBadRequest, rpcErr.Status)
}

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, rpc.Wrap(http.StatusBadRequest, nil))
	})

	t.Run("plain error", func(t *testing.T) {
		err := rpc.Wrap(http.StatusConflict, errBoom)
		assert.Equal(t, http.StatusConflict, err.Status)
		assert.Equal(t, rpc.CodeConflict, err.Code)
		assert.Equal(t, "boom", err.Message)
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("already wrapped", func(t *testing.T) {
		inner := rpc.NewError(http.StatusNotFound, "gone")
		err := rpc.Wrap(http.StatusInternalServerError, fmt.Errorf("ctx: %w", inner))
		assert.Same(t, inner, err)
	})
}

func TestHandler(t *testing.T) {
	h := rpc.NewHandler(testRouter(), discard())

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCode   string
		wantData   string
	}{
		{
			name:       "query",
			method:     http.MethodGet,
			target:     "/echo.get?input=" + url.QueryEscape(`{"value":"hi"}`),
			wantStatus: http.StatusOK,
			wantData:   `{"echo":"hi"}`,
		},
		{
			name:       "query without input",
			method:     http.MethodGet,
			target:     "/other.ping",
			wantStatus: http.StatusOK,
			wantData:   `"pong"`,
		},
		{
			name:       "mutation",
			method:     http.MethodPost,
			target:     "/echo.set",
			body:       `{"value":"hi"}`,
			wantStatus: http.StatusOK,
			wantData:   `{"echo":"HI"}`,
		},
		{
			name:       "mutation via GET",
			method:     http.MethodGet,
			target:     "/echo.set",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   rpc.CodeMethodNotSupported,
		},
		{
			name:       "query via POST",
			method:     http.MethodPost,
			target:     "/echo.get",
			body:       `{}`,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   rpc.CodeMethodNotSupported,
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			target:     "/echo.nope",
			wantStatus: http.StatusNotFound,
			wantCode:   rpc.CodeNotFound,
		},
		{
			name:       "procedure error",
			method:     http.MethodPost,
			target:     "/echo.set",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   rpc.CodeBadRequest,
		},
		{
			name:       "unexpected error",
			method:     http.MethodPost,
			target:     "/echo.fail",
			body:       `{}`,
			wantStatus: http.StatusInternalServerError,
			wantCode:   rpc.CodeInternal,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			target:     "/echo.set",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantCode:   rpc.CodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var envelope struct {
				Result *struct {
					Data json.RawMessage `json:"data"`
				} `json:"result"`
				Error *rpc.Error `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				assert.Equal(t, tt.wantStatus, envelope.Error.Status)
				assert.NotEmpty(t, envelope.Error.Message)
				return
			}

			require.NotNil(t, envelope.Result)
			assert.JSONEq(t, tt.wantData, string(envelope.Result.Data))
		})
	}
}

func TestHandler_AllowHeader(t *testing.T) {
	h := rpc.NewHandler(testRouter(), discard())

	req := httptest.NewRequest(http.MethodGet, "/echo.set", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(rpc.NewHandler(testRouter(), discard()))
	defer srv.Close()

	client, err := rpc.NewClient(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("query", func(t *testing.T) {
		out, err := rpc.CallQuery[echoOutput](ctx, client, "echo.get", echoInput{Value: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hi", out.Echo)
	})

	t.Run("mutation", func(t *testing.T) {
		out, err := rpc.CallMutation[echoOutput](ctx, client, "echo.set", echoInput{Value: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "HI", out.Echo)
	})

	t.Run("server message", func(t *testing.T) {
		_, err := rpc.CallMutation[echoOutput](ctx, client, "echo.set", echoInput{})

		var rpcErr *rpc.Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, "value is required", rpcErr.Message)
		assert.Equal(t, http.StatusBadRequest, rpcErr.Status)
		assert.EqualError(t, err, "value is required")
	})

	t.Run("wrong kind", func(t *testing.T) {
		_, err := rpc.CallQuery[echoOutput](ctx, client, "echo.set", echoInput{Value: "hi"})

		var rpcErr *rpc.Error
		require.ErrorAs(t, err, &rpcErr)
		assert.Equal(t, http.StatusMethodNotAllowed, rpcErr.Status)
	})
}

func TestClient_Header(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Test")
		w.Write([]byte(`{"result":{"data":null}}`))
	}))
	defer srv.Close()

	client, err := rpc.NewClient(srv.URL, goclient.OptHeader("X-Test", "yes"))
	require.NoError(t, err)
	_, err = client.Do(context.Background(), rpc.KindQuery, "any.thing", nil)
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestClient_NonEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := rpc.NewClient(srv.URL)
	require.NoError(t, err)
	_, err = client.Do(context.Background(), rpc.KindQuery, "a.b", nil)

	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusBadGateway, rpcErr.Status)
}

func TestLocal(t *testing.T) {
	local := rpc.NewLocal(testRouter())
	ctx := context.Background()

	out, err := rpc.CallMutation[echoOutput](ctx, local, "echo.set", echoInput{Value: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ABC", out.Echo)

	_, err = rpc.CallMutation[echoOutput](ctx, local, "echo.fail", echoInput{})
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "boom", rpcErr.Message)

	_, err = rpc.CallQuery[echoOutput](ctx, local, "echo.set", echoInput{})
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, http.StatusMethodNotAllowed, rpcErr.Status)
}
