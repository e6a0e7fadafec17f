package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/JaimeStill/agent-meet/pkg/handlers"
)

const tracerName = "github.com/JaimeStill/agent-meet/pkg/rpc"

type resultEnvelope struct {
	Result resultData `json:"result"`
}

type resultData struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error *Error `json:"error"`
}

// Handler serves a Router over HTTP. The procedure path is the request path
// relative to where the handler is mounted.
type Handler struct {
	router *Router
	logger *slog.Logger
	tracer trace.Tracer
}

// NewHandler creates the HTTP transport for router.
func NewHandler(router *Router, logger *slog.Logger) *Handler {
	return &Handler{
		router: router,
		logger: logger.With("system", "rpc"),
		tracer: otel.Tracer(tracerName),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")

	proc, ok := h.router.Lookup(path)
	if !ok {
		h.fail(w, path, NewError(http.StatusNotFound, fmt.Sprintf("procedure not found: %s", path)))
		return
	}

	if r.Method != proc.Kind.Method() {
		w.Header().Set("Allow", proc.Kind.Method())
		h.fail(w, path, NewError(
			http.StatusMethodNotAllowed,
			fmt.Sprintf("%s procedure %s requires %s", proc.Kind, path, proc.Kind.Method()),
		))
		return
	}

	input, err := readInput(r, proc.Kind)
	if err != nil {
		h.fail(w, path, err)
		return
	}

	ctx, span := h.tracer.Start(r.Context(), path,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("rpc.path", path),
			attribute.String("rpc.kind", string(proc.Kind)),
		),
	)
	defer span.End()

	result, err := proc.Handler(ctx, input)
	if err != nil {
		rpcErr := AsError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, rpcErr.Message)
		span.SetAttributes(attribute.Int("rpc.status", rpcErr.Status))

		if rpcErr.Status >= http.StatusInternalServerError {
			h.logger.Error("rpc error", "path", path, "error", err)
		}
		h.fail(w, path, rpcErr)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resultEnvelope{Result: resultData{Data: result}})
}

func (h *Handler) fail(w http.ResponseWriter, path string, err error) {
	rpcErr := AsError(err)
	h.logger.Debug("rpc failure", "path", path, "status", rpcErr.Status, "code", rpcErr.Code)
	handlers.RespondJSON(w, rpcErr.Status, errorEnvelope{Error: rpcErr})
}

func readInput(r *http.Request, kind Kind) (json.RawMessage, error) {
	if kind == KindQuery {
		raw := r.URL.Query().Get("input")
		if raw == "" {
			return nil, nil
		}
		if !json.Valid([]byte(raw)) {
			return nil, NewError(http.StatusBadRequest, "input is not valid JSON")
		}
		return json.RawMessage(raw), nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, NewError(http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
		}
		return nil, Wrap(http.StatusBadRequest, fmt.Errorf("read body: %w", err))
	}

	if len(body) > 0 && !json.Valid(body) {
		return nil, NewError(http.StatusBadRequest, "input is not valid JSON")
	}
	return body, nil
}
