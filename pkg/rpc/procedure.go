// Package rpc implements a typed procedure router with a JSON over HTTP
// transport and a matching client.
//
// Procedures are grouped in namespaces and addressed by "namespace.name"
// paths. Queries are served over GET with the input in the "input" query
// parameter, mutations over POST with the input as the request body.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind distinguishes read procedures from procedures that change state.
type Kind string

const (
	KindQuery    Kind = "query"
	KindMutation Kind = "mutation"
)

// Method returns the HTTP method the transport accepts for k.
func (k Kind) Method() string {
	if k == KindMutation {
		return http.MethodPost
	}
	return http.MethodGet
}

// HandlerFunc executes a procedure against its raw JSON input.
type HandlerFunc func(ctx context.Context, input json.RawMessage) (any, error)

// Procedure is a single callable endpoint.
type Procedure struct {
	Kind    Kind
	Handler HandlerFunc
}

// Procedures is a namespace: procedure name to procedure.
type Procedures map[string]Procedure

// Query adapts a typed read function into a Procedure.
func Query[In, Out any](fn func(context.Context, In) (Out, error)) Procedure {
	return Procedure{Kind: KindQuery, Handler: adapt(fn)}
}

// Mutation adapts a typed state-changing function into a Procedure.
func Mutation[In, Out any](fn func(context.Context, In) (Out, error)) Procedure {
	return Procedure{Kind: KindMutation, Handler: adapt(fn)}
}

func adapt[In, Out any](fn func(context.Context, In) (Out, error)) HandlerFunc {
	return func(ctx context.Context, input json.RawMessage) (any, error) {
		var in In
		if len(input) > 0 && string(input) != "null" {
			if err := json.Unmarshal(input, &in); err != nil {
				return nil, Wrap(http.StatusBadRequest, fmt.Errorf("invalid input: %w", err))
			}
		}
		return fn(ctx, in)
	}
}
