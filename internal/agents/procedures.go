package agents

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// Procedures exposes sys as the agents RPC namespace.
func Procedures(sys System) rpc.Procedures {
	return rpc.Procedures{
		"create": rpc.Mutation(func(ctx context.Context, cmd CreateCommand) (*Agent, error) {
			a, err := sys.Create(ctx, cmd)
			return a, wrap(err)
		}),
		"update": rpc.Mutation(func(ctx context.Context, in UpdateInput) (*Agent, error) {
			if err := requireID(in.ID); err != nil {
				return nil, wrap(err)
			}
			a, err := sys.Update(ctx, in.ID, in.UpdateCommand)
			return a, wrap(err)
		}),
		"getMany": rpc.Query(func(ctx context.Context, in ListInput) (*pagination.PageResult[Agent], error) {
			result, err := sys.List(ctx, in.PageRequest, in.Filters)
			return result, wrap(err)
		}),
		"getOne": rpc.Query(func(ctx context.Context, in IDInput) (*Agent, error) {
			if err := requireID(in.ID); err != nil {
				return nil, wrap(err)
			}
			a, err := sys.Find(ctx, in.ID)
			return a, wrap(err)
		}),
		"remove": rpc.Mutation(func(ctx context.Context, in IDInput) (IDInput, error) {
			if err := requireID(in.ID); err != nil {
				return IDInput{}, wrap(err)
			}
			return in, wrap(sys.Delete(ctx, in.ID))
		}),
	}
}

func requireID(id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: id is required", ErrInvalid)
	}
	return nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return rpc.Wrap(MapHTTPStatus(err), err)
}
