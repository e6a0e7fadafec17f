package meetings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// Procedures exposes sys as the meetings RPC namespace.
func Procedures(sys System) rpc.Procedures {
	return rpc.Procedures{
		"create": rpc.Mutation(func(ctx context.Context, cmd CreateCommand) (*Meeting, error) {
			m, err := sys.Create(ctx, cmd)
			return m, wrap(err)
		}),
		"update": rpc.Mutation(func(ctx context.Context, in UpdateInput) (*Meeting, error) {
			if err := requireID(in.ID); err != nil {
				return nil, wrap(err)
			}
			m, err := sys.Update(ctx, in.ID, in.UpdateCommand)
			return m, wrap(err)
		}),
		"getMany": rpc.Query(func(ctx context.Context, in ListInput) (*pagination.PageResult[Meeting], error) {
			result, err := sys.List(ctx, in.PageRequest, in.Filters)
			return result, wrap(err)
		}),
		"getOne": rpc.Query(func(ctx context.Context, in IDInput) (*Meeting, error) {
			if err := requireID(in.ID); err != nil {
				return nil, wrap(err)
			}
			m, err := sys.Find(ctx, in.ID)
			return m, wrap(err)
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
