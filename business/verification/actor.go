package verification

import "context"

type actorKey struct{}

// ContextWithActor records the admin performing a workflow action so it lands in the audit trail.
func ContextWithActor(ctx context.Context, actorID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func actorFromContext(ctx context.Context) uint {
	id, _ := ctx.Value(actorKey{}).(uint)
	return id
}
