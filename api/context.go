package api

import (
	"context"
)

type keyType string

const adminKey keyType = "admin"

// ctxWithAdmin marks the request as carrying an authenticated admin
// session.
func ctxWithAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminKey, true)
}

// ctxIsAdmin reports whether the request carries an authenticated admin
// session.
func ctxIsAdmin(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(adminKey).(bool)
	return ok && isAdmin
}
