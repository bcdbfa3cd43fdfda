// Package claims carries the authenticated caller through the request context.
package claims

import (
	"context"
	"errors"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var ErrNoClaims = errors.New("claims missing from context")

// Claims identify the caller of a request.
type Claims struct {
	UserID string
	Role   string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, claimsKey, clm)
}

func Get(ctx context.Context) (Claims, error) {
	clm, ok := ctx.Value(claimsKey).(Claims)
	if !ok || clm.UserID == "" {
		return Claims{}, ErrNoClaims
	}
	return clm, nil
}

func IsAdmin(ctx context.Context) bool {
	clm, err := Get(ctx)
	return err == nil && clm.Role == RoleAdmin
}

// CanAccess reports whether the caller is the owner or an admin.
func CanAccess(ctx context.Context, ownerID string) bool {
	clm, err := Get(ctx)
	if err != nil {
		return false
	}
	return clm.UserID == ownerID || clm.Role == RoleAdmin
}
