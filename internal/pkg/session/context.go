package session

import "context"

type sessionContextKey struct{}

// Set stores verified claims in ctx.
func Set(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, clm)
}

// Get returns the claims stored in ctx, or nil for anonymous requests.
func Get(ctx context.Context) *Claims {
	clm, ok := ctx.Value(sessionContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// ID returns the session id in ctx, or "" for anonymous requests.
func ID(ctx context.Context) string {
	if clm := Get(ctx); clm != nil {
		return clm.SessionID()
	}
	return ""
}

// Role returns the caller role, anonymous when no session is present.
func Role(ctx context.Context) string {
	if clm := Get(ctx); clm != nil && clm.Role != "" {
		return clm.Role
	}
	return RoleAnonymous
}
