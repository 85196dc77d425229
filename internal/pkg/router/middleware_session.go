package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gomart/internal/pkg/authz"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
)

// HeaderCartSession carries the cart session token.
const HeaderCartSession = "X-Cart-Session"

// SessionVerifier turns a session token into claims.
type SessionVerifier interface {
	Verify(token string) (session.Claims, error)
}

func sessionToken(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(HeaderCartSession)); v != "" {
		return v
	}

	p := strings.Fields(r.Header.Get("Authorization"))
	if len(p) == 2 && strings.EqualFold(p[0], "Bearer") {
		return p[1]
	}
	return ""
}

// middlewareSession attaches verified session claims to the context and asks
// the authorizer whether the resulting role may call the matched route.
// Requests without a token continue as anonymous.
func middlewareSession(verifier SessionVerifier, authorizer authz.Authorizer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if tok := sessionToken(r); tok != "" && verifier != nil {
				claims, err := verifier.Verify(tok)
				if err != nil {
					writeJSON(w, errorResponse{Message: "Invalid or expired session"}, http.StatusUnauthorized)
					return
				}
				ctx = session.Set(ctx, claims)
			}

			if authorizer != nil {
				role := session.Role(ctx)
				ok, err := authorizer.Allow(role, matchedRoutePath(r), r.Method)
				if err != nil {
					slog.ErrorContext(ctx, "failed to enforce policy", "role", role, "error", err)
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
					return
				}
				if !ok && role == session.RoleAnonymous {
					writeJSON(w, errorResponse{Message: "Cart session required"}, http.StatusUnauthorized)
					return
				}
				if !ok {
					writeJSON(w, errorResponse{Message: "Access denied"}, http.StatusForbidden)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
