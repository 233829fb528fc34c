package access

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/atlas-console/atlas-console/internal/platform/httpx"
	"github.com/atlas-console/atlas-console/internal/shared"
)

// Verifier validates a raw bearer token and returns the caller identity.
type Verifier interface {
	Verify(raw string) (shared.Identity, error)
}

// Gate authorizes requests: it verifies the bearer token, resolves the
// caller's role and checks the permission table for the requested route.
type Gate struct {
	Table    Table
	Verifier Verifier
	Logger   *slog.Logger
}

// NewGate constructs a Gate over an immutable table.
func NewGate(table Table, verifier Verifier, logger *slog.Logger) *Gate {
	return &Gate{Table: table, Verifier: verifier, Logger: logger}
}

// Middleware wraps handlers with the token and permission checks. On
// success the decoded identity is attached to the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthenticated)
			return
		}

		id, err := g.Verifier.Verify(raw)
		if err != nil {
			httpx.RespondError(w, shared.ErrTokenInvalid)
			return
		}

		if !g.Table.Allows(r.Method, r.URL.Path, id.Role) {
			if g.Logger != nil {
				g.Logger.Warn("access denied",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("role", string(id.Role)))
			}
			httpx.RespondError(w, shared.ErrForbidden)
			return
		}

		ctx := shared.ContextWithIdentity(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
