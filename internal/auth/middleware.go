package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Anirudh1610/nexgrow-server-sub000/internal/common"
)

// IdentityResolver maps provider claims onto a directory identity (role,
// admin flag). Implemented by the sales service against the salesmen,
// managers and directors tables.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, uid, email string) (common.Identity, error)
}

// Middleware attaches the caller identity to the request context.
type Middleware struct {
	Verifier *Verifier
	Resolver IdentityResolver
	// AllowLegacyParams keeps the uid/email query-parameter identification of
	// the original clients working when no bearer token is supplied.
	AllowLegacyParams bool
	Now               func() time.Time
}

// Identify resolves the caller when possible and always continues the chain.
func (m Middleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx, ok := m.identify(r); ok {
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIdentity rejects requests whose caller cannot be identified.
func (m Middleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := m.identify(r)
		if !ok {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "caller identity required", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers without the admin flag or director role.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := common.IdentityFrom(r.Context())
		if !id.Admin && id.Role != "director" {
			common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (m Middleware) identify(r *http.Request) (context.Context, bool) {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	var uid, email string
	if m.Verifier != nil {
		if raw := bearerToken(r); raw != "" {
			claims, err := m.Verifier.Verify(raw, now())
			if err == nil {
				uid, email = claims.UID, claims.Email
			}
		}
	}
	if uid == "" && email == "" && m.AllowLegacyParams {
		uid = strings.TrimSpace(r.URL.Query().Get("uid"))
		email = strings.TrimSpace(r.URL.Query().Get("email"))
	}
	if uid == "" && email == "" {
		return r.Context(), false
	}

	identity := common.Identity{UID: uid, Email: email, Role: "salesman"}
	if m.Resolver != nil {
		if resolved, err := m.Resolver.ResolveIdentity(r.Context(), uid, email); err == nil {
			identity = resolved
		}
	}
	return common.WithIdentity(r.Context(), identity), true
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
