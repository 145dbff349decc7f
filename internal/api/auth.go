package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/mastermind-fa/product-inventory-api/internal/apperrors"
	"github.com/mastermind-fa/product-inventory-api/internal/auth"
	"github.com/nhalm/canonlog"
)

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

type subjectKey struct{}

// SubjectFromContext returns the authenticated subject, or "" for
// unauthenticated requests.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}

// RequireAuth rejects requests without a valid bearer token. A nil verifier
// rejects everything.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				Unauthorized(w, r, apperrors.NewUnauthorizedError("missing bearer token"))
				return
			}
			if verifier == nil {
				Unauthorized(w, r, apperrors.NewUnauthorizedError("no token verifier configured"))
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				Unauthorized(w, r, err)
				return
			}

			canonlog.AddRequestFields(r.Context(), map[string]any{
				"subject": claims.Subject,
			})
			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
