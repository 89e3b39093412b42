package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/israelmw/QuickAudit/config"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type contextKey string

// OperatorContextKey holds the acting operator of a request
const OperatorContextKey contextKey = "operator"

// Anonymous is the operator of requests when token verification is disabled
const Anonymous = "anonymous"

// ClaimEmail carries the operator email in backend issued tokens
const ClaimEmail = "email"

// New returns the token verifier of the configured shared secret, nil when auth is disabled
func New(cfg *config.AuthConfiguration) *jwtauth.JWTAuth {
	if !cfg.Enabled() {
		return nil
	}
	return jwtauth.New(cfg.JWTAlg, []byte(cfg.JWTSecret), nil)
}

// Required verifies the request token when ja is set and stores the operator in the context
func Required(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if ja == nil {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), Anonymous)))
			})
		}
		return jwtauth.Verifier(ja)(jwtauth.Authenticator(operator(next)))
	}
}

func operator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil || jwt.Validate(token) != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		op := token.Subject()
		if email, ok := claims[ClaimEmail].(string); ok && email != "" {
			op = email
		}
		if op == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOperator(r.Context(), op)))
	})
}

// WithOperator stores the operator in ctx
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, OperatorContextKey, operator)
}

// OperatorFrom returns the operator of the request
func OperatorFrom(ctx context.Context) string {
	if op, ok := ctx.Value(OperatorContextKey).(string); ok && op != "" {
		return op
	}
	return Anonymous
}
