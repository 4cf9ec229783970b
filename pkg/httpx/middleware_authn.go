package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/sweetsprouts/backend/pkg/jwtx"
	"github.com/sweetsprouts/backend/pkg/slogx"
)

// Fixed authentication failure messages. "missing" covers any header that
// isn't the exact two-token Bearer form; "failed" covers tokens that are
// present but don't verify. The split is deliberate: a caller can tell they
// forgot the header, but not why a token was rejected.
const (
	MsgTokenMissing = "Authentication token is missing"
	MsgAuthFailed   = "Authentication failed"
)

// AuthnMiddleware extracts and verifies the bearer token from the
// Authorization header and attaches the resolved subject id to the request
// context. Failures short-circuit with 401; there is no retry.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteMessage(w, http.StatusUnauthorized, MsgTokenMissing)
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				WriteMessage(w, http.StatusUnauthorized, MsgAuthFailed)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses an Authorization header expected to be exactly
// "Bearer <token>", split on a single space. Anything else, including an
// absent header or an empty token segment, reports false.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
