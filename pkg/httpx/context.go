package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated user's id, attached by
// AuthnMiddleware after token verification.
const CtxKeyUserID ctxKey = "user_id"

// UserIDFromContext returns the authenticated subject id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
