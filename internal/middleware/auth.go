package middleware

import (
	"net/http"

	"checkdev-site/internal/auth"
	"checkdev-site/internal/logger"
	"checkdev-site/internal/user"
	"checkdev-site/internal/utils"

	"go.uber.org/zap"
)

// Auth resolves the access token into a user context. Pages stay public: a
// missing or invalid token leaves the request anonymous, and an invalid
// cookie is cleared.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := user.ParseJWT(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
				auth.ClearAccessToken(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
