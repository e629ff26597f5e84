package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/repositories"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

func AdminAuthMiddleware(userRepo repositories.UserRepositoryImpl, rd *render.Render, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := helpers.UserIDFromContext(r.Context())
			if userID == "" {
				helpers.WriteDetail(rd, w, http.StatusUnauthorized, "authentication_required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("admin auth: user lookup failed", zap.String("user_id", userID), zap.Error(err))
				helpers.WriteDetail(rd, w, http.StatusInternalServerError, "internal_error")
				return
			}
			if user == nil {
				helpers.WriteDetail(rd, w, http.StatusUnauthorized, "authentication_required")
				return
			}

			if !user.IsAdmin() {
				logger.Warn("admin auth: non-admin access attempt", zap.String("user_id", user.ID), zap.String("path", r.URL.Path))
				helpers.WriteDetail(rd, w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}
