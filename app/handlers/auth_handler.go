package handlers

import (
	"context"
	"net/http"

	"github.com/Rakhulsr/go-shop/app/helpers"
	"github.com/Rakhulsr/go-shop/app/models"
	"github.com/Rakhulsr/go-shop/app/services"
	"github.com/Rakhulsr/go-shop/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// CartMerger folds a guest cart into a user's cart at login.
type CartMerger interface {
	Merge(ctx context.Context, sessionKey, userID string) error
}

type AuthHandler struct {
	render       *render.Render
	authSvc      *services.AuthService
	merger       CartMerger
	sessionStore sessions.SessionStore
	logger       *zap.Logger
}

func NewAuthHandler(render *render.Render, authSvc *services.AuthService, merger CartMerger, sessionStore sessions.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		render:       render,
		authSvc:      authSvc,
		merger:       merger,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// logIn records the user in the session, then moves the guest cart over.
// A failed merge is logged and reported, never turned into a failed login.
func (h *AuthHandler) logIn(w http.ResponseWriter, r *http.Request, user *models.User) (bool, error) {
	sessionKey := h.sessionStore.GetSessionKey(r)

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		return false, err
	}

	if err := h.merger.Merge(r.Context(), sessionKey, user.ID); err != nil {
		h.logger.Error("cart merge failed at login",
			zap.String("user_id", user.ID),
			zap.String("session_key", sessionKey),
			zap.Error(err))
		return false, nil
	}
	return true, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	user, err := h.authSvc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	merged, err := h.logIn(w, r, user)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"detail":      "logged",
		"cart_merged": merged,
		"user":        NewUserResponse(user),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := helpers.DecodeJSON(w, r, &req); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	user, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	merged, err := h.logIn(w, r, user)
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"detail":      "registered",
		"cart_merged": merged,
		"user":        NewUserResponse(user),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{"detail": "logged_out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.CurrentUser(r.Context(), helpers.UserIDFromContext(r.Context()))
	if err != nil {
		helpers.WriteError(h.render, w, r, h.logger, err)
		return
	}
	h.render.JSON(w, http.StatusOK, NewUserResponse(user))
}
