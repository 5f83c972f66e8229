package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"SecondChance/internal/config"
	"SecondChance/internal/middleware"
	"SecondChance/internal/service"

	"go.uber.org/zap"
)

// UserHandler регистрация пользователей.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type registerResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Register POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	user, token, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		h.Logger.Warnw("Register: missing credentials")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
		return
	case errors.Is(err, service.ErrEmailTaken):
		h.Logger.Errorw("Register: email id already exists", "email", req.Email)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email id already exists"})
		return
	case err != nil:
		internalError(w, r, h.Logger, "Register: service error", err)
		return
	}

	middleware.SetLoginCookie(w, token, h.Config.TokenTTL)
	h.Logger.Infow("User registered successfully", "user_id", user.ID)
	writeJSON(w, http.StatusOK, registerResponse{Token: token, Email: user.Email})
}
