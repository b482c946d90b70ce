package handler

import (
	"fmt"
	"net/http"

	"ladder_zone/internal/api/middleware"
	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/userslist", h.listUsers)
	r.Get("/user/{username}", h.getProfile)
	r.Get("/protected/dashboard", h.dashboard)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to fetch users")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.userService.GetProfile(r.Context(), username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	username, _ := middleware.GetUsernameFromContext(r.Context())
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome to your dashboard, %s", username),
		"user":    username,
	})
}
