package handler

import (
	"net/http"
	"strconv"

	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Get("/questions", h.listQuestions)
	r.Get("/ladders", h.listLadders)
	r.Delete("/users/{username}", h.deleteUser)
	r.Delete("/questions/{id}", h.deleteQuestion)
	r.Delete("/ladders/{id}", h.deleteLadder)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to fetch users")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.adminService.ListQuestions(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to fetch questions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *AdminHandler) listLadders(w http.ResponseWriter, r *http.Request) {
	ladders, err := h.adminService.ListLadders(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to fetch ladders")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ladders)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	message, err := h.adminService.DeleteUser(r.Context(), username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *AdminHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid question id")
		return
	}
	message, err := h.adminService.DeleteQuestion(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *AdminHandler) deleteLadder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid ladder id")
		return
	}
	message, err := h.adminService.DeleteLadder(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}
