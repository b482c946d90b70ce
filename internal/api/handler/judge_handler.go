package handler

import (
	"encoding/json"
	"net/http"

	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common"
	"ladder_zone/internal/platform/judge"

	"github.com/go-chi/chi/v5"
)

type JudgeHandler struct {
	judgeService *service.JudgeService
}

func NewJudgeHandler(judgeService *service.JudgeService) *JudgeHandler {
	return &JudgeHandler{judgeService: judgeService}
}

func (h *JudgeHandler) RegisterRoutes(r chi.Router) {
	r.Post("/codechef-accepted", h.checkAccepted)
	r.Get("/test", h.test)
}

type checkAcceptedRequest struct {
	Cookies     []judge.Cookie `json:"cookies"`
	ProblemCode string         `json:"problemCode"`
}

func (h *JudgeHandler) checkAccepted(w http.ResponseWriter, r *http.Request) {
	var req checkAcceptedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	result, err := h.judgeService.CheckAccepted(r.Context(), req.Cookies, req.ProblemCode)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *JudgeHandler) test(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("working"))
}
