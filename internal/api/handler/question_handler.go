package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common"
	"ladder_zone/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/addquestion", h.addQuestion)
	r.Get("/problemset", h.listQuestions)
	r.Get("/question/{question_id}", h.getQuestion)
	r.Patch("/markquestion", h.markSolved)
	r.Patch("/unmarkquestion", h.unmarkSolved)
}

type questionResponse struct {
	Message  string          `json:"message"`
	Question *model.Question `json:"question"`
}

func (h *QuestionHandler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	question, err := h.questionService.AddQuestion(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questionResponse{
		Message:  "Question added successfully!",
		Question: question,
	})
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionService.ListQuestions(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), "Failed to fetch questions")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "question_id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid question id")
		return
	}
	question, err := h.questionService.GetQuestion(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

type markRequest struct {
	QuestionID int64  `json:"questionid"`
	User       string `json:"user"`
}

func (h *QuestionHandler) markSolved(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	question, err := h.questionService.MarkSolved(r.Context(), req.QuestionID, req.User)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questionResponse{
		Message:  "Question marked as solved by user",
		Question: question,
	})
}

func (h *QuestionHandler) unmarkSolved(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	question, err := h.questionService.UnmarkSolved(r.Context(), req.QuestionID, req.User)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questionResponse{
		Message:  "Question unmarked for user",
		Question: question,
	})
}
