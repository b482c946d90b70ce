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

type LadderHandler struct {
	ladderService *service.LadderService
}

func NewLadderHandler(ladderService *service.LadderService) *LadderHandler {
	return &LadderHandler{ladderService: ladderService}
}

func (h *LadderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/createtable", h.createTable)
	r.Post("/copytable", h.copyTable)
	r.Patch("/edittable", h.editTable)
	r.Post("/ladders", h.listLadders)
	r.Get("/ladder/{table_id}", h.getLadder)
	r.Delete("/deleteladder", h.deleteLadder)
	r.Post("/collabtable", h.addCollaborator)
	r.Post("/removecollab", h.removeCollaborator)
}

type tableResponse struct {
	Message string       `json:"message"`
	Table   *model.Table `json:"table"`
}

type membersResponse struct {
	Message string   `json:"message"`
	Users   []string `json:"users"`
}

type createTableRequest struct {
	TableTitle string `json:"table_title"`
	User       string `json:"user"`
}

func (h *LadderHandler) createTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	table, err := h.ladderService.CreateTable(r.Context(), req.TableTitle, req.User)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, tableResponse{Message: "Table created successfully", Table: table})
}

type copyTableRequest struct {
	SourceTableID int64  `json:"source_table_id"`
	NewTableTitle string `json:"new_table_title"`
	NewUserID     string `json:"new_user_id"`
}

func (h *LadderHandler) copyTable(w http.ResponseWriter, r *http.Request) {
	var req copyTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	table, err := h.ladderService.CopyTable(r.Context(), req.SourceTableID, req.NewTableTitle, req.NewUserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, tableResponse{Message: "Table copied successfully", Table: table})
}

type editTableRequest struct {
	TableID     int64   `json:"table_id"`
	QuestionIDs []int64 `json:"questionIds"`
	Action      string  `json:"action"`
}

func (h *LadderHandler) editTable(w http.ResponseWriter, r *http.Request) {
	var req editTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	table, err := h.ladderService.EditTable(r.Context(), req.TableID, req.QuestionIDs, req.Action)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tableResponse{Message: "Table updated successfully", Table: table})
}

type listLaddersRequest struct {
	Username string `json:"username"`
}

func (h *LadderHandler) listLadders(w http.ResponseWriter, r *http.Request) {
	var req listLaddersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	ladders, err := h.ladderService.ListLadders(r.Context(), req.Username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ladders)
}

func (h *LadderHandler) getLadder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "table_id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid table id")
		return
	}
	ladder, err := h.ladderService.GetLadder(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, ladder)
}

type deleteLadderRequest struct {
	TableID int64  `json:"table_id"`
	UserID  string `json:"user_id"`
}

func (h *LadderHandler) deleteLadder(w http.ResponseWriter, r *http.Request) {
	var req deleteLadderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.ladderService.DeleteLadder(r.Context(), req.TableID, req.UserID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Ladder deleted successfully"})
}

type collabRequest struct {
	SourceTableID int64  `json:"source_table_id"`
	NewUserID     string `json:"new_user_id"`
	UserToRemove  string `json:"user_to_remove"`
}

func (h *LadderHandler) addCollaborator(w http.ResponseWriter, r *http.Request) {
	var req collabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	table, err := h.ladderService.AddCollaborator(r.Context(), req.SourceTableID, req.NewUserID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, membersResponse{Message: "User added successfully", Users: table.Users})
}

func (h *LadderHandler) removeCollaborator(w http.ResponseWriter, r *http.Request) {
	var req collabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	table, err := h.ladderService.RemoveCollaborator(r.Context(), req.SourceTableID, req.UserToRemove)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, membersResponse{Message: "User removed successfully", Users: table.Users})
}
