package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"communityboard/internal/models"
	"communityboard/internal/repository"
)

type UsersResponse struct {
	Users   []models.User `json:"users"`
	LastID  *string       `json:"lastId"`
	HasMore bool          `json:"hasMore"`
}

type UpdateRoleBody struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	params := repository.ListUsersParams{
		Limit:    limit,
		CursorID: r.URL.Query().Get("lastId"),
	}

	page, err := h.UserService.ListUsers(r.Context(), params)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := UsersResponse{
		Users:   page.Users,
		HasMore: page.HasMore,
	}
	if response.Users == nil {
		response.Users = []models.User{}
	}
	if page.LastID != "" {
		response.LastID = &page.LastID
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var body UpdateRoleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(body); err != nil {
		WriteError(w, "Valid role (user or admin) is required", http.StatusBadRequest)
		return
	}

	if err := h.UserService.SetRole(r.Context(), userID, body.Role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: fmt.Sprintf("User role updated to %s successfully", body.Role)}, http.StatusOK)
}
