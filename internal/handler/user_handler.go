package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"communityboard/internal/repository"
)

type UpdateProfileBody struct {
	DisplayName string `json:"displayName"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	email, _ := r.Context().Value("email").(string)

	user, err := h.UserService.GetProfile(r.Context(), userID, email)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var body UpdateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if body.DisplayName == "" {
		WriteError(w, "displayName is required", http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdateProfile(r.Context(), userID, body.DisplayName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Profile updated successfully"}, http.StatusOK)
}

func (h *Handlers) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		WriteError(w, "Only image files are allowed", http.StatusBadRequest)
		return
	}
	if header.Size > h.Cfg.MaxUploadSize {
		WriteError(w, "Image file is too large", http.StatusBadRequest)
		return
	}

	photoURL, err := h.UserService.UploadProfileImage(r.Context(), userID, header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, map[string]string{"photoURL": photoURL}, http.StatusOK)
}
