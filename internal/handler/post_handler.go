package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"communityboard/internal/models"
	"communityboard/internal/repository"
	"communityboard/internal/service"
)

type PostsResponse struct {
	Posts   []models.Post `json:"posts"`
	LastID  *string       `json:"lastId"`
	HasMore bool          `json:"hasMore"`
}

type UpdatePostBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PinPostBody struct {
	Pinned *bool `json:"pinned"`
}

type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	params := repository.ListPostsParams{
		Limit:      limit,
		CursorID:   r.URL.Query().Get("lastId"),
		PinnedOnly: r.URL.Query().Get("pinned") == "true",
		AuthorID:   r.URL.Query().Get("userId"),
	}

	page, err := h.PostService.ListPosts(r.Context(), params)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := PostsResponse{
		Posts:   page.Posts,
		HasMore: page.HasMore,
	}
	if response.Posts == nil {
		response.Posts = []models.Post{}
	}
	if page.LastID != "" {
		response.LastID = &page.LastID
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	if title == "" || content == "" {
		WriteError(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	req := service.CreatePostRequest{
		AuthorID: userID,
		Title:    title,
		Content:  content,
	}

	file, header, err := r.FormFile("image")
	if err == nil {
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

		req.ImageFileName = header.Filename
		req.ImageFile = file
		req.ImageSize = header.Size
	} else if !errors.Is(err, http.ErrMissingFile) {
		WriteError(w, "Invalid image upload", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "User not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, _ := r.Context().Value("userID").(string)
	userRole, _ := r.Context().Value("role").(string)

	var body UpdatePostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.PostService.UpdatePost(r.Context(), service.UpdatePostRequest{
		PostID:     postID,
		Title:      body.Title,
		Content:    body.Content,
		CallerID:   userID,
		CallerRole: userRole,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteError(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Not authorized to update this post", http.StatusForbidden)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post updated successfully"}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, _ := r.Context().Value("userID").(string)
	userRole, _ := r.Context().Value("role").(string)

	err := h.PostService.DeletePost(r.Context(), postID, userID, userRole)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			WriteError(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Not authorized to delete this post", http.StatusForbidden)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post deleted successfully"}, http.StatusOK)
}

func (h *Handlers) PinPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var body PinPostBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Pinned == nil {
		WriteError(w, "Pinned status must be a boolean", http.StatusBadRequest)
		return
	}

	err := h.PostService.SetPinned(r.Context(), postID, *body.Pinned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	action := "unpinned"
	if *body.Pinned {
		action = "pinned"
	}

	WriteJSON(w, MessageResponse{Message: fmt.Sprintf("Post %s successfully", action)}, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	liked, likeCount, err := h.PostService.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			WriteError(w, "Post not found", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, LikeResponse{Liked: liked, LikeCount: likeCount}, http.StatusOK)
}
