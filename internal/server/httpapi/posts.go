package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"postboard/internal/logging"
	"postboard/internal/server/models"
	"postboard/internal/server/services"
)

type PostHandler struct {
	posts  *services.PostService
	logger logging.Logger
}

func NewPostHandler(posts *services.PostService, logger logging.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := tokenFromContext(r.Context())
	post, err := h.posts.Create(r.Context(), token, req.Title, req.Content)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Msg  string       `json:"msg"`
		Post postResponse `json:"post"`
	}{Msg: fmt.Sprintf("Post %s created", post.Title), Post: toPostResponse(post)})
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Posts []postResponse `json:"posts"`
	}{Posts: out})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.posts.Get(r.Context(), postID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Post postResponse `json:"post"`
	}{Post: toPostResponse(post)})
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := tokenFromContext(r.Context())
	if err := h.posts.Update(r.Context(), token, postID, req.Title, req.Content); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMsg(w, http.StatusOK, fmt.Sprintf("Post %s updated", postID))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	token := tokenFromContext(r.Context())
	if err := h.posts.Delete(r.Context(), token, postID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMsg(w, http.StatusOK, fmt.Sprintf("Post %s deleted", postID))
}
