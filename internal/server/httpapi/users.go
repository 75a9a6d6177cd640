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

type UserHandler struct {
	users  *services.UserService
	logger logging.Logger
}

func NewUserHandler(users *services.UserService, logger logging.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// credentialRequest is the wire shape shared by registration and
// authentication. The plaintext credential travels in the "hash" field,
// matching the clients this API was built for.
type credentialRequest struct {
	UserID string `json:"userId"`
	Hash   string `json:"hash"`
}

type userResponse struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{UserID: u.UserID, CreatedAt: u.CreatedAt}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.UserID, req.Hash)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.users.IssueTokenForNewIdentity(user.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Msg   string `json:"msg"`
		Token string `json:"token"`
	}{Msg: fmt.Sprintf("User %s created", user.UserID), Token: token})
}

func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.users.Authenticate(r.Context(), req.UserID, req.Hash)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Token string `json:"token"`
	}{Token: token})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, struct {
		Users []userResponse `json:"users"`
	}{Users: out})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User userResponse `json:"user"`
	}{User: toUserResponse(user)})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := tokenFromContext(r.Context())
	if err := h.users.ChangePassword(r.Context(), token, userID, req.Hash); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMsg(w, http.StatusOK, fmt.Sprintf("User %s updated", userID))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	token := tokenFromContext(r.Context())
	if err := h.users.Delete(r.Context(), token, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeMsg(w, http.StatusOK, fmt.Sprintf("User %s deleted", userID))
}
