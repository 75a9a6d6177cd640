package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"postboard/internal/logging"
	"postboard/internal/server/services"
)

// NewRouter wires the REST surface. Reads are open; every mutation behind
// requireToken carries the caller's token into the service layer, where
// ownership is checked against the resource.
func NewRouter(users *services.UserService, posts *services.PostService, logger logging.Logger) *mux.Router {
	uh := NewUserHandler(users, logger)
	ph := NewPostHandler(posts, logger)

	r := mux.NewRouter()
	r.Use(logRequests(logger))

	r.HandleFunc("/status", Status).Methods(http.MethodGet)

	r.HandleFunc("/authentications", uh.Authenticate).Methods(http.MethodPost)

	r.HandleFunc("/users", uh.Register).Methods(http.MethodPost)
	r.HandleFunc("/users", uh.List).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}", uh.Get).Methods(http.MethodGet)
	r.Handle("/users/{userId}", requireToken(http.HandlerFunc(uh.Update))).Methods(http.MethodPut)
	r.Handle("/users/{userId}", requireToken(http.HandlerFunc(uh.Delete))).Methods(http.MethodDelete)

	r.Handle("/posts", requireToken(http.HandlerFunc(ph.Create))).Methods(http.MethodPost)
	r.HandleFunc("/posts", ph.List).Methods(http.MethodGet)
	r.HandleFunc("/posts/{postId}", ph.Get).Methods(http.MethodGet)
	r.Handle("/posts/{postId}", requireToken(http.HandlerFunc(ph.Update))).Methods(http.MethodPut)
	r.Handle("/posts/{postId}", requireToken(http.HandlerFunc(ph.Delete))).Methods(http.MethodDelete)

	return r
}

// Status is a liveness probe.
func Status(w http.ResponseWriter, _ *http.Request) {
	writeMsg(w, http.StatusOK, "server status good")
}
