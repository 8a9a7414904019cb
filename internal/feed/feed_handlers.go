package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"aura/internal/common"

	"github.com/gorilla/mux"
)

// FeedHandlers wires HTTP requests to the feed service. Everything here is
// adapter code: parse, call, encode — the invariants live in the service and
// repository.
type FeedHandlers struct {
	FeedSvc FeedUsecase
}

func NewFeedHandlers(svc FeedUsecase) *FeedHandlers {
	return &FeedHandlers{FeedSvc: svc}
}

// RegisterRoutes mounts the feed endpoints. auth wraps the routes that need
// an authenticated caller.
func (h *FeedHandlers) RegisterRoutes(r *mux.Router, auth func(http.Handler) http.Handler) {
	r.HandleFunc("/api/posts", h.GetFeed).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/user/{userId}", h.GetUserPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{postId}/comments", h.GetComments).Methods(http.MethodGet)

	r.Handle("/api/posts", auth(http.HandlerFunc(h.CreatePost))).Methods(http.MethodPost)
	r.Handle("/api/posts/{postId}/like", auth(http.HandlerFunc(h.LikePost))).Methods(http.MethodPost)
	r.Handle("/api/posts/{postId}/like", auth(http.HandlerFunc(h.UnlikePost))).Methods(http.MethodDelete)
	r.Handle("/api/posts/{postId}/comments", auth(http.HandlerFunc(h.AddComment))).Methods(http.MethodPost)
	r.Handle("/api/stories", auth(http.HandlerFunc(h.CreateStory))).Methods(http.MethodPost)
	r.Handle("/api/stories/me", auth(http.HandlerFunc(h.GetMyStories))).Methods(http.MethodGet)
	r.Handle("/api/stories/feed", auth(http.HandlerFunc(h.GetStoryFeed))).Methods(http.MethodGet)
}

type createPostRequest struct {
	Caption  string `json:"caption"`
	MediaRef string `json:"media_ref"`
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type createStoryRequest struct {
	MediaRef  string `json:"media_ref"`
	MediaKind string `json:"media_kind"`
}

type statusResponse struct {
	Message string `json:"message"`
}

func (h *FeedHandlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.FeedSvc.GetFeed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *FeedHandlers) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	posts, err := h.FeedSvc.GetUserPosts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *FeedHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.FeedSvc.CreatePost(r.Context(), userID, req.Caption, req.MediaRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *FeedHandlers) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.FeedSvc.LikePost(r.Context(), postID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "post liked"})
}

func (h *FeedHandlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.FeedSvc.UnlikePost(r.Context(), postID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Message: "post unliked"})
}

func (h *FeedHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}
	postID, err := pathID(r, "postId")
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.FeedSvc.AddComment(r.Context(), postID, userID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (h *FeedHandlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}

	comments, err := h.FeedSvc.GetComments(r.Context(), postID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *FeedHandlers) CreateStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}

	var req createStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	story, err := h.FeedSvc.CreateStory(r.Context(), userID, req.MediaRef, req.MediaKind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, story)
}

func (h *FeedHandlers) GetMyStories(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}

	stories, err := h.FeedSvc.GetActiveStories(r.Context(), userID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

// GetStoryFeed would return active stories from followed users. There is no
// follow-graph service to ask yet, so the following set is empty and so is
// the response.
func (h *FeedHandlers) GetStoryFeed(w http.ResponseWriter, r *http.Request) {
	stories, err := h.FeedSvc.GetFeedStories(r.Context(), nil, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrPostNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrAlreadyLiked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrMissingMedia), errors.Is(err, ErrBadMediaKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
