package media

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"aura/internal/common"
	"aura/internal/dbmongo"

	"github.com/gorilla/mux"
)

// maxUploadBytes caps multipart uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// Store is what the handler needs from the GridFS storage.
type Store interface {
	UploadFile(ctx context.Context, filename, mimeType string, uploaderID int64, content io.Reader) (*dbmongo.MediaFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.Reader, *dbmongo.MediaFile, error)
}

// Handler serves media uploads and downloads. An upload's returned id is the
// media_ref callers pass when creating posts and stories.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *mux.Router, auth func(http.Handler) http.Handler) {
	r.Handle("/api/media", auth(http.HandlerFunc(h.Upload))).Methods(http.MethodPost)
	r.HandleFunc("/api/media/{id}", h.Download).Methods(http.MethodGet)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user not authenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	uploaded, err := h.store.UploadFile(r.Context(), header.Filename, mimeType, userID, file)
	if err != nil {
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(uploaded)
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["id"]

	stream, info, err := h.store.DownloadFile(r.Context(), fileID)
	if err != nil {
		http.Error(w, "media not found", http.StatusNotFound)
		return
	}

	if info.MimeType != "" {
		w.Header().Set("Content-Type", info.MimeType)
	}
	_, _ = io.Copy(w, stream)
}
