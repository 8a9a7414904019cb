package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura/internal/common"
	"aura/internal/dbmongo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaStore struct {
	files map[string][]byte
	next  int
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{files: map[string][]byte{}, next: 1}
}

func (f *fakeMediaStore) UploadFile(ctx context.Context, filename, mimeType string, uploaderID int64, content io.Reader) (*dbmongo.MediaFile, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	id := string(rune('a' + f.next))
	f.next++
	f.files[id] = data
	return &dbmongo.MediaFile{ID: id, Filename: filename, MimeType: mimeType, Size: int64(len(data)), UploadedBy: uploaderID}, nil
}

func (f *fakeMediaStore) DownloadFile(ctx context.Context, fileID string) (io.Reader, *dbmongo.MediaFile, error) {
	data, ok := f.files[fileID]
	if !ok {
		return nil, nil, errors.New("not found")
	}
	return bytes.NewReader(data), &dbmongo.MediaFile{ID: fileID, MimeType: "image/png", Size: int64(len(data))}, nil
}

func fakeAuth(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), common.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestUploadAndDownload(t *testing.T) {
	store := newFakeMediaStore()
	r := mux.NewRouter()
	NewHandler(store).RegisterRoutes(r, fakeAuth(7))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var uploaded dbmongo.MediaFile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	assert.Equal(t, "cat.png", uploaded.Filename)
	assert.Equal(t, int64(7), uploaded.UploadedBy)
	assert.NotEmpty(t, uploaded.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/media/"+uploaded.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestDownload_Missing(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(newFakeMediaStore()).RegisterRoutes(r, fakeAuth(7))

	req := httptest.NewRequest(http.MethodGet, "/api/media/zzz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(newFakeMediaStore()).RegisterRoutes(r, fakeAuth(7))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
