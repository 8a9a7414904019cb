package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aura/internal/dbmysql"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	registerErr error
	loginErr    error
}

func (s *stubUserService) RegisterUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if s.registerErr != nil {
		return nil, "", s.registerErr
	}
	return &dbmysql.User{UserID: 1, Handle: handle, Status: "active"}, "tok", nil
}

func (s *stubUserService) LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return &dbmysql.User{UserID: 1, Handle: handle, Status: "active"}, "tok", nil
}

func (s *stubUserService) GetProfile(ctx context.Context, userID int64) (*dbmysql.User, error) {
	return &dbmysql.User{UserID: userID, Handle: "alice", Status: "active"}, nil
}

func (s *stubUserService) UserExists(ctx context.Context, userID int64) (bool, error) {
	return true, nil
}

func noAuth(next http.Handler) http.Handler { return next }

func TestHandler_Register(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(&stubUserService{}).RegisterRoutes(r, noAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"handle":"alice","password":"Password123"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, int64(1), resp.UserID)
}

func TestHandler_Register_HandleTaken(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(&stubUserService{registerErr: ErrHandleTaken}).RegisterRoutes(r, noAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"handle":"alice","password":"Password123"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	r := mux.NewRouter()
	NewHandler(&stubUserService{loginErr: ErrBadCredentials}).RegisterRoutes(r, noAuth)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"handle":"alice","password":"nope"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
