package user

import (
	"context"
	"testing"

	"aura/internal/common"
	"aura/internal/dbmysql"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	svc := NewUserService(mockUserRepo)
	ctx := context.Background()

	tests := []struct {
		name        string
		handle      string
		password    string
		setup       func()
		wantErr     bool
		errContains string
	}{
		{
			name:     "success",
			handle:   "alice",
			password: "Password123",
			setup: func() {
				mockUserRepo.EXPECT().CheckHandleExists(ctx, "alice").Return(false, nil)
				mockUserRepo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
					func(_ context.Context, u *dbmysql.User) error {
						u.UserID = 1
						return nil
					})
			},
		},
		{
			name:     "duplicate handle",
			handle:   "bob",
			password: "Password123",
			setup: func() {
				mockUserRepo.EXPECT().CheckHandleExists(ctx, "bob").Return(true, nil)
			},
			wantErr:     true,
			errContains: "exists",
		},
		{
			name:        "invalid handle",
			handle:      "!",
			password:    "Password123",
			setup:       func() {},
			wantErr:     true,
			errContains: "handle",
		},
		{
			name:        "invalid password",
			handle:      "charlie",
			password:    "x",
			setup:       func() {},
			wantErr:     true,
			errContains: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			user, token, err := svc.RegisterUser(ctx, tt.handle, tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, "active", user.Status)
			assert.NotEqual(t, tt.password, user.PasswordHash)
		})
	}
}

func TestUserService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	svc := NewUserService(mockUserRepo)
	ctx := context.Background()

	hash, err := common.HashPassword("Password123")
	require.NoError(t, err)
	alice := &dbmysql.User{UserID: 1, Handle: "alice", PasswordHash: hash, Status: "active"}

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "alice").Return(alice, nil)

		user, token, err := svc.LoginUser(ctx, "alice", "Password123")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.UserID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "alice").Return(alice, nil)

		_, _, err := svc.LoginUser(ctx, "alice", "nope")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown handle", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "ghost").Return(nil, ErrUnknownUser)

		_, _, err := svc.LoginUser(ctx, "ghost", "Password123")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("banned user", func(t *testing.T) {
		banned := &dbmysql.User{UserID: 2, Handle: "mallory", PasswordHash: hash, Status: "banned"}
		mockUserRepo.EXPECT().GetUserByHandle(ctx, "mallory").Return(banned, nil)

		_, _, err := svc.LoginUser(ctx, "mallory", "Password123")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := svc.LoginUser(ctx, "", "")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestUserService_UserExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := NewMockUserRepository(ctrl)
	svc := NewUserService(mockUserRepo)
	ctx := context.Background()

	mockUserRepo.EXPECT().CountActiveByID(ctx, int64(1)).Return(int64(1), nil)
	exists, err := svc.UserExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)

	mockUserRepo.EXPECT().CountActiveByID(ctx, int64(99)).Return(int64(0), nil)
	exists, err = svc.UserExists(ctx, 99)
	require.NoError(t, err)
	assert.False(t, exists)
}
