package user

import (
	"context"
	"errors"

	"aura/internal/common"
	"aura/internal/dbmysql"
)

var (
	ErrUnknownUser    = errors.New("user not found")
	ErrHandleTaken    = errors.New("handle already exists")
	ErrBadCredentials = errors.New("invalid handle or password")
)

// UserService is the user directory: registration, login and the id lookup
// the feed core consults. The feed never sees handles or credentials, only
// the opaque user id.
type UserService interface {
	RegisterUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error)
	GetProfile(ctx context.Context, userID int64) (*dbmysql.User, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if err := common.ValidateHandle(handle); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	exists, err := s.userRepo.CheckHandleExists(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrHandleTaken
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &dbmysql.User{
		Handle:       handle,
		PasswordHash: hashed,
		Status:       "active",
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(user.UserID, user.Handle)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if handle == "" || password == "" {
		return nil, "", ErrBadCredentials
	}

	user, err := s.userRepo.GetUserByHandle(ctx, handle)
	if errors.Is(err, ErrUnknownUser) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if user.Status != "active" {
		return nil, "", ErrBadCredentials
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := common.GenerateToken(user.UserID, user.Handle)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*dbmysql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UserExists backs the feed's UserDirectory collaborator. Only active users
// resolve.
func (s *userService) UserExists(ctx context.Context, userID int64) (bool, error) {
	count, err := s.userRepo.CountActiveByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
