package user

import (
	"context"
	"strings"

	"go-elms/internal/authz"
	"go-elms/internal/shared/contextutil"
	usererrors "go-elms/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    normalizeEmail(req.Email),
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}

	// Email uniqueness is enforced by uq_user_email; the mapper turns the
	// violation into a conflict error.
	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.String("email", u.Email), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("role", u.Role.String()),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	role, err := authz.ParseRole(req.Role)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.Name = req.Name
	u.Email = normalizeEmail(req.Email)
	u.Role = role

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user updated", zap.String("user_id", id), zap.String("role", role.String()))
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.String("user_id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, u.ID.String()); err != nil {
		l.Error("failed to delete user", zap.String("user_id", id), zap.Error(err))
		return err
	}

	l.Info("user deleted", zap.String("user_id", id), zap.String("email", u.Email))
	return nil
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return usererrors.ErrInvalidCurrentPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash new password", zap.Error(err))
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

// Stored lowercased so uq_user_email catches case-variant duplicates.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
