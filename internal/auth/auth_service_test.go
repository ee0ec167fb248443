package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-elms/internal/auth"
	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/authz"
	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/user"
	"go-elms/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func activeUser(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: string(hashed),
		Role:     authz.RoleEmployee,
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success returns token pair", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		u := activeUser(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)

		pair, err := svc.Login(ctx, auth.LoginRequest{Email: " Jane@Example.com ", Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(activeUser(t, "s3cret-pass"), nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "nope"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative deactivated account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		u := activeUser(t, "s3cret-pass")
		u.IsActive = false
		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "s3cret-pass"})

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success roundtrip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		u := activeUser(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)
		repo.EXPECT().FindByID(gomock.Any(), u.ID.String()).Return(u, nil)

		pair, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "s3cret-pass"})
		assert.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, pair.RefreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("negative access token is not a refresh token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		u := activeUser(t, "s3cret-pass")
		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)

		pair, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "s3cret-pass"})
		assert.NoError(t, err)

		_, err = svc.Refresh(ctx, pair.AccessToken)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success forgot then reset roundtrip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)

		u := activeUser(t, "old-password")

		var queued kafka.OutboxEvent
		outbox := &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				queued = event
				return nil
			},
		}
		svc := auth.NewService(repo, outbox)

		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)
		assert.NoError(t, svc.ForgotPassword(ctx, "jane@example.com"))
		assert.Equal(t, events.PasswordResetTopic, queued.Topic)

		var event events.PasswordResetRequestedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &event))
		assert.Equal(t, u.ID.String(), event.UserID)
		assert.NotEmpty(t, event.ResetToken)

		repo.EXPECT().FindByID(gomock.Any(), u.ID.String()).Return(u, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, updated *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-password")))
				return nil
			})

		assert.NoError(t, svc.ResetPassword(ctx, event.ResetToken, "new-password"))
	})

	t.Run("success unknown email stays silent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, &fakeOutboxRepository{
			createFn: func(ctx context.Context, event kafka.OutboxEvent) error {
				t.Fatal("nothing must be queued for an unknown email")
				return nil
			},
		})

		repo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		assert.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	})

	t.Run("negative refresh token cannot reset a password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := auth.NewService(repo, nil)

		u := activeUser(t, "old-password")
		repo.EXPECT().FindByEmail(gomock.Any(), "jane@example.com").Return(u, nil)

		pair, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "old-password"})
		assert.NoError(t, err)

		err = svc.ResetPassword(ctx, pair.RefreshToken, "new-password")

		assert.ErrorIs(t, err, autherrors.ErrInvalidResetToken)
	})
}
