package auth

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "go-elms/internal/auth/errors"
	"go-elms/internal/events"
	"go-elms/internal/messaging/kafka"
	"go-elms/internal/shared/apperror"
	"go-elms/internal/shared/contextutil"
	"go-elms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = time.Hour

	purposeRefresh       = "refresh"
	purposePasswordReset = "password_reset"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, actorID string) (MeResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	users  user.Repository
	outbox kafka.OutboxRepository
	secret []byte
	logger *zap.Logger
}

// NewService reads JWT_SECRET once at construction. outbox may be nil; reset
// mails are then only logged instead of queued.
func NewService(users user.Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:  users,
		outbox: outbox,
		secret: []byte(os.Getenv("JWT_SECRET")),
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		logger.Error("find user failed", zap.Error(err))
		return TokenPairResponse{}, apperror.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issueTokenPair(u)
	if err != nil {
		logger.Error("sign token failed", zap.Error(err))
		return TokenPairResponse{}, apperror.ErrInternal
	}

	logger.Info("user logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role.String()),
	)
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	claims, err := s.parseToken(refreshToken)
	if err != nil || claims["purpose"] != purposeRefresh {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, _ := claims["user_id"].(string)
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		logger.Error("find user failed", zap.Error(err))
		return TokenPairResponse{}, apperror.ErrInternal
	}

	if !u.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	pair, err := s.issueTokenPair(u)
	if err != nil {
		logger.Error("sign token failed", zap.Error(err))
		return TokenPairResponse{}, apperror.ErrInternal
	}
	return pair, nil
}

func (s *service) GetMe(ctx context.Context, actorID string) (MeResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrInvalidToken
		}
		logger.Error("find user failed", zap.Error(err))
		return MeResponse{}, apperror.ErrInternal
	}

	return MeResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.String(),
		IsActive: u.IsActive,
	}, nil
}

// ForgotPassword never reveals whether the address exists. A reset token is
// queued for delivery only when it does.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	logger := contextutil.GetLogger(ctx, s.logger)
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Info("password reset requested for unknown email")
			return nil
		}
		logger.Error("find user failed", zap.Error(err))
		return apperror.ErrInternal
	}

	now := time.Now()
	expiresAt := now.Add(resetTokenTTL)
	token, err := s.signToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"purpose": purposePasswordReset,
		"iat":     now.Unix(),
		"exp":     expiresAt.Unix(),
	})
	if err != nil {
		logger.Error("sign reset token failed", zap.Error(err))
		return apperror.ErrInternal
	}

	if s.outbox == nil {
		logger.Info("password reset token issued, no broker configured",
			zap.String("user_id", u.ID.String()),
		)
		return nil
	}

	payload, err := json.Marshal(events.PasswordResetRequestedEvent{
		EventType:  events.EventTypePasswordResetRequested,
		UserID:     u.ID.String(),
		Email:      u.Email,
		ResetToken: token,
		ExpiresAt:  expiresAt.UTC(),
		OccurredAt: now.UTC(),
	})
	if err != nil {
		return apperror.ErrInternal
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "user",
		AggregateID:   u.ID.String(),
		EventType:     events.EventTypePasswordResetRequested,
		Topic:         events.PasswordResetTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		logger.Error("enqueue reset event failed", zap.Error(err))
		return apperror.ErrInternal
	}

	logger.Info("password reset queued", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger := contextutil.GetLogger(ctx, s.logger)

	claims, err := s.parseToken(token)
	if err != nil || claims["purpose"] != purposePasswordReset {
		return autherrors.ErrInvalidResetToken
	}

	userID, _ := claims["user_id"].(string)
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrInvalidResetToken
		}
		logger.Error("find user failed", zap.Error(err))
		return apperror.ErrInternal
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password failed", zap.Error(err))
		return apperror.ErrInternal
	}
	u.Password = string(hashed)

	if err := s.users.Update(ctx, u); err != nil {
		logger.Error("update password failed", zap.Error(err))
		return apperror.ErrInternal
	}

	logger.Info("password reset completed", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) issueTokenPair(u *user.User) (TokenPairResponse, error) {
	now := time.Now()

	access, err := s.signToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	refresh, err := s.signToken(jwt.MapClaims{
		"user_id": u.ID.String(),
		"purpose": purposeRefresh,
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *service) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *service) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
