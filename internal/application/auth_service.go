package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/apperror"
	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-ecommerce-backend/internal/domain/repository"
	"github.com/oksasatya/go-ecommerce-backend/pkg/helpers"
	"github.com/oksasatya/go-ecommerce-backend/pkg/mailer"
)

// EmailPublisher enqueues email jobs for the worker. *helpers.RabbitPublisher satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type AuthService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	Mail        EmailPublisher
	Logger      *logrus.Logger
	CompanyName string
	OTPTTL      time.Duration
	SessionTTL  time.Duration

	now func() time.Time
}

type AuthOptions struct {
	CompanyName string
	OTPTTL      time.Duration
	SessionTTL  time.Duration
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, mail EmailPublisher, logger *logrus.Logger, opts AuthOptions) *AuthService {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &AuthService{
		Users:       users,
		JWT:         jwt,
		Redis:       rdb,
		Mail:        mail,
		Logger:      orDiscard(logger),
		CompanyName: opts.CompanyName,
		OTPTTL:      opts.OTPTTL,
		SessionTTL:  opts.SessionTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates an unverified user and queues the OTP email.
// An earlier unverified signup for the same email is replaced.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return apperror.NewValidation("name, email and password are required")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.IsVerified:
		return apperror.NewConflict("email already in use")
	case err == nil:
		if err := s.Users.Delete(ctx, existing.ID); err != nil && !apperror.IsNotFound(err) {
			return apperror.Wrap("failed to replace pending signup", err)
		}
	case !apperror.IsNotFound(err):
		return apperror.Wrap("failed to look up user", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return apperror.NewValidation("password must be at most 72 bytes")
	}
	if err != nil {
		return apperror.Wrap("failed to hash password", err)
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return apperror.Wrap("failed to generate otp", err)
	}
	exp := s.now().Add(s.OTPTTL)

	u := &entity.User{
		Name:         name,
		Email:        email,
		Password:     hash,
		Role:         entity.RoleUser,
		OTP:          &code,
		OTPExpiresAt: &exp,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return apperror.Wrap("failed to create user", err)
	}

	if s.Mail != nil {
		job := mailer.NewSignupOTPJob(s.CompanyName, u.Email, u.Name, code, s.OTPTTL)
		if pErr := s.Mail.PublishJSON(ctx, job); pErr != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Error("enqueue signup otp email failed")
		}
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return nil
}

// VerifyEmail consumes a valid OTP and signs the user in.
func (s *AuthService) VerifyEmail(ctx context.Context, email, otp string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, TokenPair{}, apperror.NewValidation("invalid or expired OTP")
		}
		return nil, TokenPair{}, apperror.Wrap("failed to look up user", err)
	}
	if !u.OTPMatches(strings.TrimSpace(otp), s.now()) {
		return nil, TokenPair{}, apperror.NewValidation("invalid or expired OTP")
	}
	u.MarkVerified()
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, TokenPair{}, apperror.Wrap("failed to verify user", err)
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Login checks credentials of a verified user and issues a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, TokenPair{}, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, TokenPair{}, apperror.Wrap("failed to look up user", err)
	}
	if !u.IsVerified {
		return nil, TokenPair{}, apperror.NewUnauthorized("please verify your email before logging in")
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, TokenPair{}, apperror.NewUnauthorized("invalid email or password")
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records the session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate tokens failed")
		return TokenPair{}, apperror.Wrap("failed to issue tokens", err)
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"role":       string(u.Role),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := helpers.KeySession(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *AuthService) sign(userID, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens. The refresh token must carry the current session id.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperror.NewUnauthorized("invalid refresh token")
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return TokenPair{}, "", apperror.NewUnauthorized("invalid refresh token")
		}
		return TokenPair{}, "", apperror.Wrap("failed to look up user", err)
	}
	key := helpers.KeySession(u.ID)
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", apperror.NewUnauthorized("session expired")
		}
	}

	sid := uuid.NewString()
	pair, err := s.sign(u.ID, sid)
	if err != nil {
		return TokenPair{}, "", apperror.Wrap("failed to issue tokens", err)
	}
	if s.Redis != nil {
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.SessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, u.ID, nil
}

// Logout drops the session so outstanding access tokens stop working.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	if err := helpers.RedisDel(ctx, s.Redis, helpers.KeySession(userID)); err != nil {
		return apperror.Wrap("failed to end session", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}
