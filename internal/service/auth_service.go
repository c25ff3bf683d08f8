package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/cms-service/internal/auth"
	"github.com/spec-kit/cms-service/internal/config"
	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/events"
	"github.com/spec-kit/cms-service/internal/repository"
	apperrors "github.com/spec-kit/cms-service/pkg/util"
)

// InvalidCredentialsMessage is returned for both unknown usernames and wrong
// passwords so the two cases cannot be told apart from outside.
const InvalidCredentialsMessage = "invalid username or password"

// Session bundles an issued token with a non-sensitive identity summary.
type Session struct {
	Token     string
	TokenType string
	ExpiresIn int64
	User      *domain.User
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	codec       *auth.TokenCodec
	audit       *LoginAudit
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
	defaultRole string
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Codec      *auth.TokenCodec
	Audit      *LoginAudit
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		codec:       deps.Codec,
		audit:       deps.Audit,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		bcryptCost:  cfg.BcryptCost,
		defaultRole: cfg.DefaultRole,
	}
}

// Login authenticates a user by username and password. Unknown username and
// wrong password collapse into one failure; account status is only checked
// after the credential has been proven correct, so status messages leak
// nothing to a guesser.
func (s *AuthService) Login(ctx context.Context, username, password string, now time.Time) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized(InvalidCredentialsMessage)
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		s.audit.RecordFailure(ctx, username)
		return nil, apperrors.NewUnauthorized(InvalidCredentialsMessage)
	}

	if err := checkAccountStatus(user.Status); err != nil {
		return nil, err
	}

	session, err := s.issueSession(user, now)
	if err != nil {
		return nil, err
	}

	s.audit.RecordSuccess(ctx, username, now)
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserLoggedIn,
		Actor:     events.Actor{UserID: user.ID, Username: user.Username},
		Timestamp: now,
		Payload:   events.UserLoggedInPayload{UserID: user.ID, Username: user.Username},
	})
	return session, nil
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a new account with the configured default role and ends
// with a usable session. Validation failures occur before any persistence
// write; no partial account is ever created.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, now time.Time) (*Session, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("password confirmation does not match", nil)
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	}

	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	// Self-registration grants exactly the default low-privilege role.
	if err := s.users.AssignRole(ctx, user.ID, s.defaultRole); err != nil {
		return nil, err
	}
	user.Roles = []string{s.defaultRole}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		Actor:     events.Actor{UserID: user.ID, Username: user.Username},
		Timestamp: now,
		Payload:   events.UserRegisteredPayload{UserID: user.ID, Username: user.Username, Roles: user.Roles},
	})

	return s.issueSession(user, now)
}

func (s *AuthService) issueSession(user *domain.User, now time.Time) (*Session, error) {
	token, expiresAt, err := s.codec.Issue(user, user.Roles, now)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(expiresAt.Sub(now).Seconds()),
		User:      user,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// checkAccountStatus gates login on account state. Distinct messages are
// deliberate: the caller has already proven the credential.
func checkAccountStatus(status domain.UserStatus) error {
	switch status {
	case domain.UserStatusActive:
		return nil
	case domain.UserStatusInactive:
		return apperrors.NewUnauthorized("account is inactive")
	case domain.UserStatusLocked:
		return apperrors.NewUnauthorized("account is locked")
	case domain.UserStatusPendingVerification:
		return apperrors.NewUnauthorized("account is pending verification")
	default:
		return apperrors.NewUnauthorized("account is not available")
	}
}
