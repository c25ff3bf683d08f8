package dto

import (
	"github.com/spec-kit/cms-service/internal/domain"
	"github.com/spec-kit/cms-service/internal/service"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserInformation is the non-sensitive identity summary returned alongside
// a token.
type UserInformation struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Status   string   `json:"status"`
	Roles    []string `json:"roles"`
}

// SessionResponse is the login/register result.
type SessionResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresIn int64           `json:"expires_in"`
	User      UserInformation `json:"user"`
}

// NewSessionResponse maps a service session to its response shape.
func NewSessionResponse(session *service.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token,
		TokenType: session.TokenType,
		ExpiresIn: session.ExpiresIn,
		User:      NewUserInformation(session.User),
	}
}

// NewUserInformation maps a user to its summary shape.
func NewUserInformation(user *domain.User) UserInformation {
	return UserInformation{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Status:   string(user.Status),
		Roles:    user.Roles,
	}
}
