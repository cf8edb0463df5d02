package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	PermManageOrganization = "manage_organization"
	PermRecordIntake       = "record_intake"
	PermRecordPickup       = "record_pickup"
	PermSendNotifications  = "send_notifications"
	PermViewInsights       = "view_insights"
	PermManageIntegrations = "manage_integrations"
	PermViewAuditLogs      = "view_audit_logs"
)

// rolePermissions maps a profile role onto its permission set. Role is the
// single source of authorization scope.
var rolePermissions = map[string][]string{
	"admin": {
		PermManageOrganization, PermRecordIntake, PermRecordPickup,
		PermSendNotifications, PermViewInsights, PermManageIntegrations,
		PermViewAuditLogs,
	},
	"manager": {
		PermRecordIntake, PermRecordPickup, PermSendNotifications,
		PermViewInsights, PermViewAuditLogs,
	},
	"staff": {
		PermRecordIntake, PermRecordPickup, PermSendNotifications,
	},
	"recipient": {},
}

func PermissionsForRole(role string) []string {
	return rolePermissions[role]
}

type User struct {
	ID             int64    `json:"id"`
	OrganizationID int64    `json:"organization_id"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Permissions    []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier is the single pluggable authentication strategy. The
// implementation is chosen once at startup from config, never per request.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	Verifier() TokenVerifier
	GetUserByID(userID int64) (*User, error)
	HashPassword(password string) (string, error)
}

type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetUserByID(userID int64) (*User, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)

type userCtxKey string

const contextUserKey userCtxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
