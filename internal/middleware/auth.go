package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
	"kariyer_backend/pkg/contextkeys"
)

// SessionUsers loads the account behind a session token.
type SessionUsers interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
}

// Authenticator resolves the session from the cookie or the Authorization header.
// Identity and role come from the stored account, so role changes and
// deactivation apply to sessions that are already open.
type Authenticator struct {
	tokens     *auth.TokenManager
	users      SessionUsers
	cookieName string
}

func NewAuthenticator(tokens *auth.TokenManager, users SessionUsers, cookieName string) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, cookieName: cookieName}
}

func (a *Authenticator) CookieName() string {
	return a.cookieName
}

// tokenFromRequest prefers the bearer header, then the session cookie, then
// the "token" query parameter (browsers cannot set headers on websocket upgrades).
func (a *Authenticator) tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(a.cookieName); err == nil && cookie != "" {
		return cookie
	}
	if c.IsWebsocket() {
		return c.Query("token")
	}
	return ""
}

// resolve verifies the token and loads its account.
func (a *Authenticator) resolve(c *gin.Context, tokenStr string) (*models.User, error) {
	claims, err := a.tokens.Parse(tokenStr)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	val, _ := c.Get(string(contextkeys.DBContextKey))
	db, ok := val.(*gorm.DB)
	if !ok {
		return nil, apperrors.InternalError(errors.New("db is not set on the request"))
	}
	user, err := a.users.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return user, nil
}

// Required aborts with 401 unless a valid session of an existing account is
// present, and with 403 when that account is deactivated.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := a.tokenFromRequest(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		user, err := a.resolve(c, tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// Optional sets the session when present and never aborts.
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := a.tokenFromRequest(c); tokenStr != "" {
			if user, err := a.resolve(c, tokenStr); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(contextkeys.UserIDKey, user.ID)
	c.Set(contextkeys.RoleKey, user.Role)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

// RequireRoles allows the request only for the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequireStaff is RequireRoles(ADMIN, MODERATOR).
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin, models.UserRoleModerator)
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}

// RequirePermission allows the request when the caller's role grants permission.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no role"))
			return
		}
		if !auth.HasPermission(role, permission) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

func GetRole(c *gin.Context) (models.UserRole, bool) {
	val, exists := c.Get(contextkeys.RoleKey)
	if !exists {
		return "", false
	}
	switch r := val.(type) {
	case models.UserRole:
		return r, true
	case string:
		return models.UserRole(r), true
	default:
		return "", false
	}
}
