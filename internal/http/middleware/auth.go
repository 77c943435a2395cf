package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-irrigation-backend/internal/auth"
	"github.com/tbourn/go-irrigation-backend/internal/domain"
)

// Context keys set by Authenticate.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// DemoUserID is the identity used when token verification is disabled and
// no X-User-ID header is sent.
const DemoUserID = "demo-user"

// Authenticate resolves the caller and stores its id and role in the Gin
// context. With an empty secret, tokens are not verified and the caller is
// taken from X-User-ID (development mode). Inactive accounts get 401.
func Authenticate(secret []byte, resolver auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID, role string
		if len(secret) == 0 {
			userID = strings.TrimSpace(c.GetHeader("X-User-ID"))
			if userID == "" {
				userID = DemoUserID
			}
			role = domain.RoleUser
		} else {
			raw := bearer(c.GetHeader("Authorization"))
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				abortAuth(c, http.StatusUnauthorized, "unauthorized", "missing or invalid bearer token")
				return
			}
			userID, role = claims.Subject, claims.Role
		}

		if resolver != nil {
			id, err := resolver.Resolve(c.Request.Context(), userID, role)
			switch {
			case errors.Is(err, auth.ErrInactive):
				abortAuth(c, http.StatusUnauthorized, "unauthorized", "user account is inactive")
				return
			case err != nil:
				LoggerFrom(c).Error().Err(err).Msg("resolve identity")
				abortAuth(c, http.StatusInternalServerError, "internal_error", "could not resolve user")
				return
			}
			userID, role = id.UserID, id.Role
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole rejects callers whose role does not grant required with 403.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Allows(c.GetString(CtxRole), required) {
			abortAuth(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

func bearer(h string) string {
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func abortAuth(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       code,
		"message":    msg,
	})
}
