package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk-backend/internal/api/errs"
	"github.com/clientdesk/clientdesk-backend/internal/auth"
	"github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
)

// RequireUser resolves the request credential through authenticator and
// aborts with 401 when it is missing or rejected.
func RequireUser(authenticator domain.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := extractToken(c)
		if credential == "" {
			errs.Respond(c, domain.ErrUnauthenticated)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), credential)
		if err != nil {
			errs.Respond(c, err)
			return
		}

		auth.SetUser(c, user, credential)
		logging.FromContext(c.Request.Context()).Zerolog().
			Debug().Int64("user_id", user.ID).Msg("authenticated")
		c.Next()
	}
}

// extractToken reads "Token <key>" or "Bearer <token>" from the
// Authorization header.
func extractToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, value, ok := strings.Cut(header, " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(value)
	default:
		return ""
	}
}
