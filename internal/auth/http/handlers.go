package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk-backend/internal/api/errs"
	"github.com/clientdesk/clientdesk-backend/internal/auth"
	"github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	"github.com/clientdesk/clientdesk-backend/internal/serializers"
)

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		errs.Respond(c, domain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, serializers.User(*user))
}

// RevokeToken invalidates the credential the request was made with.
func (h *Handler) RevokeToken(c *gin.Context) {
	if h.revoker == nil {
		errs.Respond(c, domain.ErrRevocationUnsupported)
		return
	}

	if err := h.revoker.Revoke(c.Request.Context(), auth.Credential(c)); err != nil {
		errs.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
