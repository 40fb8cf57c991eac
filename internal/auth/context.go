// Package auth resolves the requesting user and carries it through the gin
// context.
package auth

import (
	"github.com/gin-gonic/gin"

	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

const (
	CtxUser       = "auth_user"
	CtxCredential = "auth_credential"
)

// SetUser stores the authenticated user and the credential it was resolved
// from.
func SetUser(c *gin.Context, user *usersdomain.User, credential string) {
	c.Set(CtxUser, user)
	c.Set(CtxCredential, credential)
}

// CurrentUser returns the user stored by the authentication middleware.
func CurrentUser(c *gin.Context) (*usersdomain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*usersdomain.User)
	return user, ok && user != nil
}

// Credential returns the raw credential presented with the request.
func Credential(c *gin.Context) string {
	return c.GetString(CtxCredential)
}
