// Package errs maps domain errors to HTTP responses.
package errs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	clientsdomain "github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/logging"
	projectsdomain "github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	"github.com/clientdesk/clientdesk-backend/internal/serializers"
	usersdomain "github.com/clientdesk/clientdesk-backend/internal/users/domain"
)

// ErrNotFound is returned for routes whose path parameters cannot identify
// any record, such as a non-numeric id.
var ErrNotFound = errors.New("not found")

var ErrStatusMap = map[error]int{
	authdomain.ErrUnauthenticated:       http.StatusUnauthorized,
	authdomain.ErrInvalidToken:          http.StatusUnauthorized,
	authdomain.ErrRevocationUnsupported: http.StatusBadRequest,
	clientsdomain.ErrClientNotFound:     http.StatusNotFound,
	projectsdomain.ErrProjectNotFound:   http.StatusNotFound,
	usersdomain.ErrUserNotFound:         http.StatusNotFound,
	ErrNotFound:                         http.StatusNotFound,
}

// Status returns the HTTP status and JSON body for err.
func Status(err error) (int, gin.H) {
	var verr *serializers.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields}
	}

	for knownErr, status := range ErrStatusMap {
		if errors.Is(err, knownErr) {
			return status, gin.H{"error": knownErr.Error()}
		}
	}
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}

// Respond writes err to the client and aborts the handler chain. Unmapped
// errors are logged with the request-scoped logger.
func Respond(c *gin.Context, err error) {
	status, body := Status(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).LogError(c.Request.Method+" "+c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, body)
}
