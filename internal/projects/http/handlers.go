package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk-backend/internal/api/errs"
	"github.com/clientdesk/clientdesk-backend/internal/auth"
	authdomain "github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	"github.com/clientdesk/clientdesk-backend/internal/projects/domain"
	"github.com/clientdesk/clientdesk-backend/internal/projects/service"
	"github.com/clientdesk/clientdesk-backend/internal/serializers"
)

func (h *Handler) create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		errs.Respond(c, authdomain.ErrUnauthenticated)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	in, err := serializers.ParseProjectCreate(body)
	if err != nil {
		errs.Respond(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), user, service.CreateInput{
		ProjectName: in.ProjectName,
		ClientID:    in.ClientID,
		UserIDs:     in.UserIDs,
	})
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, serializers.Project(*p))
}

func (h *Handler) list(c *gin.Context) {
	q, err := serializers.ParseListQuery(c.Query)
	if err != nil {
		errs.Respond(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), domain.ListFilter{
		Search:        q.Search,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: q.CreatedBefore,
	})
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Projects(items))
}

func (h *Handler) mine(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		errs.Respond(c, authdomain.ErrUnauthenticated)
		return
	}

	items, err := h.svc.Mine(c.Request.Context(), user)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, serializers.Projects(items))
}
