package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk-backend/internal/api/errs"
	"github.com/clientdesk/clientdesk-backend/internal/auth"
	authdomain "github.com/clientdesk/clientdesk-backend/internal/auth/domain"
	"github.com/clientdesk/clientdesk-backend/internal/clients/domain"
	"github.com/clientdesk/clientdesk-backend/internal/clients/service"
	"github.com/clientdesk/clientdesk-backend/internal/serializers"
)

func render(c service.ClientWithProjects) serializers.ClientOut {
	return serializers.Client(c.Client, c.Projects)
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

	out := make([]serializers.ClientOut, 0, len(items))
	for _, item := range items {
		out = append(out, render(item))
	}
	c.JSON(http.StatusOK, out)
}

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
	in, err := serializers.ParseClientCreate(body)
	if err != nil {
		errs.Respond(c, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), user, *in.ClientName)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, render(*created))
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, render(*item))
}

func (h *Handler) update(c *gin.Context) {
	h.save(c, false)
}

func (h *Handler) partialUpdate(c *gin.Context) {
	h.save(c, true)
}

func (h *Handler) save(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	// An unknown client is reported before any body validation.
	if err := h.svc.Exists(c.Request.Context(), id); err != nil {
		errs.Respond(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	in, err := serializers.ParseClientUpdate(body, partial)
	if err != nil {
		errs.Respond(c, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, in.ClientName)
	if err != nil {
		errs.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, render(*item))
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		errs.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id parameter. Anything that is not a positive integer
// cannot name a client, so it is answered with 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errs.Respond(c, errs.ErrNotFound)
		return 0, false
	}
	return id, true
}
