package api

import (
	"context"
	"net/http"

	reqdto "rental-backoffice/internal/handler/dto/request"
	resdto "rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GuestHandler struct {
	cmds commands.GuestCommands
	q    queries.GuestQueries
}

func NewGuestHandler(cmds commands.GuestCommands, q queries.GuestQueries) *GuestHandler {
	return &GuestHandler{cmds: cmds, q: q}
}

// @Summary Create guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateGuestRequest true "Create guest request"
// @Success 201 {object} resdto.GuestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /guests [post]
func (h *GuestHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateGuestRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create guest failed")
		return
	}
	h.respond(c, actor, id, http.StatusCreated)
}

// @Summary List guests
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name, email or phone fragment"
// @Param archived query bool false "Archived filter"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.GuestListResponse
// @Failure 400 {object} httperr.Response
// @Router /guests [get]
func (h *GuestHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	qp := newQueryParams(c)
	filter := queries.GuestFilter{Search: qp.String("search"), Archived: qp.Bool("archived")}
	limit := qp.Limit()
	cursor := qp.Cursor()
	if qp.Failed() {
		return
	}
	views, next, err := h.q.List(c.Request.Context(), actor, filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list guests")
		return
	}
	c.JSON(http.StatusOK, resdto.FromGuestViews(views, next))
}

// @Summary Get guest
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} resdto.GuestResponse
// @Failure 404 {object} httperr.Response
// @Router /guests/{id} [get]
func (h *GuestHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, actor, id, http.StatusOK)
}

// @Summary Update guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Param request body reqdto.UpdateGuestRequest true "Update guest request"
// @Success 200 {object} resdto.GuestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /guests/{id} [put]
func (h *GuestHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateGuestRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update guest failed")
		return
	}
	h.respond(c, actor, id, http.StatusOK)
}

// @Summary Archive guest
// @Description Archive a guest with no active stay and no checkout within the configured window (admin)
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} resdto.GuestResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /guests/{id}/archive [post]
func (h *GuestHandler) Archive(c *gin.Context) {
	h.transition(c, "Archive guest failed", h.cmds.Archive)
}

// @Summary Restore guest
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} resdto.GuestResponse
// @Failure 403 {object} httperr.Response
// @Router /guests/{id}/restore [post]
func (h *GuestHandler) Restore(c *gin.Context) {
	h.transition(c, "Restore guest failed", h.cmds.Restore)
}

func (h *GuestHandler) transition(c *gin.Context, msg string, run func(ctx context.Context, actor shared.Actor, id uuid.UUID) error) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := run(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err, msg)
		return
	}
	h.respond(c, actor, id, http.StatusOK)
}

func (h *GuestHandler) respond(c *gin.Context, actor shared.Actor, id uuid.UUID, status int) {
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load guest")
		return
	}
	c.JSON(status, resdto.FromGuestView(view))
}
