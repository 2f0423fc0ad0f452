package api

import (
	"net/http"

	reqdto "rental-backoffice/internal/handler/dto/request"
	resdto "rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropertyHandler struct {
	cmds commands.PropertyCommands
	q    queries.PropertyQueries
}

func NewPropertyHandler(cmds commands.PropertyCommands, q queries.PropertyQueries) *PropertyHandler {
	return &PropertyHandler{cmds: cmds, q: q}
}

// @Summary Register property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePropertyRequest true "Create property request"
// @Success 201 {object} resdto.PropertyResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreatePropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create property failed")
		return
	}
	h.respond(c, id, http.StatusCreated)
}

// @Summary List properties
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param status query string false "active or inactive"
// @Success 200 {array} resdto.PropertyResponse
// @Router /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context(), newQueryParams(c).String("status"))
	if err != nil {
		httperr.Abort(c, err, "Failed to list properties")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPropertyViews(views))
}

// @Summary Get property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Success 200 {object} resdto.PropertyResponse
// @Failure 404 {object} httperr.Response
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, id, http.StatusOK)
}

// @Summary Set property status
// @Description Activate or deactivate a property; inactive properties take no new bookings
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.SetPropertyStatusRequest true "Status request"
// @Success 200 {object} resdto.PropertyResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /properties/{id}/status [patch]
func (h *PropertyHandler) SetStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetPropertyStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.SetStatus(c.Request.Context(), actor, id, req.Status); err != nil {
		httperr.Abort(c, err, "Status change failed")
		return
	}
	h.respond(c, id, http.StatusOK)
}

// @Summary Add unit
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param request body reqdto.AddUnitRequest true "Add unit request"
// @Success 201 {object} resdto.PropertyResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /properties/{id}/units [post]
func (h *PropertyHandler) AddUnit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddUnitRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.cmds.AddUnit(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Add unit failed")
		return
	}
	h.respond(c, id, http.StatusCreated)
}

func (h *PropertyHandler) respond(c *gin.Context, id uuid.UUID, status int) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load property")
		return
	}
	c.JSON(status, resdto.FromPropertyView(view))
}
