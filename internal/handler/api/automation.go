package api

import (
	"net/http"

	reqdto "rental-backoffice/internal/handler/dto/request"
	resdto "rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AutomationHandler struct {
	cmds commands.AutomationCommands
	q    queries.AutomationQueries
}

func NewAutomationHandler(cmds commands.AutomationCommands, q queries.AutomationQueries) *AutomationHandler {
	return &AutomationHandler{cmds: cmds, q: q}
}

// @Summary Create automation
// @Tags automations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AutomationRequest true "Automation rule"
// @Success 201 {object} resdto.AutomationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /automations [post]
func (h *AutomationHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.AutomationRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create automation failed")
		return
	}
	h.respond(c, actor, id, http.StatusCreated)
}

// @Summary List automations
// @Tags automations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AutomationResponse
// @Failure 403 {object} httperr.Response
// @Router /automations [get]
func (h *AutomationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), actor)
	if err != nil {
		httperr.Abort(c, err, "Failed to list automations")
		return
	}
	items, err := resdto.FromAutomationViews(views)
	if err != nil {
		httperr.Abort(c, err, "Failed to list automations")
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get automation
// @Tags automations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Automation ID"
// @Success 200 {object} resdto.AutomationResponse
// @Failure 404 {object} httperr.Response
// @Router /automations/{id} [get]
func (h *AutomationHandler) Get(c *gin.Context) {
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

// @Summary Replace automation
// @Tags automations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Automation ID"
// @Param request body reqdto.AutomationRequest true "Automation rule"
// @Success 200 {object} resdto.AutomationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /automations/{id} [put]
func (h *AutomationHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AutomationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update automation failed")
		return
	}
	h.respond(c, actor, id, http.StatusOK)
}

// @Summary Delete automation
// @Tags automations
// @Security BearerAuth
// @Param id path string true "Automation ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /automations/{id} [delete]
func (h *AutomationHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), actor, id); err != nil {
		httperr.Abort(c, err, "Delete automation failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Trigger automations
// @Description Evaluate the enabled rules of a trigger against the given data and queue the actions of every match
// @Tags automations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.TriggerAutomationRequest true "Trigger request"
// @Success 200 {object} shared.TriggerResult
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /automations/trigger [post]
func (h *AutomationHandler) Trigger(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.TriggerAutomationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Trigger(c.Request.Context(), actor, req.Trigger, req.Data)
	if err != nil {
		httperr.Abort(c, err, "Trigger failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Import automations
// @Description Create every rule of a YAML document (a list, or {automations: [...]}) in one transaction
// @Tags automations
// @Accept application/x-yaml
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file false "YAML file (multipart)"
// @Success 201 {object} resdto.ImportAutomationsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /automations/import [post]
func (h *AutomationHandler) Import(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	body := c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			httperr.Abort(c, errs.Wrap(commands.ErrMalformedRuleImport, err.Error()), "Failed to read import file")
			return
		}
		defer f.Close()
		body = f
	}
	ids, err := h.cmds.Import(c.Request.Context(), actor, body)
	if err != nil {
		httperr.Abort(c, err, "Import failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.ImportAutomationsResponse{IDs: ids, Count: len(ids)})
}

func (h *AutomationHandler) respond(c *gin.Context, actor shared.Actor, id uuid.UUID, status int) {
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load automation")
		return
	}
	res, err := resdto.FromAutomationView(view)
	if err != nil {
		httperr.Abort(c, err, "Failed to load automation")
		return
	}
	c.JSON(status, res)
}
