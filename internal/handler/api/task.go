package api

import (
	"net/http"

	reqdto "rental-backoffice/internal/handler/dto/request"
	resdto "rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	cmds commands.TaskCommands
	q    queries.TaskQueries
}

func NewTaskHandler(cmds commands.TaskCommands, q queries.TaskQueries) *TaskHandler {
	return &TaskHandler{cmds: cmds, q: q}
}

// @Summary Create cleaning task
// @Tags cleaning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCleaningTaskRequest true "Create cleaning task request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cleaning-tasks [post]
func (h *TaskHandler) CreateCleaning(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateCleaningTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.CreateCleaning(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create cleaning task failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List cleaning tasks
// @Description Cleaners only see the tasks assigned to them
// @Tags cleaning
// @Produce json
// @Security BearerAuth
// @Param property_id query string false "Property ID"
// @Param booking_id query string false "Booking ID"
// @Param status query string false "not_started, in_progress or completed"
// @Param assignee_id query string false "Assignee user ID"
// @Param from query string false "Scheduled on or after (YYYY-MM-DD)"
// @Param to query string false "Scheduled on or before (YYYY-MM-DD)"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.CleaningTaskResponse
// @Failure 400 {object} httperr.Response
// @Router /cleaning-tasks [get]
func (h *TaskHandler) ListCleaning(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	qp := newQueryParams(c)
	filter := queries.CleaningTaskFilter{
		PropertyID: qp.UUID("property_id"),
		BookingID:  qp.UUID("booking_id"),
		Status:     qp.String("status"),
		AssigneeID: qp.UUID("assignee_id"),
		DateFrom:   qp.Date("from"),
		DateTo:     qp.Date("to"),
	}
	limit := qp.Limit()
	if qp.Failed() {
		return
	}
	views, err := h.q.ListCleaning(c.Request.Context(), actor, filter, limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list cleaning tasks")
		return
	}
	items, err := resdto.FromCleaningTaskViews(views)
	if err != nil {
		httperr.Abort(c, err, "Failed to list cleaning tasks")
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Update cleaning task
// @Tags cleaning
// @Accept json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.UpdateCleaningTaskRequest true "Update cleaning task request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cleaning-tasks/{id} [put]
func (h *TaskHandler) UpdateCleaning(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateCleaningTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.UpdateCleaning(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update cleaning task failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Complete cleaning task
// @Description Mark the task completed; a cost writes one cleaning expense
// @Tags cleaning
// @Accept json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.ResolveCleaningTaskRequest true "Resolve request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cleaning-tasks/{id}/resolve [post]
func (h *TaskHandler) ResolveCleaning(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ResolveCleaningTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.ResolveCleaning(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Resolve cleaning task failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create maintenance task
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateMaintenanceTaskRequest true "Create maintenance task request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /maintenance-tasks [post]
func (h *TaskHandler) CreateMaintenance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateMaintenanceTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.CreateMaintenance(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create maintenance task failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List maintenance tasks
// @Description Maintenance staff only see the tasks assigned to them
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param property_id query string false "Property ID"
// @Param status query string false "open, in_progress or resolved"
// @Param assignee_id query string false "Assignee user ID"
// @Param priority query string false "low, medium, high or urgent"
// @Param limit query int false "Max items"
// @Success 200 {array} resdto.MaintenanceTaskResponse
// @Failure 400 {object} httperr.Response
// @Router /maintenance-tasks [get]
func (h *TaskHandler) ListMaintenance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	qp := newQueryParams(c)
	filter := queries.MaintenanceTaskFilter{
		PropertyID: qp.UUID("property_id"),
		Status:     qp.String("status"),
		AssigneeID: qp.UUID("assignee_id"),
		Priority:   qp.String("priority"),
	}
	limit := qp.Limit()
	if qp.Failed() {
		return
	}
	views, err := h.q.ListMaintenance(c.Request.Context(), actor, filter, limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list maintenance tasks")
		return
	}
	items, err := resdto.FromMaintenanceTaskViews(views)
	if err != nil {
		httperr.Abort(c, err, "Failed to list maintenance tasks")
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Update maintenance task
// @Tags maintenance
// @Accept json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.UpdateMaintenanceTaskRequest true "Update maintenance task request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /maintenance-tasks/{id} [put]
func (h *TaskHandler) UpdateMaintenance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateMaintenanceTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.UpdateMaintenance(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update maintenance task failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resolve maintenance task
// @Description Mark the task resolved; a cost writes one maintenance expense
// @Tags maintenance
// @Accept json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.ResolveMaintenanceTaskRequest true "Resolve request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /maintenance-tasks/{id}/resolve [post]
func (h *TaskHandler) ResolveMaintenance(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ResolveMaintenanceTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.ResolveMaintenance(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Resolve maintenance task failed")
		return
	}
	c.Status(http.StatusNoContent)
}
