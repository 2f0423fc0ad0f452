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

type FinanceHandler struct {
	cmds commands.FinanceCommands
	q    queries.FinanceQueries
}

func NewFinanceHandler(cmds commands.FinanceCommands, q queries.FinanceQueries) *FinanceHandler {
	return &FinanceHandler{cmds: cmds, q: q}
}

// @Summary List finance records
// @Description Records newest first plus totals per type and currency for the same filter
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param type query string false "revenue or expense"
// @Param status query string false "pending or paid"
// @Param property_id query string false "Property ID"
// @Param booking_id query string false "Booking ID"
// @Param from query string false "On or after (YYYY-MM-DD)"
// @Param to query string false "On or before (YYYY-MM-DD)"
// @Param limit query int false "Max items"
// @Success 200 {object} resdto.FinanceListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /finance-records [get]
func (h *FinanceHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	qp := newQueryParams(c)
	filter := queries.FinanceFilter{
		Type:       qp.String("type"),
		Status:     qp.String("status"),
		PropertyID: qp.UUID("property_id"),
		BookingID:  qp.UUID("booking_id"),
		DateFrom:   qp.Date("from"),
		DateTo:     qp.Date("to"),
	}
	limit := qp.Limit()
	if qp.Failed() {
		return
	}
	views, totals, err := h.q.List(c.Request.Context(), actor, filter, limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list finance records")
		return
	}
	res, err := resdto.FromFinanceViews(views, totals)
	if err != nil {
		httperr.Abort(c, err, "Failed to list finance records")
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Edit finance record
// @Description Change the payment status and method; amounts are immutable
// @Tags finance
// @Accept json
// @Security BearerAuth
// @Param id path string true "Finance record ID"
// @Param request body reqdto.UpdateFinanceRecordRequest true "Edit request"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /finance-records/{id} [patch]
func (h *FinanceHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateFinanceRecordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Settle(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Finance record update failed")
		return
	}
	c.Status(http.StatusNoContent)
}
