package api

import (
	"context"
	"fmt"
	"net/http"

	reqdto "rental-backoffice/internal/handler/dto/request"
	resdto "rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"
	"rental-backoffice/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUploadTooLarge = errs.Validation("document exceeds the upload limit")

type BookingHandler struct {
	cmds      commands.BookingCommands
	q         queries.BookingQueries
	maxUpload int64
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries, cfg config.Config) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q, maxUpload: cfg.Server.MaxUploadBytes}
}

// @Summary Create booking
// @Description Create a booking after checking the property/unit calendar; writes the revenue record and adds to the guest's spend
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Create booking failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, result.BookingID)
	if err != nil {
		httperr.Abort(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{
		Booking:      resdto.FromBookingView(view),
		CleaningTask: resdto.FromCreatedCleaningTask(result.CleaningTask),
	})
}

// @Summary List bookings
// @Description List bookings newest first with keyset pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param property_id query string false "Property ID"
// @Param guest_id query string false "Guest ID"
// @Param state query string false "pending, checked_in or checked_out"
// @Param archived query bool false "Archived filter"
// @Param from query string false "Stays ending after this date (YYYY-MM-DD)"
// @Param to query string false "Stays starting before this date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	qp := newQueryParams(c)
	filter := queries.BookingFilter{
		PropertyID: qp.UUID("property_id"),
		GuestID:    qp.UUID("guest_id"),
		State:      qp.String("state"),
		Archived:   qp.Bool("archived"),
		StayFrom:   qp.Date("from"),
		StayTo:     qp.Date("to"),
	}
	limit := qp.Limit()
	cursor := qp.Cursor()
	if qp.Failed() {
		return
	}
	views, next, err := h.q.List(c.Request.Context(), actor, filter, cursor, limit)
	if err != nil {
		httperr.Abort(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views, next))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
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

// @Summary Update booking
// @Description Partial update; changed dates are re-checked for conflicts and the guest's spend follows the new total
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Update booking request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), actor, id, req.ToInput()); err != nil {
		httperr.Abort(c, err, "Update booking failed")
		return
	}
	h.respond(c, actor, id, http.StatusOK)
}

// @Summary Delete booking
// @Description Delete a booking, its finance records and its share of the guest's spend (admin)
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	h.command(c, http.StatusNoContent, "Delete booking failed", h.cmds.Delete)
}

// @Summary Check in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/check-in [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.command(c, http.StatusOK, "Check-in failed", h.cmds.CheckIn)
}

// @Summary Check out
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/check-out [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.command(c, http.StatusOK, "Check-out failed", h.cmds.CheckOut)
}

// @Summary Archive booking
// @Description Archive a booking whose checkout is more than the configured number of days ago (admin)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/archive [post]
func (h *BookingHandler) Archive(c *gin.Context) {
	h.command(c, http.StatusOK, "Archive failed", h.cmds.Archive)
}

// @Summary Restore booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/restore [post]
func (h *BookingHandler) Restore(c *gin.Context) {
	h.command(c, http.StatusOK, "Restore failed", h.cmds.Restore)
}

// @Summary Check availability
// @Description Report bookings overlapping the given stay in the unit (or property) scope
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ConflictCheckRequest true "Conflict check request"
// @Success 200 {object} resdto.ConflictResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/conflicts [post]
func (h *BookingHandler) CheckConflict(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.ConflictCheckRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.CheckConflict(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httperr.Abort(c, err, "Conflict check failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromConflictResult(result))
}

// @Summary Booking history
// @Description Lifecycle events of a booking, oldest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.BookingEventResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/events [get]
func (h *BookingHandler) Events(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	views, err := h.q.Events(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load booking events")
		return
	}
	events, err := resdto.FromBookingEvents(views)
	if err != nil {
		httperr.Abort(c, err, "Failed to load booking events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// @Summary Upload booking document
// @Description Store a document (multipart field "file") and attach its URI to the booking
// @Tags bookings
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param file formData file true "Document"
// @Success 201 {object} resdto.DocumentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/documents [post]
func (h *BookingHandler) UploadDocument(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.Abort(c, errs.Wrap(commands.ErrDocumentRequired, err.Error()), "Document required")
		return
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		httperr.Abort(c, errs.Wrapf(errUploadTooLarge, "%d > %d bytes", fh.Size, h.maxUpload), "Document too large")
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Abort(c, err, "Failed to read document")
		return
	}
	defer f.Close()

	uri, err := h.cmds.AttachDocument(c.Request.Context(), actor, id, commands.DocumentUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
		Size:        fh.Size,
	})
	if err != nil {
		httperr.Abort(c, err, "Upload failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.DocumentResponse{URI: uri})
}

// @Summary Booking voucher
// @Description Printable confirmation with a QR code of the reference
// @Tags bookings
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/voucher.pdf [get]
func (h *BookingHandler) Voucher(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdf, view, err := h.q.Voucher(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, "Failed to render voucher")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, view.Reference))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// command runs a lifecycle transition on the booking in the path and answers with the
// booking as it is afterwards (or no content).
func (h *BookingHandler) command(c *gin.Context, status int, msg string, run func(ctx context.Context, actor shared.Actor, id uuid.UUID) error) {
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
	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	h.respond(c, actor, id, status)
}

func (h *BookingHandler) respond(c *gin.Context, actor shared.Actor, id uuid.UUID, status int) {
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err, "Failed to load booking")
		return
	}
	c.JSON(status, resdto.FromBookingView(view))
}
