package api

import (
	"net/http"

	"rental-backoffice/internal/handler/httperr"
	"rental-backoffice/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ArchiveHandler struct {
	bookings commands.BookingCommands
}

func NewArchiveHandler(bookings commands.BookingCommands) *ArchiveHandler {
	return &ArchiveHandler{bookings: bookings}
}

// @Summary Permanently delete an archived record
// @Description Hard-delete an archived booking or guest (admin). Properties are never hard-deleted.
// @Tags archive
// @Security BearerAuth
// @Param table path string true "bookings, guests or properties"
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /archive/{table}/{id} [delete]
func (h *ArchiveHandler) PermanentlyDelete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookings.PermanentlyDelete(c.Request.Context(), actor, c.Param("table"), id); err != nil {
		httperr.Abort(c, err, "Permanent delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}
