//go:build e2e

package booking_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/tests/common/authtest"
	"rental-backoffice/tests/common/dbtest"
	"rental-backoffice/tests/common/httptest"
	"rental-backoffice/tests/e2e"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type bookingSuite struct {
	e2e.SharedSuite

	admin      string
	propertyID uuid.UUID
	units      map[string]uuid.UUID
	guestID    uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	s.admin = authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))
	s.propertyID, s.units = dbtest.DefaultProperty(t, s.DB)
	s.guestID = dbtest.CreateTestGuest(t, s.DB, "Ana Lima", "ana@example.com")
}

func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format(time.DateOnly)
}

func (s *bookingSuite) bookingBody(unit string, checkin, checkout int, mutate ...func(map[string]any)) map[string]any {
	body := map[string]any{
		"property_id":   s.propertyID,
		"guest_id":      s.guestID,
		"channel":       "direct",
		"checkin_date":  day(checkin),
		"checkout_date": day(checkout),
		"total_amount":  "450.00",
		"currency":      "USD",
	}
	if unit != "" {
		body["unit_id"] = s.units[unit]
	}
	for _, m := range mutate {
		m(body)
	}
	return body
}

func (s *bookingSuite) create(body map[string]any) *response.CreateBookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, s.admin)
	var res response.CreateBookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	return &res
}

func (s *bookingSuite) TestCreate() {
	s.Run("reference, revenue and guest spend", func() {
		t := s.T()
		res := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))

		assert.Regexp(t, `^BK-[0-9A-Z]+-[0-9A-Z]+$`, res.Booking.Reference)
		assert.Equal(t, int32(3), res.Booking.Nights)
		assert.Equal(t, "pending", res.Booking.LifecycleState)
		assert.Nil(t, res.CleaningTask)

		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "finance_records", "booking_id = $1 AND type = 'revenue'", res.Booking.ID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/guests/"+s.guestID.String(), nil, s.admin)
		var g response.GuestResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &g)
		assert.True(t, decimal.RequireFromString("450").Equal(g.TotalSpend), g.TotalSpend.String())
	})

	s.Run("cleaning task on checkout day", func() {
		t := s.T()
		res := s.create(s.bookingBody(dbtest.DefaultUnitA, 1, 4, func(m map[string]any) { m["create_cleaning_task"] = true }))

		require.NotNil(t, res.CleaningTask)
		assert.Equal(t, day(4), res.CleaningTask.ScheduledDate)
		var scheduled time.Time
		err := s.DB.QueryRow(t.Context(), "SELECT scheduled_date FROM cleaning_tasks WHERE id = $1", res.CleaningTask.ID).Scan(&scheduled)
		require.NoError(t, err)
		assert.Equal(t, day(4), scheduled.Format(time.DateOnly))
	})

	s.Run("overlap on the same unit is rejected", func() {
		t := s.T()
		s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.bookingBody(dbtest.DefaultUnitA, 2, 5), s.admin)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings", "true"))
	})

	s.Run("checkout day is free for the next checkin", func() {
		s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))
		s.create(s.bookingBody(dbtest.DefaultUnitA, 3, 5))
		assert.Equal(s.T(), 2, dbtest.CountRows(s.T(), s.DB, "bookings", "true"))
	})

	s.Run("other unit is independent", func() {
		s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))
		s.create(s.bookingBody(dbtest.DefaultUnitB, 0, 3))
	})

	s.Run("whole-property booking collides with unit bookings", func() {
		t := s.T()
		s.create(s.bookingBody(dbtest.DefaultUnitB, 0, 3))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.bookingBody("", 1, 2), s.admin)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("invalid stay", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.bookingBody(dbtest.DefaultUnitA, 3, 3), s.admin)
		assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

func (s *bookingSuite) TestConflictCheck() {
	s.Run("reports overlapping bookings", func() {
		t := s.T()
		existing := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))

		body := map[string]any{
			"property_id":   s.propertyID,
			"unit_id":       s.units[dbtest.DefaultUnitA],
			"checkin_date":  day(1),
			"checkout_date": day(2),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/conflicts", body, s.admin)
		var res response.ConflictResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.True(t, res.HasConflict)
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, existing.Booking.Reference, res.Conflicts[0].Reference)

		body["exclude_booking_id"] = existing.Booking.ID
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/conflicts", body, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.False(t, res.HasConflict)
	})
}

func (s *bookingSuite) TestLifecycle() {
	s.Run("check in then check out", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, -3, -1))
		base := fmt.Sprintf("%s/%s", bookingsURL, created.Booking.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/check-in", nil, s.admin)
		var b response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &b)
		assert.Equal(t, "checked_in", b.LifecycleState)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/check-in", nil, s.admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, base+"/check-out", nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &b)
		assert.Equal(t, "checked_out", b.LifecycleState)
		assert.NotNil(t, b.CheckedOutAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, base+"/events", nil, s.admin)
		var events []response.BookingEventResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &events)
		kinds := make([]string, 0, len(events))
		for _, e := range events {
			kinds = append(kinds, e.Kind)
		}
		assert.Equal(t, []string{"created", "checked_in", "checked_out"}, kinds)
	})

	s.Run("future stay cannot check in", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, 5, 7))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf("%s/%s/check-in", bookingsURL, created.Booking.ID), nil, s.admin)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Check-in failed")
	})

	s.Run("recent stay cannot be archived", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, -3, -1))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf("%s/%s/archive", bookingsURL, created.Booking.ID), nil, s.admin)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Archive failed")
	})

	s.Run("assistant cannot delete", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 2))
		desk := authtest.CreateAndLogin(t, s.DB, s.Router, "desk@example.com", string(user.RoleAssistant))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf("%s/%s", bookingsURL, created.Booking.ID), nil, desk)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("delete removes revenue and restores spend", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 2))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf("%s/%s", bookingsURL, created.Booking.ID), nil, s.admin)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		assert.Equal(t, 0, dbtest.CountRows(t, s.DB, "finance_records", "booking_id = $1", created.Booking.ID))

		var spend decimal.Decimal
		err := s.DB.QueryRow(t.Context(), "SELECT total_spend FROM guests WHERE id = $1", s.guestID).Scan(&spend)
		require.NoError(t, err)
		assert.True(t, spend.IsZero(), spend.String())
	})
}

func (s *bookingSuite) TestListAndUpdate() {
	s.Run("filters and pages", func() {
		t := s.T()
		for i := range 3 {
			s.create(s.bookingBody(dbtest.DefaultUnitA, i*3, i*3+2))
		}
		other := dbtest.CreateTestGuest(t, s.DB, "Ben Ode", "ben@example.com")
		s.create(s.bookingBody(dbtest.DefaultUnitB, 0, 2, func(m map[string]any) { m["guest_id"] = other }))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s?guest_id=%s&limit=2", bookingsURL, s.guestID), nil, s.admin)
		var page response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 2)
		require.NotEmpty(t, page.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s?guest_id=%s&limit=2&after=%s", bookingsURL, s.guestID, page.NextCursor), nil, s.admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		assert.Len(t, page.Items, 1)
		assert.Empty(t, page.NextCursor)
	})

	s.Run("moving dates onto another stay conflicts", func() {
		t := s.T()
		s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 3))
		second := s.create(s.bookingBody(dbtest.DefaultUnitA, 5, 7))

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf("%s/%s", bookingsURL, second.Booking.ID),
			map[string]any{"checkin_date": day(2)}, s.admin)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf("%s/%s", bookingsURL, second.Booking.ID),
			map[string]any{"checkin_date": day(4), "total_amount": "600.00"}, s.admin)
		var b response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &b)
		assert.Equal(t, int32(3), b.Nights)
		assert.True(t, decimal.RequireFromString("600").Equal(b.TotalAmount))
	})
}

func (s *bookingSuite) TestDocumentsAndVoucher() {
	s.Run("upload attaches the stored uri", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 2))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "passport.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 scan"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := nethttptest.NewRequest(http.MethodPost, fmt.Sprintf("%s/%s/documents", bookingsURL, created.Booking.ID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+s.admin)
		w := nethttptest.NewRecorder()
		s.Router.ServeHTTP(w, req)

		var doc response.DocumentResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &doc)
		assert.Contains(t, doc.URI, created.Booking.Reference)
		assert.Contains(t, s.Documents.Keys(), strings.TrimPrefix(doc.URI, "mem://"))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%s", bookingsURL, created.Booking.ID), nil, s.admin)
		var b response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &b)
		assert.Equal(t, []string{doc.URI}, b.Documents)
	})

	s.Run("voucher is a pdf", func() {
		t := s.T()
		created := s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 2))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf("%s/%s/voucher.pdf", bookingsURL, created.Booking.ID), nil, s.admin)
		require.Equal(t, http.StatusOK, w.Code)
		httptest.AssertHeaders(t, w, map[string]string{"Content-Type": "application/pdf"})
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	})
}

func (s *bookingSuite) TestAutomations() {
	s.Run("booking.created rule queues a checkin email into the outbox", func() {
		t := s.T()
		rule := map[string]any{
			"name":       "Direct booking welcome",
			"trigger":    "booking.created",
			"conditions": map[string]any{"channel": "direct"},
			"actions":    []map[string]any{{"type": "send_checkin_email"}},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/automations", rule, s.admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		s.create(s.bookingBody(dbtest.DefaultUnitA, 0, 2, func(m map[string]any) { m["channel"] = "airbnb" }))
		created := s.create(s.bookingBody(dbtest.DefaultUnitB, 0, 2))

		assert.Eventually(t, func() bool {
			return dbtest.CountRows(t, s.DB, "notification_jobs", "payload->>'bookingId' = $1", created.Booking.ID.String()) == 1
		}, 10*time.Second, 100*time.Millisecond)
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "notification_jobs", "true"))
	})

	s.Run("manual trigger runs create_cleaning_task", func() {
		t := s.T()
		rule := map[string]any{
			"name":    "Turnover",
			"trigger": "manual.turnover",
			"actions": []map[string]any{{"type": "create_cleaning_task"}},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/automations", rule, s.admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := map[string]any{
			"trigger": "manual.turnover",
			"data": map[string]any{
				"propertyId": s.propertyID.String(),
				"unitId":     s.units[dbtest.DefaultUnitA].String(),
				"date":       day(1),
			},
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/automations/trigger", body, s.admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.Eventually(t, func() bool {
			return dbtest.CountRows(t, s.DB, "cleaning_tasks", "property_id = $1", s.propertyID) == 1
		}, 10*time.Second, 100*time.Millisecond)
	})
}
