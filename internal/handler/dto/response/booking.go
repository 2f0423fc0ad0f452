package response

import (
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const dateLayout = time.DateOnly

type BookingResponse struct {
	ID             uuid.UUID        `json:"id"`
	Reference      string           `json:"reference"`
	Property       PropertyRef      `json:"property"`
	Unit           *UnitRef         `json:"unit,omitempty"`
	Guest          GuestRef         `json:"guest"`
	Channel        string           `json:"channel"`
	CheckinDate    string           `json:"checkin_date"`
	CheckoutDate   string           `json:"checkout_date"`
	Nights         int32            `json:"nights"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	Currency       string           `json:"currency"`
	PaymentStatus  string           `json:"payment_status"`
	DepositAmount  *decimal.Decimal `json:"deposit_amount,omitempty"`
	Notes          string           `json:"notes"`
	Documents      []string         `json:"documents"`
	LifecycleState string           `json:"lifecycle_state"`
	Archived       bool             `json:"archived"`
	CheckedInAt    *time.Time       `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time       `json:"checked_out_at,omitempty"`
	ArchivedAt     *time.Time       `json:"archived_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type PropertyRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

type UnitRef struct {
	ID       uuid.UUID `json:"id"`
	UnitCode string    `json:"unit_code"`
}

type GuestRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:             v.ID,
		Reference:      v.Reference,
		Property:       PropertyRef{ID: v.PropertyID, Code: v.PropertyCode, Name: v.PropertyName},
		Guest:          GuestRef{ID: v.GuestID, Name: v.GuestName, Email: v.GuestEmail},
		Channel:        v.Channel,
		CheckinDate:    v.CheckinDate.Format(dateLayout),
		CheckoutDate:   v.CheckoutDate.Format(dateLayout),
		Nights:         v.Nights,
		TotalAmount:    v.TotalAmount,
		Currency:       v.Currency,
		PaymentStatus:  v.PaymentStatus,
		DepositAmount:  v.DepositAmount,
		Notes:          v.Notes,
		Documents:      v.Documents,
		LifecycleState: v.LifecycleState,
		Archived:       v.ArchivedAt != nil,
		CheckedInAt:    v.CheckedInAt,
		CheckedOutAt:   v.CheckedOutAt,
		ArchivedAt:     v.ArchivedAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if res.Documents == nil {
		res.Documents = []string{}
	}
	if v.UnitID != nil {
		unit := &UnitRef{ID: *v.UnitID}
		if v.UnitCode != nil {
			unit.UnitCode = *v.UnitCode
		}
		res.Unit = unit
	}
	return res
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

func FromBookingViews(views []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		items = append(items, FromBookingView(v))
	}
	res := &BookingListResponse{Items: items}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}

type CreateBookingResponse struct {
	Booking      *BookingResponse             `json:"booking"`
	CleaningTask *CreatedCleaningTaskResponse `json:"cleaning_task,omitempty"`
}

type CreatedCleaningTaskResponse struct {
	ID            uuid.UUID `json:"id"`
	CleaningID    string    `json:"cleaning_id"`
	ScheduledDate string    `json:"scheduled_date"`
	Status        string    `json:"status"`
}

func FromCreatedCleaningTask(t *commands.CreatedCleaningTask) *CreatedCleaningTaskResponse {
	if t == nil {
		return nil
	}
	return &CreatedCleaningTaskResponse{
		ID:            t.ID,
		CleaningID:    t.CleaningID,
		ScheduledDate: t.ScheduledDate.Format(dateLayout),
		Status:        t.Status,
	}
}

type ConflictingBooking struct {
	ID           uuid.UUID `json:"id"`
	Reference    string    `json:"reference"`
	CheckinDate  string    `json:"checkin_date"`
	CheckoutDate string    `json:"checkout_date"`
}

type ConflictResponse struct {
	HasConflict bool                 `json:"has_conflict"`
	Conflicts   []ConflictingBooking `json:"conflicts"`
}

func FromConflictResult(r booking.ConflictResult) *ConflictResponse {
	res := &ConflictResponse{HasConflict: r.HasConflict, Conflicts: make([]ConflictingBooking, 0, len(r.Conflicts))}
	for _, b := range r.Conflicts {
		res.Conflicts = append(res.Conflicts, ConflictingBooking{
			ID:           b.ID(),
			Reference:    b.Reference(),
			CheckinDate:  b.Checkin().Format(dateLayout),
			CheckoutDate: b.Checkout().Format(dateLayout),
		})
	}
	return res
}

type BookingEventResponse struct {
	ID         int64      `json:"id"`
	Kind       string     `json:"kind"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	ActorEmail *string    `json:"actor_email,omitempty"`
	Note       string     `json:"note"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func FromBookingEvents(views []*queries.BookingEventView) ([]BookingEventResponse, error) {
	out := make([]BookingEventResponse, 0, len(views))
	if err := copier.Copy(&out, &views); err != nil {
		return nil, err
	}
	return out, nil
}

type DocumentResponse struct {
	URI string `json:"uri"`
}
