package task

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"rental-backoffice/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CleaningStatus string

const (
	CleaningNotStarted CleaningStatus = "not_started"
	CleaningInProgress CleaningStatus = "in_progress"
	CleaningCompleted  CleaningStatus = "completed"
)

func (s CleaningStatus) IsValid() bool {
	switch s {
	case CleaningNotStarted, CleaningInProgress, CleaningCompleted:
		return true
	}
	return false
}

func NewCleaningStatus(s string) (CleaningStatus, error) {
	if s == "" {
		return CleaningNotStarted, nil
	}
	st := CleaningStatus(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

const cleaningCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCleaningCode returns CLN-<yyyymmdd>-<6 chars>. Uniqueness is enforced by the store.
func NewCleaningCode(date time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "CLN-" + date.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:6])
	}
	for i, b := range buf {
		buf[i] = cleaningCodeAlphabet[int(b)%len(cleaningCodeAlphabet)]
	}
	return fmt.Sprintf("CLN-%s-%s", date.Format("20060102"), buf)
}

type CleaningTask struct {
	id            uuid.UUID
	code          string
	propertyID    uuid.UUID
	unitID        *uuid.UUID
	bookingID     *uuid.UUID
	scheduledDate time.Time
	status        CleaningStatus
	assigneeID    *uuid.UUID
	beforePhotos  []string
	afterPhotos   []string
	cost          *decimal.Decimal
	notes         string
	completedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type NewCleaningParams struct {
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	BookingID     *uuid.UUID
	ScheduledDate time.Time
	AssigneeID    *uuid.UUID
	Notes         string
}

func NewCleaningTask(p NewCleaningParams, now time.Time) (*CleaningTask, error) {
	if p.ScheduledDate.IsZero() {
		return nil, ErrMissingSchedule
	}
	date := clock.DateOf(p.ScheduledDate)
	return &CleaningTask{
		id:            uuid.New(),
		code:          NewCleaningCode(date),
		propertyID:    p.PropertyID,
		unitID:        p.UnitID,
		bookingID:     p.BookingID,
		scheduledDate: date,
		status:        CleaningNotStarted,
		assigneeID:    p.AssigneeID,
		beforePhotos:  []string{},
		afterPhotos:   []string{},
		notes:         p.Notes,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type CleaningSnapshot struct {
	ID            uuid.UUID
	Code          string
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	BookingID     *uuid.UUID
	ScheduledDate time.Time
	Status        CleaningStatus
	AssigneeID    *uuid.UUID
	BeforePhotos  []string
	AfterPhotos   []string
	Cost          *decimal.Decimal
	Notes         string
	CompletedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructCleaningTask(s CleaningSnapshot) *CleaningTask {
	return &CleaningTask{
		id:            s.ID,
		code:          s.Code,
		propertyID:    s.PropertyID,
		unitID:        s.UnitID,
		bookingID:     s.BookingID,
		scheduledDate: s.ScheduledDate,
		status:        s.Status,
		assigneeID:    s.AssigneeID,
		beforePhotos:  s.BeforePhotos,
		afterPhotos:   s.AfterPhotos,
		cost:          s.Cost,
		notes:         s.Notes,
		completedAt:   s.CompletedAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
}

func (t *CleaningTask) ID() uuid.UUID            { return t.id }
func (t *CleaningTask) Code() string             { return t.code }
func (t *CleaningTask) PropertyID() uuid.UUID    { return t.propertyID }
func (t *CleaningTask) UnitID() *uuid.UUID       { return t.unitID }
func (t *CleaningTask) BookingID() *uuid.UUID    { return t.bookingID }
func (t *CleaningTask) ScheduledDate() time.Time { return t.scheduledDate }
func (t *CleaningTask) Status() CleaningStatus   { return t.status }
func (t *CleaningTask) AssigneeID() *uuid.UUID   { return t.assigneeID }
func (t *CleaningTask) BeforePhotos() []string   { return t.beforePhotos }
func (t *CleaningTask) AfterPhotos() []string    { return t.afterPhotos }
func (t *CleaningTask) Cost() *decimal.Decimal   { return t.cost }
func (t *CleaningTask) Notes() string            { return t.notes }
func (t *CleaningTask) CompletedAt() *time.Time  { return t.completedAt }
func (t *CleaningTask) CreatedAt() time.Time     { return t.createdAt }
func (t *CleaningTask) UpdatedAt() time.Time     { return t.updatedAt }
func (t *CleaningTask) IsCompleted() bool        { return t.status == CleaningCompleted }

func (t *CleaningTask) IsAssignedTo(userID uuid.UUID) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

// PullForward reschedules an open task to today, whether it was due earlier or later.
func (t *CleaningTask) PullForward(today, now time.Time) bool {
	if t.IsCompleted() || t.scheduledDate.Equal(today) {
		return false
	}
	t.scheduledDate = today
	t.updatedAt = now
	return true
}

type CleaningPatch struct {
	ScheduledDate *time.Time
	Status        *CleaningStatus
	AssigneeID    **uuid.UUID
	BeforePhotos  []string
	AfterPhotos   []string
	Notes         *string
}

func (t *CleaningTask) Apply(p CleaningPatch, now time.Time) error {
	if t.IsCompleted() {
		return ErrAlreadyResolved
	}
	if p.Status != nil {
		if !p.Status.IsValid() {
			return ErrInvalidStatus
		}
		if *p.Status == CleaningCompleted {
			return ErrResolveViaEndpoint
		}
		t.status = *p.Status
	}
	if p.ScheduledDate != nil {
		if p.ScheduledDate.IsZero() {
			return ErrMissingSchedule
		}
		t.scheduledDate = clock.DateOf(*p.ScheduledDate)
	}
	if p.AssigneeID != nil {
		t.assigneeID = *p.AssigneeID
	}
	if p.BeforePhotos != nil {
		t.beforePhotos = p.BeforePhotos
	}
	if p.AfterPhotos != nil {
		t.afterPhotos = p.AfterPhotos
	}
	if p.Notes != nil {
		t.notes = *p.Notes
	}
	t.updatedAt = now
	return nil
}

// Complete reports whether an expense leg is due.
func (t *CleaningTask) Complete(cost *decimal.Decimal, afterPhotos []string, now time.Time) (bool, error) {
	if t.IsCompleted() {
		return false, ErrAlreadyResolved
	}
	if cost != nil && cost.IsNegative() {
		return false, ErrNegativeCost
	}
	if afterPhotos != nil {
		t.afterPhotos = afterPhotos
	}
	t.status = CleaningCompleted
	t.cost = cost
	t.completedAt = &now
	t.updatedAt = now
	return cost != nil && cost.IsPositive(), nil
}
