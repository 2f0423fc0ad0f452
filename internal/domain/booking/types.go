package booking

type Channel string

const (
	ChannelAirbnb     Channel = "airbnb"
	ChannelBookingCom Channel = "booking_com"
	ChannelDirect     Channel = "direct"
	ChannelOther      Channel = "other"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelAirbnb, ChannelBookingCom, ChannelDirect, ChannelOther:
		return true
	default:
		return false
	}
}

func NewChannel(s string) (Channel, error) {
	if s == "" {
		return ChannelDirect, nil
	}
	c := Channel(s)
	if !c.IsValid() {
		return "", ErrInvalidChannel
	}
	return c, nil
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	default:
		return false
	}
}

func NewPaymentStatus(s string) (PaymentStatus, error) {
	if s == "" {
		return PaymentPending, nil
	}
	p := PaymentStatus(s)
	if !p.IsValid() {
		return "", ErrInvalidPaymentStatus
	}
	return p, nil
}

// LifecycleState is the stay progression. Archiving is tracked separately
// so that restore puts the booking back exactly where it was.
type LifecycleState string

const (
	StatePending    LifecycleState = "pending"
	StateCheckedIn  LifecycleState = "checked_in"
	StateCheckedOut LifecycleState = "checked_out"
)

func (s LifecycleState) IsValid() bool {
	switch s {
	case StatePending, StateCheckedIn, StateCheckedOut:
		return true
	default:
		return false
	}
}

type EventKind string

const (
	EventCreated    EventKind = "created"
	EventUpdated    EventKind = "updated"
	EventCheckedIn  EventKind = "checked_in"
	EventCheckedOut EventKind = "checked_out"
	EventArchived   EventKind = "archived"
	EventRestored   EventKind = "restored"
)

// Automation trigger names emitted by the lifecycle.
const (
	TriggerCreated  = "booking.created"
	TriggerCheckIn  = "booking.checkin"
	TriggerCheckOut = "booking.checkout"
)
