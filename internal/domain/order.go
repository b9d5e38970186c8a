package domain

import (
	"math"
	"time"

	"farmfresh/internal/errors"
)

type Status string

const (
	StatusPlaced    Status = "PLACED"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

type Event string

const (
	EventAutoConfirm Event = "autoConfirm"
	EventAutoShip    Event = "autoShip"
	EventAutoDeliver Event = "autoDeliver"
	EventCancel      Event = "cancel"
)

const (
	PaymentCashOnDelivery = "COD"

	ShippingRate = 0.10
	TaxRate      = 0.08
)

// transitions holds every legal (status, event) pair. Cancel is valid from
// any non-terminal status; the auto events each move one stage forward.
var transitions = map[Status]map[Event]Status{
	StatusPlaced: {
		EventAutoConfirm: StatusConfirmed,
		EventCancel:      StatusCancelled,
	},
	StatusConfirmed: {
		EventAutoShip: StatusShipped,
		EventCancel:   StatusCancelled,
	},
	StatusShipped: {
		EventAutoDeliver: StatusDelivered,
		EventCancel:      StatusCancelled,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

var autoEvents = map[Status]Event{
	StatusPlaced:    EventAutoConfirm,
	StatusConfirmed: EventAutoShip,
	StatusShipped:   EventAutoDeliver,
}

// Next resolves the status reached by applying event from the given status.
func Next(from Status, event Event) (Status, error) {
	to, ok := transitions[from][event]
	if !ok {
		return "", errors.NewInvalidTransitionError(string(from), string(event))
	}
	return to, nil
}

// NextAutoEvent returns the automatic event that advances the given status,
// if one exists. Terminal statuses have none.
func NextAutoEvent(s Status) (Event, bool) {
	ev, ok := autoEvents[s]
	return ev, ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ActiveStatuses lists every status the scheduler still has work for.
func ActiveStatuses() []Status {
	return []Status{StatusPlaced, StatusConfirmed, StatusShipped}
}

type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
}

type StatusEntry struct {
	Status Status    `bson:"status" json:"status"`
	At     time.Time `bson:"at" json:"at"`
}

type Order struct {
	ID              string        `bson:"_id" json:"id"`
	CustomerID      string        `bson:"customerId" json:"customerId"`
	FarmerIDs       []string      `bson:"farmerIds,omitempty" json:"farmerIds,omitempty"`
	Items           []OrderItem   `bson:"items" json:"items"`
	Subtotal        float64       `bson:"subtotal" json:"subtotal"`
	Shipping        float64       `bson:"shipping" json:"shipping"`
	Tax             float64       `bson:"tax" json:"tax"`
	Total           float64       `bson:"total" json:"total"`
	Status          Status        `bson:"status" json:"status"`
	StatusHistory   []StatusEntry `bson:"statusHistory" json:"statusHistory"`
	ShippingAddress string        `bson:"shippingAddress" json:"shippingAddress"`
	ContactName     string        `bson:"contactName" json:"contactName"`
	ContactEmail    string        `bson:"contactEmail" json:"contactEmail"`
	ContactPhone    string        `bson:"contactPhone" json:"contactPhone"`
	PaymentMethod   string        `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
}

// Transition sets the new status and appends exactly one history entry.
// Validity must already have been checked via Next.
func (o *Order) Transition(to Status, at time.Time) StatusEntry {
	entry := StatusEntry{Status: to, At: at}
	o.Status = to
	o.StatusHistory = append(o.StatusHistory, entry)
	return entry
}

// LastStatusAt returns the timestamp of the most recent history entry,
// falling back to CreatedAt for orders persisted without history.
func (o *Order) LastStatusAt() time.Time {
	if len(o.StatusHistory) == 0 {
		return o.CreatedAt
	}
	return o.StatusHistory[len(o.StatusHistory)-1].At
}

// Elapsed is the time the order has spent in its current status.
func (o *Order) Elapsed(now time.Time) time.Duration {
	return now.Sub(o.LastStatusAt())
}

// Round2 rounds a monetary amount to two decimals. Totals are computed once
// at placement and stored, so the rounding here is the value of record.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeCharges derives the shipping and tax surcharges and the grand total
// from an item subtotal.
func ComputeCharges(subtotal float64) (shipping, tax, total float64) {
	shipping = Round2(subtotal * ShippingRate)
	tax = Round2(subtotal * TaxRate)
	total = Round2(subtotal + shipping + tax)
	return shipping, tax, total
}
