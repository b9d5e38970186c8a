package domain

import "time"

// OrderStatusEvent is the outbound lifecycle event: one per applied
// transition, fanned out to the customer and, for cancellations, the farmers.
type OrderStatusEvent struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	FarmerIDs  []string  `json:"farmerIds,omitempty"`
	NewStatus  Status    `json:"newStatus"`
	Timestamp  time.Time `json:"timestamp"`
}

// Notification is the persisted in-app feed entry derived from an
// OrderStatusEvent, one document per recipient.
type Notification struct {
	ID          string    `bson:"_id" json:"id"`
	RecipientID string    `bson:"recipientId" json:"recipientId"`
	OrderID     string    `bson:"orderId" json:"orderId"`
	Status      Status    `bson:"status" json:"status"`
	Message     string    `bson:"message" json:"message"`
	Read        bool      `bson:"read" json:"read"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
