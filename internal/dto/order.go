package dto

// NewOrderRequest places an order either from the customer's cart
// (FromCart=true, Items ignored) or from explicit items ("buy now").
type NewOrderRequest struct {
	CustomerID    string           `json:"customerId"`
	FromCart      bool             `json:"fromCart"`
	Items         []OrderItemInput `json:"items,omitempty"`
	ContactName   string           `json:"name"`
	ContactEmail  string           `json:"email"`
	ContactPhone  string           `json:"phone"`
	Address       string           `json:"address"`
	PaymentMethod string           `json:"paymentMethod"`
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CancelOrderRequest struct {
	RequesterID string `json:"requesterId"`
}
