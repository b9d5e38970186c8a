package dto

type AddCartItemRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
	// Quantity is optional: nil leaves an existing entry untouched and
	// defaults a new entry to 1.
	Quantity *int `json:"quantity,omitempty"`
}

type RemoveCartItemRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
}

// CartLine is a cart entry expanded against the live catalog. Prices here
// are display estimates; the order snapshot is taken at placement.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

type CartResponse struct {
	CustomerID     string     `json:"customerId"`
	Items          []CartLine `json:"items"`
	EstimatedTotal float64    `json:"estimatedTotal"`
}

type WishlistEntryRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
}

type WishlistResponse struct {
	CustomerID string     `json:"customerId"`
	Items      []CartLine `json:"items"`
}
