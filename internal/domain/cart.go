package domain

import "time"

// Cart is the per-customer cart document. Product references are unique
// within Items; quantities are display estimates until checkout snapshots
// them into an order.
type Cart struct {
	CustomerID string     `bson:"_id" json:"customerId"`
	Items      []CartItem `bson:"items" json:"items"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type CartItem struct {
	ProductID string `bson:"productId" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Wishlist is the per-customer wishlist document: a set of product ids.
type Wishlist struct {
	CustomerID string    `bson:"_id" json:"customerId"`
	ProductIDs []string  `bson:"productIds" json:"productIds"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Product is the read-side view of the external catalog: just enough to
// snapshot prices into orders and to expand cart/wishlist listings.
type Product struct {
	ID       string  `bson:"_id" json:"id"`
	FarmerID string  `bson:"farmerId" json:"farmerId"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	ImageURL string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}
