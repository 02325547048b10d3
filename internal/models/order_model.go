package models

import "time"

// OrderPending is the status every order is created with.
const OrderPending = "pending"

// Order is the canonical client-facing shape of an order document.
type Order struct {
	ID          string    `json:"id" firestore:"-"`
	BuyerName   string    `json:"buyerName" firestore:"buyerName"`
	Email       string    `json:"email" firestore:"email"`
	ListingID   string    `json:"listingId" firestore:"listingId"`
	ListingName string    `json:"listingName" firestore:"listingName"`
	Quantity    int       `json:"quantity" firestore:"quantity"`
	Price       float64   `json:"price" firestore:"price"`
	Address     string    `json:"address" firestore:"address"`
	PickupDate  string    `json:"pickupDate" firestore:"pickupDate"`
	Phone       string    `json:"phone" firestore:"phone"`
	Notes       string    `json:"notes" firestore:"notes"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
}

// Owner returns the ownership anchors of the order. Orders anchor on email only.
func (o *Order) Owner() Owner {
	return Owner{Email: o.Email}
}
