package models

import "time"

// Listing status values.
const (
	ListingPending  = "pending"
	ListingApproved = "approved"
)

// PetsCategory is the only category a non-admin may list under.
const PetsCategory = "Pets"

// Listing is the canonical client-facing shape of a listing document.
// The firestore tags describe the shape new documents are written with.
type Listing struct {
	ID          string     `json:"id" firestore:"-"`
	Name        string     `json:"name" firestore:"name"`
	Category    string     `json:"category" firestore:"category"`
	Price       float64    `json:"price" firestore:"price"`
	Location    string     `json:"location" firestore:"location"`
	Description string     `json:"description" firestore:"description"`
	ImageURL    string     `json:"imageUrl" firestore:"imageUrl"`
	Email       string     `json:"email" firestore:"email"`
	PickupDate  string     `json:"pickupDate" firestore:"pickupDate"`
	UserID      *string    `json:"userId" firestore:"userId"`
	UserName    *string    `json:"userName" firestore:"userName"`
	Status      string     `json:"status" firestore:"status"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Owner returns the ownership anchors of the listing.
func (l *Listing) Owner() Owner {
	o := Owner{Email: l.Email}
	if l.UserID != nil {
		o.UserID = *l.UserID
	}
	return o
}
