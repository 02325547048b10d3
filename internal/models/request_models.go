package models

// CreateListingRequest is the request body for creating a listing.
// Status, userId and email are not accepted; they come from the server and
// the verified principal.
type CreateListingRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	PickupDate  string   `json:"pickupDate"`
	UserName    string   `json:"userName"`
}

// UpdateListingRequest is the request body for the generic listing update.
// Pointers distinguish "not provided" from an empty value. Fields the generic
// path may not touch (status, userId) have no place here and are dropped by
// the decoder. Email is honoured for admins only.
type UpdateListingRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	PickupDate  *string  `json:"pickupDate,omitempty"`
	UserName    *string  `json:"userName,omitempty"`
	Email       *string  `json:"email,omitempty"`
}

// ApproveListingRequest is the body of PUT /admin/listings.
type ApproveListingRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// ListingQuery filters public listing reads.
type ListingQuery struct {
	Category string
	Search   string
	Limit    int
}

// CreateOrderRequest is the request body for placing an order.
// Email and status are set by the server.
type CreateOrderRequest struct {
	ListingID  string `json:"listingId" binding:"required"`
	BuyerName  string `json:"buyerName" binding:"required"`
	Quantity   int    `json:"quantity"`
	Address    string `json:"address"`
	PickupDate string `json:"pickupDate"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpsertProfileRequest is the body of POST /users. Role is never accepted here.
type UpsertProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// AdminUpdateUserRequest is the body of PUT /admin/users/:uid.
type AdminUpdateUserRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// AssignRoleRequest is the body of PUT /admin/users/:uid/role.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
