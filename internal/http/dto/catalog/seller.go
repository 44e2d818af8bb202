package catalog

import "time"

// ProfilePayload is the embedded profile, shared by requests and
// responses. Birthday uses RFC 3339.
type ProfilePayload struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Website   string    `json:"website,omitempty"`
	Birthday  time.Time `json:"birthday"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email"`
	Gender    string    `json:"gender,omitempty"`
}

// SellerResponse represents a seller in API responses.
type SellerResponse struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	Profile   ProfilePayload `json:"profile"`
}

// CreateSellerRequest represents the payload to create a seller.
type CreateSellerRequest struct {
	AccountID string         `json:"account_id"`
	Profile   ProfilePayload `json:"profile"`
}

// UpdateSellerRequest represents the payload to update a seller.
type UpdateSellerRequest struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	Profile   ProfilePayload `json:"profile"`
}
