package domain

import "time"

// Preferences is the user's profile document. Writes are full-document
// overwrites; there is no partial update/merge path. The wire name of the
// sensitivity list is "sensitive", matching the hosted document shape.
type Preferences struct {
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Email         string   `json:"email"`
	Allergies     []string `json:"allergies"`
	Sensitivities []string `json:"sensitive"`
}

// Session is the explicit identity handed to every operation that needs one.
// A zero UserID means no signed-in user.
type Session struct {
	UserID string
	Email  string
}

// Authenticated reports whether the session carries a signed-in identity.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Comment is a user comment on a product, keyed by a generated id.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	ProductID string    `json:"productId"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// Rating is a single user's rating of a product. At most one document
// exists per (userID, productID) pair.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// RatingSummary is the aggregate shown on a product detail view. UserRating
// is 0 when the current user has not rated the product.
type RatingSummary struct {
	Average    float64 `json:"average"`
	Count      int     `json:"count"`
	UserRating int     `json:"userRating"`
}

// Registration is the payload validated locally before it is forwarded to
// the external auth provider.
type Registration struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}
