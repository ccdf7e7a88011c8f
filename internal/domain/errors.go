package domain

import "errors"

var (
	// ErrProductNotFound is returned when no catalog entry matches a scanned or typed code
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable is returned when the remote product API request fails
	ErrCatalogUnavailable = errors.New("catalog API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnauthenticated is returned when a rating or comment is attempted without a signed-in identity
	ErrUnauthenticated = errors.New("authentication required")

	// ErrValidation is returned when input is rejected before any network call is made
	ErrValidation = errors.New("validation failed")

	// ErrScanCooldown is returned when a scan event arrives inside the cooldown window
	ErrScanCooldown = errors.New("scan ignored during cooldown")

	// ErrStoreUnavailable is returned when a document store read or write fails
	ErrStoreUnavailable = errors.New("document store request failed")

	// ErrRatingNotFound is returned when a user has no rating for a product
	ErrRatingNotFound = errors.New("rating not found")

	// ErrPreferencesNotFound is returned when no profile document exists for a user
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrEmailTaken is returned when a registration reuses an existing account email
	ErrEmailTaken = errors.New("email already registered")
)
