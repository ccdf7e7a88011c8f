package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/seefood/backend/internal/domain"
)

// Password requirements: at least 8 characters, one uppercase letter, one
// digit, one special character.
var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	specialRegex   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// IdentityService validates registrations locally before handing them to
// the external auth provider. Validation failures block the action before
// any network call is made.
type IdentityService struct {
	provider domain.AuthProvider
}

// NewIdentityService creates an identity service. The provider may be nil
// when no external auth endpoint is configured; registration then fails
// after validation.
func NewIdentityService(provider domain.AuthProvider) *IdentityService {
	return &IdentityService{provider: provider}
}

// ValidateRegistration checks a registration payload against the local
// rules. All failures wrap domain.ErrValidation.
func ValidateRegistration(reg *domain.Registration) error {
	if reg == nil {
		return fmt.Errorf("%w: missing registration payload", domain.ErrValidation)
	}
	if strings.TrimSpace(reg.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if !isValidPassword(reg.Password) {
		return fmt.Errorf("%w: password must be at least 8 characters long, include an uppercase letter, a number, and a special character", domain.ErrValidation)
	}
	if reg.Password != reg.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	return nil
}

// Register validates the payload and forwards it to the auth provider.
func (s *IdentityService) Register(ctx context.Context, reg *domain.Registration) (string, error) {
	if err := ValidateRegistration(reg); err != nil {
		return "", err
	}
	if s.provider == nil {
		return "", fmt.Errorf("auth provider not configured")
	}
	return s.provider.Register(ctx, reg)
}

func isValidPassword(password string) bool {
	return len(password) >= 8 &&
		uppercaseRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialRegex.MatchString(password)
}
