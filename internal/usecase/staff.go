package usecase

import (
	domainErrors "github.com/yellowjack/loyaltybot/internal/domain/errors"
	"github.com/yellowjack/loyaltybot/internal/pkg/auth"
)

// StaffRole is the role encoded in staff session tokens.
const StaffRole = "staff"

// StaffAccessUseCase exchanges the shared staff key for session tokens and
// verifies them. The ledger itself never sees keys or tokens, only the
// resulting authorization bool.
type StaffAccessUseCase struct {
	hasher   auth.KeyHasher
	strategy auth.Strategy
	keyHash  string
}

// NewStaffAccessUseCase constructs StaffAccessUseCase. An empty keyHash
// disables staff access entirely.
func NewStaffAccessUseCase(hasher auth.KeyHasher, strategy auth.Strategy, keyHash string) *StaffAccessUseCase {
	return &StaffAccessUseCase{hasher: hasher, strategy: strategy, keyHash: keyHash}
}

// Authenticate verifies the staff key and issues a session token.
func (u *StaffAccessUseCase) Authenticate(key string) (string, error) {
	if u.keyHash == "" {
		return "", domainErrors.ErrUnauthorized
	}
	if err := u.hasher.Compare(u.keyHash, key); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.strategy.IssueToken(StaffRole)
}

// Verify reports whether the token is a valid staff session token.
func (u *StaffAccessUseCase) Verify(token string) bool {
	role, err := u.strategy.ParseToken(token)
	return err == nil && role == StaffRole
}
