package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrItemNotFound       = errors.New("item not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCorruptState       = errors.New("corrupt persisted state")
	ErrStoreFailure       = errors.New("store failure")
)

// CooldownError signals a daily claim attempted inside the cooldown window.
// Remaining is the time left until the next claim is allowed.
type CooldownError struct {
	Remaining time.Duration
}

func (e CooldownError) Error() string {
	return fmt.Sprintf("daily bonus on cooldown, try again in %s", e.Remaining)
}
