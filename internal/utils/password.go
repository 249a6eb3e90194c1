package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by Passwords.Hash for passwords bcrypt
// cannot represent (over 72 bytes).
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Passwords hashes and checks user passwords with bcrypt at one cost.
type Passwords struct {
	cost int
}

// NewPasswords returns a hasher using cost, clamped to bcrypt's valid range.
func NewPasswords(cost int) Passwords {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return Passwords{cost: cost}
}

// Cost reports the bcrypt cost new hashes are created with.
func (p Passwords) Cost() int { return p.cost }

// Hash returns the bcrypt hash of plain.
func (p Passwords) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), p.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches reports whether plain is the password behind hash.  A malformed
// hash never matches.
func (p Passwords) Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
