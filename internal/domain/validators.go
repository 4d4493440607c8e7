package domain

import (
	"fmt"
	"regexp"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	walletRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateWalletAddress checks for a 0x-prefixed 20-byte hex address.
func ValidateWalletAddress(addr string) error {
	if !walletRegex.MatchString(addr) {
		return fmt.Errorf("invalid wallet address: %s", addr)
	}
	return nil
}

// ValidateWeight checks that a fighter weight is a positive number.
func ValidateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("weight must be positive, got %g", weight)
	}
	return nil
}
