package orders

import (
	"fmt"

	"shop_system/internal/domain"
)

// Policy decides which status changes an administrator may make
type Policy string

const (
	// PolicyFree allows any status to be set from any other
	PolicyFree Policy = "free"
	// PolicyForward only allows Not Process -> Processing -> Shipped -> Delivered,
	// plus Cancel from any non-terminal status
	PolicyForward Policy = "forward"
)

// ParsePolicy reads a policy name; empty means PolicyFree
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyFree:
		return PolicyFree, nil
	case PolicyForward:
		return PolicyForward, nil
	}
	return "", fmt.Errorf("unknown order status policy %q", s)
}

// Allows reports whether from -> to is permitted
func (p Policy) Allows(from, to domain.OrderStatus) bool {
	if p == PolicyForward {
		return domain.CanTransition(from, to)
	}
	return to.Valid()
}
