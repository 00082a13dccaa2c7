package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MinCombinedSelections is the smallest number of legs a combined bet may have.
const MinCombinedSelections = 2

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

// ValidatePositiveAmount checks that a stake or price is strictly positive.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount.String())
	}
	return nil
}

// ValidateSelections checks the combined-bet leg rules: at least
// MinCombinedSelections legs, each on a distinct bet type.
func ValidateSelections(sels []Selection) error {
	if len(sels) < MinCombinedSelections {
		return fmt.Errorf("combined bet requires at least %d selections, got %d", MinCombinedSelections, len(sels))
	}
	seen := make(map[ID]bool, len(sels))
	for _, s := range sels {
		if s.BetTypeID.Empty() || s.OptionID.Empty() {
			return fmt.Errorf("selection requires bet_type_id and option_id")
		}
		if seen[s.BetTypeID] {
			return fmt.Errorf("bet type %s selected more than once", s.BetTypeID)
		}
		seen[s.BetTypeID] = true
	}
	return nil
}

// ValidateSettlement checks that a requested settlement status is terminal.
func ValidateSettlement(status BetStatus) error {
	switch status {
	case BetWon, BetLost:
		return nil
	default:
		return fmt.Errorf("invalid settlement status: %q", status)
	}
}
