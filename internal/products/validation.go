package product

import (
	"fmt"
	"time"

	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
)

// PickupDateLayout is the wire format of CustomCakeOptions.PickupDate.
const PickupDateLayout = "2006-01-02"

// FieldViolation is returned in error details for each rejected field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCustomCake checks a cake configuration before it enters the cart:
// every axis must name a catalog choice, pickup must be on a later calendar
// day than now and at one of the offered slots.
func ValidateCustomCake(opts CustomCakeOptions, now time.Time) error {
	var violations []FieldViolation
	add := func(field, msg string) {
		violations = append(violations, FieldViolation{Field: field, Message: msg})
	}

	checkAxis := func(field string, choices []OptionChoice, value string) {
		if trim(value) == "" {
			add(field, "is required")
			return
		}
		if _, ok := findChoice(choices, value); !ok {
			add(field, fmt.Sprintf("unknown option %q", value))
		}
	}
	checkAxis("massa", cakeOptions.Massa, opts.Massa)
	checkAxis("recheio", cakeOptions.Recheio, opts.Recheio)
	checkAxis("cobertura", cakeOptions.Cobertura, opts.Cobertura)

	if date := trim(opts.PickupDate); date == "" {
		add("pickupDate", "is required")
	} else if day, err := time.ParseInLocation(PickupDateLayout, date, now.Location()); err != nil {
		add("pickupDate", "must use YYYY-MM-DD")
	} else if !day.After(startOfDay(now)) {
		add("pickupDate", "must be tomorrow or later")
	}

	if slot := trim(opts.PickupTime); slot == "" {
		add("pickupTime", "is required")
	} else if !isPickupSlot(slot) {
		add("pickupTime", fmt.Sprintf("unavailable pickup time %q", slot))
	}

	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid cake configuration: %d field(s)", len(violations))).
		WithDetails(map[string]any{"violations": violations})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func isPickupSlot(slot string) bool {
	for _, s := range PickupSlots {
		if s == slot {
			return true
		}
	}
	return false
}
