package enums

import "fmt"

// PaymentMethod records how the customer chose to pay. Nothing is charged;
// the choice is shown on the order and at the counter.
type PaymentMethod string

const (
	PaymentMethodCounter PaymentMethod = "balcao"
	PaymentMethodCard    PaymentMethod = "cartao"
	PaymentMethodPix     PaymentMethod = "pix"
)

// checkout form order
var paymentMethods = [...]struct {
	method PaymentMethod
	label  string
}{
	{PaymentMethodCounter, "No balcão"},
	{PaymentMethodCard, "Cartão"},
	{PaymentMethodPix, "Pix"},
}

func (p PaymentMethod) String() string {
	return string(p)
}

func (p PaymentMethod) IsValid() bool {
	return p.Label() != ""
}

// Label is the text shown next to the order, empty for unknown values.
func (p PaymentMethod) Label() string {
	for _, entry := range paymentMethods {
		if entry.method == p {
			return entry.label
		}
	}
	return ""
}

// SettledAtPickup reports whether the customer pays when collecting.
func (p PaymentMethod) SettledAtPickup() bool {
	return p == PaymentMethodCounter
}

// PaymentMethods lists the accepted values in checkout form order.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, 0, len(paymentMethods))
	for _, entry := range paymentMethods {
		out = append(out, entry.method)
	}
	return out
}

// ParsePaymentMethod accepts only the exact wire values.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	if p := PaymentMethod(value); p.IsValid() {
		return p, nil
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
