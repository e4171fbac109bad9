package pricing

import (
	"testing"

	product "github.com/paoquentinho/storefront/internal/products"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEffectivePriceWithoutOptions(t *testing.T) {
	assert.True(t, EffectivePrice(dec("0.75"), nil).Equal(dec("0.75")))
}

func TestEffectivePricePremiumCake(t *testing.T) {
	opts := &product.CustomCakeOptions{Massa: "chocolate-premium", Recheio: "nutella", Cobertura: "fondant"}
	got := EffectivePrice(dec("45.00"), opts)
	assert.Equal(t, "75.00", got.StringFixed(2))
}

func TestEffectivePriceUnknownOptionsAddZero(t *testing.T) {
	opts := &product.CustomCakeOptions{Massa: "pistache", Recheio: "", Cobertura: "glace"}
	assert.True(t, EffectivePrice(dec("45"), opts).Equal(dec("45")))
}

func TestEffectivePriceMonotonicInPricedChoices(t *testing.T) {
	base := dec("45")
	catalog := product.Options()
	axes := []struct {
		name    string
		choices []product.OptionChoice
		set     func(o *product.CustomCakeOptions, v string)
	}{
		{"massa", catalog.Massa, func(o *product.CustomCakeOptions, v string) { o.Massa = v }},
		{"recheio", catalog.Recheio, func(o *product.CustomCakeOptions, v string) { o.Recheio = v }},
		{"cobertura", catalog.Cobertura, func(o *product.CustomCakeOptions, v string) { o.Cobertura = v }},
	}

	for _, axis := range axes {
		var free, priced []string
		for _, c := range axis.choices {
			if c.Price.IsZero() {
				free = append(free, c.Value)
			} else {
				priced = append(priced, c.Value)
			}
		}
		for _, f := range free {
			for _, p := range priced {
				a := &product.CustomCakeOptions{}
				b := &product.CustomCakeOptions{}
				axis.set(a, f)
				axis.set(b, p)
				assert.True(t, EffectivePrice(base, b).GreaterThanOrEqual(EffectivePrice(base, a)),
					"%s: %s should not cost less than %s", axis.name, p, f)
			}
		}
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "2.25", LineTotal(dec("0.75"), nil, 3).StringFixed(2))

	opts := &product.CustomCakeOptions{Massa: "red-velvet", Recheio: "doce-de-leite-argentino", Cobertura: "chantilly-com-frutas"}
	assert.Equal(t, "136.00", LineTotal(dec("45"), opts, 2).StringFixed(2))
}

func TestEffectivePriceMatchesOptionIDsExactly(t *testing.T) {
	opts := &product.CustomCakeOptions{Massa: "CHOCOLATE-PREMIUM", Recheio: " nutella ", Cobertura: "Fondant"}
	assert.Equal(t, "45.00", EffectivePrice(dec("45.00"), opts).StringFixed(2))
}
