package payment

import (
	"testing"

	"github.com/go-pay/gopay/paypal"
	"github.com/stretchr/testify/assert"
)

func TestOrderFrom(t *testing.T) {
	o := orderFrom(&paypal.OrderDetail{
		Id:     "5O190127TN364715T",
		Status: "CREATED",
		Links: []*paypal.Link{
			{Href: "https://api.paypal.com/v2/checkout/orders/5O190127TN364715T", Rel: "self"},
			{Href: "https://www.paypal.com/checkoutnow?token=5O190127TN364715T", Rel: "approve"},
		},
		PurchaseUnits: []*paypal.PurchaseUnit{{
			ReferenceId: "pro:u-1",
			Amount:      &paypal.Amount{CurrencyCode: "BRL", Value: "197.00"},
		}},
	})
	assert.Equal(t, "5O190127TN364715T", o.Id)
	assert.Equal(t, "https://www.paypal.com/checkoutnow?token=5O190127TN364715T", o.ApproveURL)
	assert.Equal(t, "pro:u-1", o.Reference)
	assert.Equal(t, "BRL", o.Currency)
	assert.InDelta(t, 197.0, o.Amount, 1e-9)

	assert.Equal(t, &Order{}, orderFrom(nil))
}

func TestReference(t *testing.T) {
	ref := Reference("premium", "0b6f0c44-7f0e-4c49-9a65-5c2b6f7d0f11")
	plan, uid, ok := ParseReference(ref)
	assert.True(t, ok)
	assert.Equal(t, "premium", plan)
	assert.Equal(t, "0b6f0c44-7f0e-4c49-9a65-5c2b6f7d0f11", uid)

	for _, bad := range []string{"", "pro", ":u", "pro:"} {
		_, _, ok := ParseReference(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, "97.00", FormatAmount(97))
	assert.Equal(t, "0.10", FormatAmount(0.1))
}
