package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/model"
)

func TestPaymentSelection_MobileMoneyRequiresPhone(t *testing.T) {
	sel := PaymentSelection{Method: model.PaymentMpesa}
	assert.False(t, sel.Complete(""))
	assert.ErrorIs(t, sel.Validate(""), ErrPhoneRequired)

	sel.PhoneNumber = "+254700000001"
	assert.True(t, sel.Complete(""))
}

func TestPaymentSelection_RegisteredNumberFallback(t *testing.T) {
	sel := PaymentSelection{Method: model.PaymentAirtelMoney, UseRegisteredNumber: true}
	assert.False(t, sel.Complete(""))
	assert.True(t, sel.Complete("+254711111111"))
}

func TestPaymentSelection_BankTransferRequiresAllFields(t *testing.T) {
	sel := PaymentSelection{
		Method:   model.PaymentBankTransfer,
		BankName: "Equity",
	}
	assert.ErrorIs(t, sel.Validate(""), ErrBankFieldsRequired)

	sel.AccountNumber = "0123456789"
	assert.ErrorIs(t, sel.Validate(""), ErrBankFieldsRequired)

	sel.AccountHolder = "Jane Doe"
	assert.True(t, sel.Complete(""))
}

func TestPaymentSelection_CashOnDeliveryNeedsNothing(t *testing.T) {
	sel := PaymentSelection{Method: model.PaymentCashOnDelivery}
	assert.True(t, sel.Complete(""))
}

func TestPaymentSelection_UnknownMethod(t *testing.T) {
	sel := PaymentSelection{Method: model.PaymentMethod("paypal")}
	assert.ErrorIs(t, sel.Validate(""), ErrInvalidMethod)
}

func TestBuildOrderRequest_PackagesOnlyRelevantFields(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ProductID: uuid.New(), Name: "Tee", Price: decimal.NewFromInt(10), Size: "M"})

	sel := PaymentSelection{
		Method:      model.PaymentMpesa,
		PhoneNumber: "+254700000001",
		// stray bank fields must not leak into a mobile-money payload
		BankName:      "Equity",
		AccountNumber: "0123456789",
	}

	req, err := BuildOrderRequest(c, sel, "", "SAVE10", "leave at the gate")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentMpesa, req.PaymentMethod)
	assert.Equal(t, "+254700000001", req.PaymentDetails.PhoneNumber)
	assert.Empty(t, req.PaymentDetails.BankName)
	assert.Empty(t, req.PaymentDetails.AccountNumber)
	assert.Equal(t, "SAVE10", req.CouponCode)
	assert.Equal(t, "leave at the gate", req.Notes)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 1, req.Items[0].Quantity)
	assert.Equal(t, "M", req.Items[0].Size)
}

func TestBuildOrderRequest_BankDetails(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ProductID: uuid.New(), Price: decimal.NewFromInt(10)})

	sel := PaymentSelection{
		Method:        model.PaymentBankAccount,
		BankName:      "KCB",
		AccountNumber: "0123456789",
		AccountHolder: "Jane Doe",
		PhoneNumber:   "+254700000001",
	}

	req, err := BuildOrderRequest(c, sel, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "KCB", req.PaymentDetails.BankName)
	assert.Empty(t, req.PaymentDetails.PhoneNumber)
}

func TestBuildOrderRequest_EmptyCart(t *testing.T) {
	sel := PaymentSelection{Method: model.PaymentCashOnDelivery}
	_, err := BuildOrderRequest(cart.New(), sel, "", "", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderRequest_InvalidSelection(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Item{ProductID: uuid.New(), Price: decimal.NewFromInt(10)})

	_, err := BuildOrderRequest(c, PaymentSelection{Method: model.PaymentMpesa}, "", "", "")
	assert.ErrorIs(t, err, ErrPhoneRequired)
}
