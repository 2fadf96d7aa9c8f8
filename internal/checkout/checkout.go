package checkout

import (
	"errors"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/model"
)

var (
	ErrInvalidMethod      = errors.New("unknown payment method")
	ErrPhoneRequired      = errors.New("phone number is required")
	ErrBankFieldsRequired = errors.New("bank name, account number and account holder are required")
	ErrEmptyCart          = errors.New("cart is empty")
)

// PaymentSelection is the buyer's payment choice plus the
// method-dependent fields. UseRegisteredNumber substitutes the user's
// registered phone when the phone field is left empty.
type PaymentSelection struct {
	Method              model.PaymentMethod
	PhoneNumber         string
	UseRegisteredNumber bool
	BankName            string
	AccountNumber       string
	AccountHolder       string
}

// phone resolves the effective phone number for mobile-money methods.
func (s PaymentSelection) phone(registeredPhone string) string {
	if s.PhoneNumber != "" {
		return s.PhoneNumber
	}
	if s.UseRegisteredNumber {
		return registeredPhone
	}
	return ""
}

// Validate checks that the selected method's required fields are
// present. It mirrors the rule that the confirm action stays disabled
// until the selection is complete: a non-nil error means incomplete.
func (s PaymentSelection) Validate(registeredPhone string) error {
	switch {
	case !s.Method.Valid():
		return ErrInvalidMethod
	case s.Method.MobileMoney():
		if s.phone(registeredPhone) == "" {
			return ErrPhoneRequired
		}
	case s.Method.Bank():
		if s.BankName == "" || s.AccountNumber == "" || s.AccountHolder == "" {
			return ErrBankFieldsRequired
		}
	}
	// cash on delivery needs nothing further
	return nil
}

// Complete reports whether the confirm action would be enabled.
func (s PaymentSelection) Complete(registeredPhone string) bool {
	return s.Validate(registeredPhone) == nil
}

// details packages only the fields relevant to the chosen method.
func (s PaymentSelection) details(registeredPhone string) api.PaymentDetails {
	switch {
	case s.Method.MobileMoney():
		return api.PaymentDetails{PhoneNumber: s.phone(registeredPhone)}
	case s.Method.Bank():
		return api.PaymentDetails{
			BankName:      s.BankName,
			AccountNumber: s.AccountNumber,
			AccountHolder: s.AccountHolder,
		}
	}
	return api.PaymentDetails{}
}

// BuildOrderRequest validates the selection and assembles the
// order-creation payload from the cart's lines.
func BuildOrderRequest(c *cart.Cart, sel PaymentSelection, registeredPhone, couponCode, notes string) (api.CreateOrderRequest, error) {
	if err := sel.Validate(registeredPhone); err != nil {
		return api.CreateOrderRequest{}, err
	}

	lines := c.Items()
	if len(lines) == 0 {
		return api.CreateOrderRequest{}, ErrEmptyCart
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Name:      line.Name,
			Image:     line.Image,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	return api.CreateOrderRequest{
		Items:          items,
		PaymentMethod:  sel.Method,
		PaymentDetails: sel.details(registeredPhone),
		CouponCode:     couponCode,
		Notes:          notes,
	}, nil
}
