package checkout

import (
	"strings"

	"github.com/webmart/storefront/internal/domain/shared"
)

// PaymentMethod selects how the order is paid
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCOD  PaymentMethod = "cod"
)

// Valid reports whether the method is one of the defined choices
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodCOD:
		return true
	}
	return false
}

// CardDetails carries the card form fields. The number and CVV are
// validated but never persisted; only the last four digits survive
// into the session.
type CardDetails struct {
	Number     string `json:"-" validate:"required,credit_card"`
	Expiry     string `json:"-" validate:"required,len=5"`
	CVV        string `json:"-" validate:"required,numeric,min=3,max=4"`
	HolderName string `json:"-" validate:"required,max=100"`
}

// Payment is the validated payment selection kept on the session
type Payment struct {
	Method    PaymentMethod `json:"method"`
	CardLast4 string        `json:"card_last4,omitempty"`
	UPIID     string        `json:"upi_id,omitempty"`
}

// NewCardPayment validates the card form and keeps only the last four
// digits of the number
func NewCardPayment(details CardDetails) (Payment, error) {
	details.Number = strings.ReplaceAll(details.Number, " ", "")
	if err := wrapValidationError(validate.Struct(details)); err != nil {
		return Payment{}, err
	}
	return Payment{
		Method:    PaymentMethodCard,
		CardLast4: details.Number[len(details.Number)-4:],
	}, nil
}

// NewUPIPayment validates the UPI id
func NewUPIPayment(upiID string) (Payment, error) {
	upiID = strings.TrimSpace(upiID)
	if upiID == "" {
		return Payment{}, shared.NewDomainError("VALIDATION_ERROR", "Please enter your UPI ID")
	}
	return Payment{Method: PaymentMethodUPI, UPIID: upiID}, nil
}

// NewCODPayment selects cash on delivery
func NewCODPayment() Payment {
	return Payment{Method: PaymentMethodCOD}
}

// Display returns the review-step description of the payment
func (p Payment) Display() string {
	switch p.Method {
	case PaymentMethodCard:
		return "Credit/Debit Card ending in " + p.CardLast4
	case PaymentMethodUPI:
		return "UPI ID: " + p.UPIID
	default:
		return "Cash on Delivery"
	}
}
