package checkout

import (
	"strconv"
	"time"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// NewOrderID derives an order identifier from the placement time
func NewOrderID(placedAt time.Time) string {
	return "ORD" + strconv.FormatInt(placedAt.UnixMilli(), 10)
}

// Session is a single checkout attempt. It walks the address, payment
// and review steps in order; each forward transition requires the
// step's data to validate first. A placed session is terminal.
type Session struct {
	shared.BaseAggregateRoot
	step    Step
	address ShippingAddress
	payment Payment
	orderID string
}

// NewSession starts a checkout at the address step
func NewSession() *Session {
	return &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		step:              StepAddress,
	}
}

// Step returns the current flow position
func (s *Session) Step() Step {
	return s.step
}

// Address returns the submitted shipping address
func (s *Session) Address() ShippingAddress {
	return s.address
}

// Payment returns the submitted payment selection
func (s *Session) Payment() Payment {
	return s.payment
}

// OrderID returns the generated order id, empty until placed
func (s *Session) OrderID() string {
	return s.orderID
}

// SubmitAddress validates the address and advances to payment
func (s *Session) SubmitAddress(address ShippingAddress) error {
	if s.step != StepAddress {
		return s.stepError(StepAddress)
	}
	if err := address.Validate(); err != nil {
		return err
	}
	s.address = address
	s.step = s.step.next()
	return nil
}

// SubmitPayment stores the validated payment and advances to review.
// Payment values come from the NewCardPayment, NewUPIPayment or
// NewCODPayment constructors, which perform the validation; a payment
// with an unrecognized method is rejected.
func (s *Session) SubmitPayment(payment Payment) error {
	if s.step != StepPayment {
		return s.stepError(StepPayment)
	}
	if !payment.Method.Valid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Please select a payment method")
	}
	s.payment = payment
	s.step = s.step.next()
	return nil
}

// Back returns to the previous step
func (s *Session) Back() error {
	prev := s.step.prev()
	if prev == "" {
		return shared.NewDomainError("INVALID_STATE", "Cannot go back from step "+s.step.String())
	}
	s.step = prev
	return nil
}

// PlaceOrder completes the session from the review step. The order
// snapshot comes from the cart at placement time.
func (s *Session) PlaceOrder(placedAt time.Time, itemCount int, total valueobject.Money) (string, error) {
	if s.step != StepReview {
		return "", s.stepError(StepReview)
	}

	s.orderID = NewOrderID(placedAt)
	s.step = s.step.next()
	s.AddDomainEvent(NewOrderPlacedEvent(s, itemCount, total))
	return s.orderID, nil
}

func (s *Session) stepError(expected Step) error {
	return shared.NewDomainError("INVALID_STATE",
		"Expected step "+expected.String()+", currently at "+s.step.String())
}
