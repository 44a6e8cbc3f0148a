package checkout

// Step is the checkout flow position
type Step string

const (
	StepAddress Step = "ADDRESS"
	StepPayment Step = "PAYMENT"
	StepReview  Step = "REVIEW"
	StepPlaced  Step = "PLACED"
)

// IsTerminal reports whether no further transition is allowed
func (s Step) IsTerminal() bool {
	return s == StepPlaced
}

// String representation (for logging)
func (s Step) String() string {
	return string(s)
}

// next returns the forward transition target, or "" from a terminal step
func (s Step) next() Step {
	switch s {
	case StepAddress:
		return StepPayment
	case StepPayment:
		return StepReview
	case StepReview:
		return StepPlaced
	default:
		return ""
	}
}

// prev returns the backward transition target, or "" where going back
// is not allowed
func (s Step) prev() Step {
	switch s {
	case StepPayment:
		return StepAddress
	case StepReview:
		return StepPayment
	default:
		return ""
	}
}
