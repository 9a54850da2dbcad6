package service

// Booking statuses. The strings are both the public contract and the
// storage encoding.
const (
	StatusDraft     = "draft"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods. hitpay is the deferred hosted-checkout method; the rest
// are settled manually and recorded paid on the spot.
const (
	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
	MethodTNG          = "tng"
	MethodHitpay       = "hitpay"
)

// bookingTransitions is the user-facing state machine:
// draft → quoted → confirmed → ongoing → completed, cancel from any
// non-terminal state. Payment cascades are not listed here; they write
// absolute targets through CascadeTarget.
var bookingTransitions = map[string][]string{
	StatusDraft:     {StatusQuoted, StatusCancelled},
	StatusQuoted:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a user-initiated move from one booking
// status to another is allowed.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether the booking can move no further.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// IsInstantMethod reports whether a payment method settles at recording
// time rather than through the hosted checkout.
func IsInstantMethod(method string) bool {
	return method == MethodCash || method == MethodBankTransfer || method == MethodTNG
}

// CascadeTarget maps a payment status change to the booking status it
// forces. A paid payment pushes the booking to ongoing; a refund resets it
// to confirmed from wherever it is, completed included (business policy
// carried over as-is). Targets are absolute, so applying a cascade twice is
// harmless.
func CascadeTarget(paymentStatus string) (string, bool) {
	switch paymentStatus {
	case PaymentPaid:
		return StatusOngoing, true
	case PaymentRefunded:
		return StatusConfirmed, true
	default:
		return "", false
	}
}
