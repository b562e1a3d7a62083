package models

import "testing"

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentPending, PaymentConfirmed, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPending, PaymentCancelled, true},
		{PaymentPending, PaymentPending, true},
		{PaymentConfirmed, PaymentPending, false},
		{PaymentConfirmed, PaymentFailed, false},
		{PaymentConfirmed, PaymentCancelled, false},
		{PaymentConfirmed, PaymentConfirmed, true}, // no-op
		{PaymentFailed, PaymentConfirmed, false},
		{PaymentFailed, PaymentPending, false},
		{PaymentCancelled, PaymentConfirmed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

// A payment may only enter payout states once its payment_status is
// confirmed, regardless of the transition sequence that got it there.
func TestDisbursementEligible(t *testing.T) {
	cases := []struct {
		status   PaymentStatus
		payout   PayoutStatus
		eligible bool
	}{
		{PaymentConfirmed, PayoutUnpaid, true},
		{PaymentConfirmed, PayoutInPayout, false},
		{PaymentConfirmed, PayoutPaid, false},
		{PaymentPending, PayoutUnpaid, false},
		{PaymentFailed, PayoutUnpaid, false},
		{PaymentCancelled, PayoutUnpaid, false},
	}
	for _, tc := range cases {
		p := Payment{PaymentStatus: tc.status, PayoutStatus: tc.payout}
		if got := p.DisbursementEligible(); got != tc.eligible {
			t.Errorf("status=%s payout=%s: got %v, want %v", tc.status, tc.payout, got, tc.eligible)
		}
	}
}
