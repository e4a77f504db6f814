package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePromotion(t *testing.T) {
	tests := []struct {
		tier string
		want PromotionOutcome
	}{
		{"Basic", PromotionOutcome{StatusActive, PaymentNone, PromotionBasic}},
		{"None", PromotionOutcome{StatusActive, PaymentNone, PromotionBasic}},
		{"", PromotionOutcome{StatusActive, PaymentNone, PromotionBasic}},
		{"Platinum", PromotionOutcome{StatusActive, PaymentNone, PromotionBasic}},
		{"vip", PromotionOutcome{StatusActive, PaymentNone, PromotionBasic}},
		{"VIP", PromotionOutcome{StatusPending, PaymentPending, PromotionVIP}},
		{"Diamond", PromotionOutcome{StatusPending, PaymentPending, PromotionDiamond}},
	}

	for _, tt := range tests {
		t.Run("tier "+tt.tier, func(t *testing.T) {
			got := ResolvePromotion(tt.tier)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidStatus(got.Status))
			assert.True(t, IsValidPaymentStatus(got.PaymentStatus))
		})
	}
}
