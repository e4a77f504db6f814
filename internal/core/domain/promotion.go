package domain

// Тарифы продвижения
const (
	PromotionBasic   = "Basic"
	PromotionVIP     = "VIP"
	PromotionDiamond = "Diamond"
)

type PromotionOutcome struct {
	Status        string
	PaymentStatus string
	PromotionType string
}

// ResolvePromotion определяет стартовый статус и статус оплаты по запрошенному тарифу.
// Платные тарифы ждут подтверждения оплаты, всё остальное (включая пустое и неизвестное
// значение) публикуется сразу как Basic. Сравнение чувствительно к регистру.
func ResolvePromotion(tier string) PromotionOutcome {
	switch tier {
	case PromotionVIP, PromotionDiamond:
		return PromotionOutcome{
			Status:        StatusPending,
			PaymentStatus: PaymentPending,
			PromotionType: tier,
		}
	default:
		return PromotionOutcome{
			Status:        StatusActive,
			PaymentStatus: PaymentNone,
			PromotionType: PromotionBasic,
		}
	}
}
