package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
)

// NotifyPendingListingUseCase пишет модераторам о платных объявлениях, ожидающих оплаты.
type NotifyPendingListingUseCase struct {
	email     port.EmailSenderPort
	teamEmail string
}

func NewNotifyPendingListingUseCase(email port.EmailSenderPort, teamEmail string) *NotifyPendingListingUseCase {
	return &NotifyPendingListingUseCase{email: email, teamEmail: teamEmail}
}

func (uc *NotifyPendingListingUseCase) Execute(ctx context.Context, event domain.PropertyCreatedEvent) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "NotifyPendingListing",
		"property_id": event.PropertyID.String(),
	})

	if !event.AwaitsPayment() {
		ucLogger.Debug("Listing does not await payment, skipping", port.Fields{"status": event.Status})
		return nil
	}
	if uc.email == nil || uc.teamEmail == "" {
		ucLogger.Warn("Moderation inbox is not configured, skipping notification", nil)
		return nil
	}

	msg := port.EmailMessage{
		ToEmail:   uc.teamEmail,
		ToName:    "Addisnest moderation",
		Subject:   fmt.Sprintf("%s listing awaiting payment: %s", event.PromotionType, event.Title),
		PlainText: fmt.Sprintf(
			"Listing %s (%s) was created by %s at %s.\nPromotion: %s, price: %.2f.\nStatus: %s, payment: %s.",
			event.PropertyID, event.Title, event.OwnerID, event.CreatedAt.Format("2006-01-02 15:04 MST"),
			event.PromotionType, event.Price, event.Status, event.PaymentStatus,
		),
	}
	if err := uc.email.SendEmail(ctx, msg); err != nil {
		return fmt.Errorf("failed to notify moderators: %w", err)
	}

	ucLogger.Info("Use case finished: moderators notified", nil)
	return nil
}
