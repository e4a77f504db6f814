package usecase

import "addisnest-service/internal/core/port/usecases_port"

var (
	_ usecases_port.CreatePropertyUseCasePort          = (*CreatePropertyUseCase)(nil)
	_ usecases_port.ListPropertiesUseCasePort          = (*ListPropertiesUseCase)(nil)
	_ usecases_port.ListMyPropertiesUseCasePort        = (*ListMyPropertiesUseCase)(nil)
	_ usecases_port.GetPropertyUseCasePort             = (*GetPropertyUseCase)(nil)
	_ usecases_port.UpdatePropertyUseCasePort          = (*UpdatePropertyUseCase)(nil)
	_ usecases_port.UpdatePropertyStatusUseCasePort    = (*UpdatePropertyStatusUseCase)(nil)
	_ usecases_port.DeletePropertyUseCasePort          = (*DeletePropertyUseCase)(nil)
	_ usecases_port.UploadImagesUseCasePort            = (*UploadImagesUseCase)(nil)
	_ usecases_port.NotifyPendingListingUseCasePort    = (*NotifyPendingListingUseCase)(nil)
	_ usecases_port.RegisterUserUseCasePort            = (*RegisterUserUseCase)(nil)
	_ usecases_port.LoginUserUseCasePort               = (*LoginUserUseCase)(nil)
	_ usecases_port.RequestOTPUseCasePort              = (*RequestOTPUseCase)(nil)
	_ usecases_port.VerifyOTPUseCasePort               = (*VerifyOTPUseCase)(nil)
	_ usecases_port.GoogleLoginUseCasePort             = (*GoogleLoginUseCase)(nil)
	_ usecases_port.GetProfileUseCasePort              = (*GetProfileUseCase)(nil)
	_ usecases_port.ValidateTokenUseCasePort           = (*ValidateTokenUseCase)(nil)
	_ usecases_port.CleanupOTPUseCasePort              = (*CleanupOTPUseCase)(nil)
	_ usecases_port.SendMessageUseCasePort             = (*SendMessageUseCase)(nil)
	_ usecases_port.ListConversationsUseCasePort       = (*ListConversationsUseCase)(nil)
	_ usecases_port.GetThreadUseCasePort               = (*GetThreadUseCase)(nil)
	_ usecases_port.MarkThreadReadUseCasePort          = (*MarkThreadReadUseCase)(nil)
	_ usecases_port.SubmitPartnershipUseCasePort       = (*SubmitPartnershipUseCase)(nil)
	_ usecases_port.ListPartnershipsUseCasePort        = (*ListPartnershipsUseCase)(nil)
	_ usecases_port.UpdatePartnershipStatusUseCasePort = (*UpdatePartnershipStatusUseCase)(nil)
	_ usecases_port.DashboardStatsUseCasePort          = (*DashboardStatsUseCase)(nil)
	_ usecases_port.ListUsersUseCasePort               = (*ListUsersUseCase)(nil)
)
