package usecase

import (
	"addisnest-service/internal/core/domain"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	sender := domain.NewPasswordlessUser("buyer@example.com", "", "Buyer", domain.ProviderOTP)
	seller := domain.NewPasswordlessUser("seller@example.com", "", "Seller", domain.ProviderOTP)
	users := newFakeUserRepo(sender, seller)

	f := newPropertyFixture()
	property, _, err := f.create.Execute(context.Background(), seller.ID, createPayload())
	require.NoError(t, err)

	messages := &fakeMessageRepo{}
	uc := NewSendMessageUseCase(messages, users, f.store)

	msg, err := uc.Execute(context.Background(), sender.ID, seller.ID, &property.ID, "Is it still available?")
	require.NoError(t, err)
	assert.Equal(t, &property.ID, msg.PropertyID)
	assert.Len(t, messages.created, 1)

	missingProperty := uuid.New()
	testCases := []struct {
		name       string
		recipient  uuid.UUID
		propertyID *uuid.UUID
		body       string
		wantErr    error
		validation bool
	}{
		{name: "unknown recipient", recipient: uuid.New(), body: "hi", wantErr: domain.ErrUserNotFound},
		{name: "unknown property", recipient: seller.ID, propertyID: &missingProperty, body: "hi", wantErr: domain.ErrPropertyNotFound},
		{name: "to yourself", recipient: sender.ID, body: "hi", validation: true},
		{name: "empty body", recipient: seller.ID, body: "  ", validation: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), sender.ID, tc.recipient, tc.propertyID, tc.body)
			if tc.validation {
				var vErr *domain.ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestThreadPagination(t *testing.T) {
	messages := &fakeMessageRepo{}
	uc := NewGetThreadUseCase(messages)

	thread, err := uc.Execute(context.Background(), uuid.New(), uuid.New(), 3, 0)
	require.NoError(t, err)
	assert.NotNil(t, thread)
	assert.Equal(t, [2]int{defaultThreadLimit, 2 * defaultThreadLimit}, messages.threadArg)

	_, err = uc.Execute(context.Background(), uuid.New(), uuid.New(), 0, 500)
	require.NoError(t, err)
	assert.Equal(t, [2]int{domain.MaxLimit, 0}, messages.threadArg)

	conversations, err := NewListConversationsUseCase(messages).Execute(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, conversations)

	updated, err := NewMarkThreadReadUseCase(messages).Execute(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 3, updated)
}

func TestPartnershipRequests(t *testing.T) {
	repo := newFakePartnershipRepo()
	email := &fakeEmailSender{}
	submit := NewSubmitPartnershipUseCase(repo, email, "team@addisnest.com")

	req, err := submit.Execute(context.Background(), domain.PartnershipInput{
		CompanyName: " Habesha Realty ", ContactName: "Meron", Email: "Meron@Habesha.et",
		PartnershipType: "agency", Message: "We would like to list our portfolio.",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PartnershipNew, req.Status)
	assert.Equal(t, "Habesha Realty", req.CompanyName)
	assert.Equal(t, "meron@habesha.et", req.Email)
	require.Len(t, email.sent, 1)
	assert.Equal(t, "team@addisnest.com", email.sent[0].ToEmail)

	list := NewListPartnershipsUseCase(repo)
	items, total, err := list.Execute(context.Background(), domain.PartnershipFilter{Status: domain.PartnershipNew})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
	assert.Equal(t, domain.DefaultLimit, repo.lastFilter.Limit)

	_, _, err = list.Execute(context.Background(), domain.PartnershipFilter{Status: "archived"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	update := NewUpdatePartnershipStatusUseCase(repo)
	updated, err := update.Execute(context.Background(), req.ID, domain.PartnershipAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.PartnershipAccepted, updated.Status)

	_, err = update.Execute(context.Background(), uuid.New(), domain.PartnershipRejected)
	assert.ErrorIs(t, err, domain.ErrPartnershipNotFound)

	_, err = update.Execute(context.Background(), req.ID, "maybe")
	assert.ErrorAs(t, err, &vErr)
}

func TestDashboardStats(t *testing.T) {
	f := newPropertyFixture()
	owner := uuid.New()
	_, _, err := f.create.Execute(context.Background(), owner, createPayload())
	require.NoError(t, err)
	basic := createPayload()
	basic["title"], basic["promotionType"] = "Studio", "Basic"
	_, _, err = f.create.Execute(context.Background(), owner, basic)
	require.NoError(t, err)

	admin, err := domain.NewUser("admin@addisnest.com", "password-123", "Admin", "", "")
	require.NoError(t, err)
	admin.Role = domain.RoleAdmin
	users := newFakeUserRepo(admin, domain.NewPasswordlessUser("u@x.et", "", "", domain.ProviderOTP))

	partnerships := newFakePartnershipRepo()
	_, err = NewSubmitPartnershipUseCase(partnerships, nil, "").Execute(context.Background(), domain.PartnershipInput{CompanyName: "A"})
	require.NoError(t, err)

	stats, err := NewDashboardStatsUseCase(f.store, users, partnerships).Execute(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.Properties.Total)
	assert.EqualValues(t, 1, stats.Properties.ByStatus[domain.StatusPending])
	assert.EqualValues(t, 1, stats.Properties.PendingPayments)
	assert.EqualValues(t, 2, stats.Users.Total)
	assert.EqualValues(t, 1, stats.Users.ByRole[domain.RoleAdmin])
	assert.EqualValues(t, 1, stats.NewPartnershipRequests)
	assert.False(t, stats.GeneratedAt.IsZero())
}

func TestListUsers(t *testing.T) {
	users := newFakeUserRepo(
		domain.NewPasswordlessUser("a@x.et", "", "", domain.ProviderOTP),
		domain.NewPasswordlessUser("b@x.et", "", "", domain.ProviderOTP),
		domain.NewPasswordlessUser("c@x.et", "", "", domain.ProviderOTP),
	)

	page, total, err := NewListUsersUseCase(users).Execute(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "c@x.et", page[0].Email)

	empty, _, err := NewListUsersUseCase(users).Execute(context.Background(), 9, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
