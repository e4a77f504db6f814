package usecase

import (
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errStorage = errors.New("connection refused")

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	createErr error
	findErr   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	return r.find(func(u *domain.User) bool { return email != "" && u.Email == email })
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return phone != "" && u.Phone == phone })
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsVerified = true
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) Stats(_ context.Context) (*domain.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.UserStats{ByRole: map[string]int64{}}
	for _, u := range r.users {
		stats.Total++
		stats.ByRole[u.Role]++
	}
	return stats, nil
}

type fakeOTPRepo struct {
	codes    map[string]*domain.OTPCode
	saveErr  error
	deleted  []uuid.UUID
	cutoff   time.Time
	expiredN int64
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{codes: make(map[string]*domain.OTPCode)}
}

func (r *fakeOTPRepo) Save(_ context.Context, code *domain.OTPCode) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *code
	r.codes[code.Destination] = &copied
	return nil
}

func (r *fakeOTPRepo) FindLatest(_ context.Context, destination string) (*domain.OTPCode, error) {
	code, ok := r.codes[destination]
	if !ok {
		return nil, nil
	}
	copied := *code
	return &copied, nil
}

func (r *fakeOTPRepo) IncrementAttempts(_ context.Context, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.Attempts++
		}
	}
	return nil
}

func (r *fakeOTPRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	for dest, c := range r.codes {
		if c.ID == id {
			delete(r.codes, dest)
		}
	}
	return nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.cutoff = before
	return r.expiredN, nil
}

type fakeTokenService struct {
	err error
}

func (s *fakeTokenService) GenerateToken(_ context.Context, user *domain.User, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + user.ID.String(), nil
}

func (s *fakeTokenService) ValidateToken(_ context.Context, tokenString string) (*domain.Claims, error) {
	id, err := uuid.Parse(tokenString)
	if err != nil {
		return nil, errors.New("malformed")
	}
	return &domain.Claims{UserID: id, Role: domain.RoleUser}, nil
}

type fakeEmailSender struct {
	sent []port.EmailMessage
	err  error
}

func (s *fakeEmailSender) SendEmail(_ context.Context, msg port.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type sentSMS struct {
	to, body string
}

type fakeSMSSender struct {
	sent []sentSMS
	err  error
}

func (s *fakeSMSSender) SendSMS(_ context.Context, to, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentSMS{to: to, body: body})
	return nil
}

type fakeVerifier struct {
	identity *port.ExternalIdentity
	err      error
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (*port.ExternalIdentity, error) {
	return v.identity, v.err
}

// fakeCache версионирует ключи так же, как redis-кэш: Invalidate меняет поколение,
// старые записи остаются в pages, но больше не читаются.
type fakeCache struct {
	pages       map[string]*domain.ListingPage
	version     int
	getErr      error
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: make(map[string]*domain.ListingPage)}
}

func (c *fakeCache) cacheKey(q domain.ListingQuery) string {
	return fmt.Sprintf("v%d/%d/%d/%s", c.version, q.Page, q.Limit, q.City)
}

func (c *fakeCache) Get(_ context.Context, q domain.ListingQuery) (*domain.ListingPage, string, error) {
	if c.getErr != nil {
		return nil, "", c.getErr
	}
	key := c.cacheKey(q)
	return c.pages[key], key, nil
}

func (c *fakeCache) Set(_ context.Context, key string, page *domain.ListingPage) error {
	c.pages[key] = page
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.version++
	return nil
}

// current - страницы текущего поколения
func (c *fakeCache) current() int {
	prefix := fmt.Sprintf("v%d/", c.version)
	n := 0
	for key := range c.pages {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}

type fakeEvents struct {
	published []domain.PropertyCreatedEvent
	err       error
}

func (e *fakeEvents) PublishPropertyCreated(_ context.Context, event domain.PropertyCreatedEvent) error {
	e.published = append(e.published, event)
	return e.err
}

type fakeImageStorage struct {
	keys []string
	err  error
}

func (s *fakeImageStorage) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.test/" + key, nil
}

// failingStorage - хранилище объявлений, которое всегда падает на чтении
type failingStorage struct {
	port.PropertyStoragePort
}

func (failingStorage) FindRecentDuplicate(context.Context, domain.DuplicateProbe) (*domain.PropertyRecord, error) {
	return nil, errStorage
}

func (failingStorage) List(context.Context, domain.ListingQuery) (*domain.ListingPage, error) {
	return nil, errStorage
}

type fakeMessageRepo struct {
	created   []*domain.Message
	threadArg [2]int
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.created = append(r.created, msg)
	return nil
}

func (r *fakeMessageRepo) ListConversations(context.Context, uuid.UUID) ([]domain.ConversationSummary, error) {
	return nil, nil
}

func (r *fakeMessageRepo) Thread(_ context.Context, _, _ uuid.UUID, limit, offset int) ([]domain.Message, error) {
	r.threadArg = [2]int{limit, offset}
	return nil, nil
}

func (r *fakeMessageRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 3, nil
}

type fakePartnershipRepo struct {
	items      map[uuid.UUID]*domain.PartnershipRequest
	lastFilter domain.PartnershipFilter
}

func newFakePartnershipRepo() *fakePartnershipRepo {
	return &fakePartnershipRepo{items: make(map[uuid.UUID]*domain.PartnershipRequest)}
}

func (r *fakePartnershipRepo) Create(_ context.Context, req *domain.PartnershipRequest) error {
	r.items[req.ID] = req
	return nil
}

func (r *fakePartnershipRepo) List(_ context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error) {
	r.lastFilter = filter
	var out []domain.PartnershipRequest
	for _, item := range r.items {
		if filter.Status == "" || item.Status == filter.Status {
			out = append(out, *item)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePartnershipRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*domain.PartnershipRequest, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	item.Status = status
	copied := *item
	return &copied, nil
}

func (r *fakePartnershipRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.Status == status {
			n++
		}
	}
	return n, nil
}
