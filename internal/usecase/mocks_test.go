package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/usecase"
)

// MockCodeRepository
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCodeRepository) FindActiveByDestination(ctx context.Context, destination string) (*entity.VerificationCode, error) {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VerificationCode), args.Error(1)
}

func (m *MockCodeRepository) InvalidateActive(ctx context.Context, destination string) error {
	args := m.Called(ctx, destination)
	return args.Error(0)
}

func (m *MockCodeRepository) IncrementAttempts(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockCodeRepository) MarkConsumed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCodeRepository) CountRecentByDestination(ctx context.Context, destination string, since time.Time) (int, error) {
	args := m.Called(ctx, destination, since)
	return args.Int(0), args.Error(1)
}

func (m *MockCodeRepository) CountByChannel(ctx context.Context) ([]entity.ChannelStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChannelStats), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) ClaimForDelivery(ctx context.Context, leadID, clientID string, delivery *entity.Delivery) error {
	args := m.Called(ctx, leadID, clientID, delivery)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkDisputed(ctx context.Context, leadID string) error {
	args := m.Called(ctx, leadID)
	return args.Error(0)
}

func (m *MockLeadRepository) Replace(ctx context.Context, original *entity.Lead, replacement *entity.Lead) error {
	args := m.Called(ctx, original, replacement)
	return args.Error(0)
}

func (m *MockLeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadStats), args.Error(1)
}

func (m *MockLeadRepository) FindUnreconciled(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *entity.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) FindNextEligible(ctx context.Context, tier entity.Tier) (*entity.Client, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientRepository) AddBalance(ctx context.Context, id string, deltaCents int64) error {
	args := m.Called(ctx, id, deltaCents)
	return args.Error(0)
}

// MockDeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) Append(ctx context.Context, d *entity.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.Delivery, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Delivery), args.Error(1)
}

// MockCodeSender
type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) SendCode(ctx context.Context, destination string, channel entity.Channel, code string) error {
	args := m.Called(ctx, destination, channel, code)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssueToken(phone string) (string, error) {
	args := m.Called(phone)
	return args.String(0), args.Error(1)
}

// MockEventProducer
type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) PublishLeadVerified(ctx context.Context, payload usecase.LeadVerifiedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// inMemoryCodeRepo backs the issue/verify round-trip tests with real state
// instead of canned expectations.
type inMemoryCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*entity.VerificationCode // by id
}

func newInMemoryCodeRepo() *inMemoryCodeRepo {
	return &inMemoryCodeRepo{codes: map[string]*entity.VerificationCode{}}
}

func (r *inMemoryCodeRepo) Create(ctx context.Context, code *entity.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *code
	r.codes[code.ID] = &copied
	return nil
}

func (r *inMemoryCodeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, id)
	return nil
}

func (r *inMemoryCodeRepo) FindActiveByDestination(ctx context.Context, destination string) (*entity.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.VerificationCode
	now := time.Now()
	for _, c := range r.codes {
		if c.Destination != destination || c.State != entity.CodeActive || !c.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *inMemoryCodeRepo) InvalidateActive(ctx context.Context, destination string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, c := range r.codes {
		if c.Destination == destination && c.State == entity.CodeActive && c.ExpiresAt.After(now) {
			c.State = entity.CodeConsumed
		}
	}
	return nil
}

func (r *inMemoryCodeRepo) IncrementAttempts(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.codes[id]
	c.Attempts++
	return c.Attempts, nil
}

func (r *inMemoryCodeRepo) MarkConsumed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[id].State = entity.CodeConsumed
	return nil
}

func (r *inMemoryCodeRepo) CountRecentByDestination(ctx context.Context, destination string, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.codes {
		if c.Destination == destination && c.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryCodeRepo) CountByChannel(ctx context.Context) ([]entity.ChannelStats, error) {
	return nil, nil
}

func (r *inMemoryCodeRepo) activeCount(destination string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	now := time.Now()
	for _, c := range r.codes {
		if c.Destination == destination && c.State == entity.CodeActive && c.ExpiresAt.After(now) {
			count++
		}
	}
	return count
}

// inMemoryLeadRepo implements the claim compare-and-set under a mutex so the
// concurrency properties can be exercised without a database.
type inMemoryLeadRepo struct {
	mu         sync.Mutex
	leads      map[string]*entity.Lead
	deliveries []*entity.Delivery
}

func newInMemoryLeadRepo() *inMemoryLeadRepo {
	return &inMemoryLeadRepo{leads: map[string]*entity.Lead{}}
}

func (r *inMemoryLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *lead
	r.leads[lead.ID] = &copied
	return nil
}

func (r *inMemoryLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	copied := *lead
	return &copied, nil
}

func (r *inMemoryLeadRepo) ClaimForDelivery(ctx context.Context, leadID, clientID string, delivery *entity.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[leadID]
	if !ok {
		return entity.ErrLeadNotFound
	}
	if lead.State != entity.LeadPending {
		return entity.ErrAlreadyDelivered
	}
	now := time.Now()
	lead.State = entity.LeadDelivered
	lead.ClientID = &clientID
	lead.DeliveredAt = &now
	r.deliveries = append(r.deliveries, delivery)
	return nil
}

func (r *inMemoryLeadRepo) MarkDisputed(ctx context.Context, leadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[leadID].State = entity.LeadDisputed
	return nil
}

func (r *inMemoryLeadRepo) Replace(ctx context.Context, original *entity.Lead, replacement *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	orig := r.leads[original.ID]
	orig.State = entity.LeadReplaced
	orig.ReplacedBy = &replacement.ID
	copied := *replacement
	r.leads[replacement.ID] = &copied
	return nil
}

func (r *inMemoryLeadRepo) Stats(ctx context.Context) (*entity.LeadStats, error) {
	return &entity.LeadStats{}, nil
}

func (r *inMemoryLeadRepo) FindUnreconciled(ctx context.Context) ([]string, error) {
	return nil, nil
}
