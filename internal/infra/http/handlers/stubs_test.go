package handlers_test

import (
	"context"
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
)

// Function-field stubs: nil fields fall back to harmless defaults so each test
// only wires the calls it cares about.

type stubCodeRepo struct {
	findActive  func(ctx context.Context, destination string) (*entity.VerificationCode, error)
	countRecent func(ctx context.Context, destination string, since time.Time) (int, error)
	created     []*entity.VerificationCode
	consumed    []string
}

func (s *stubCodeRepo) Create(ctx context.Context, code *entity.VerificationCode) error {
	s.created = append(s.created, code)
	return nil
}

func (s *stubCodeRepo) Delete(ctx context.Context, id string) error { return nil }

func (s *stubCodeRepo) FindActiveByDestination(ctx context.Context, destination string) (*entity.VerificationCode, error) {
	if s.findActive != nil {
		return s.findActive(ctx, destination)
	}
	return nil, nil
}

func (s *stubCodeRepo) InvalidateActive(ctx context.Context, destination string) error { return nil }

func (s *stubCodeRepo) IncrementAttempts(ctx context.Context, id string) (int, error) { return 1, nil }

func (s *stubCodeRepo) MarkConsumed(ctx context.Context, id string) error {
	s.consumed = append(s.consumed, id)
	return nil
}

func (s *stubCodeRepo) CountRecentByDestination(ctx context.Context, destination string, since time.Time) (int, error) {
	if s.countRecent != nil {
		return s.countRecent(ctx, destination, since)
	}
	return 0, nil
}

func (s *stubCodeRepo) CountByChannel(ctx context.Context) ([]entity.ChannelStats, error) {
	return nil, nil
}

type stubLeadRepo struct {
	findByID func(ctx context.Context, id string) (*entity.Lead, error)
	claim    func(ctx context.Context, leadID, clientID string, d *entity.Delivery) error
	created  []*entity.Lead
}

func (s *stubLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	s.created = append(s.created, lead)
	return nil
}

func (s *stubLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, nil
}

func (s *stubLeadRepo) ClaimForDelivery(ctx context.Context, leadID, clientID string, d *entity.Delivery) error {
	if s.claim != nil {
		return s.claim(ctx, leadID, clientID, d)
	}
	return nil
}

func (s *stubLeadRepo) MarkDisputed(ctx context.Context, leadID string) error { return nil }

func (s *stubLeadRepo) Replace(ctx context.Context, original, replacement *entity.Lead) error {
	return nil
}

func (s *stubLeadRepo) Stats(ctx context.Context) (*entity.LeadStats, error) {
	return &entity.LeadStats{}, nil
}

func (s *stubLeadRepo) FindUnreconciled(ctx context.Context) ([]string, error) { return nil, nil }

type stubClientRepo struct {
	findByID   func(ctx context.Context, id string) (*entity.Client, error)
	addBalance func(ctx context.Context, id string, deltaCents int64) error
	created    []*entity.Client
}

func (s *stubClientRepo) Create(ctx context.Context, client *entity.Client) error {
	s.created = append(s.created, client)
	return nil
}

func (s *stubClientRepo) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, nil
}

func (s *stubClientRepo) FindNextEligible(ctx context.Context, tier entity.Tier) (*entity.Client, error) {
	return nil, nil
}

func (s *stubClientRepo) AddBalance(ctx context.Context, id string, deltaCents int64) error {
	if s.addBalance != nil {
		return s.addBalance(ctx, id, deltaCents)
	}
	return nil
}

type stubDeliveryRepo struct {
	appended []*entity.Delivery
}

func (s *stubDeliveryRepo) Append(ctx context.Context, d *entity.Delivery) error {
	s.appended = append(s.appended, d)
	return nil
}

func (s *stubDeliveryRepo) FindByLeadID(ctx context.Context, leadID string) ([]*entity.Delivery, error) {
	return s.appended, nil
}

type stubSender struct {
	sent []string
	err  error
}

func (s *stubSender) SendCode(ctx context.Context, destination string, channel entity.Channel, code string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, code)
	return nil
}
