package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/petdesk/petdesk/internal/domain"
	"github.com/petdesk/petdesk/internal/events"
	"github.com/petdesk/petdesk/internal/store"
)

// In-memory store fakes. WithTx returns the fake itself; the fake
// transactor below provides rollback by snapshotting state.

type fakePetStore struct {
	pets  map[uuid.UUID]*domain.Pet
	order []uuid.UUID

	failUpdate error // next Update returns this error once
}

func newFakePetStore() *fakePetStore {
	return &fakePetStore{pets: make(map[uuid.UUID]*domain.Pet)}
}

func clonePet(pet *domain.Pet) *domain.Pet {
	clone := *pet
	if pet.Cosmetics != nil {
		clone.Cosmetics = append([]string(nil), pet.Cosmetics...)
	}
	return &clone
}

func (s *fakePetStore) Create(_ context.Context, pet *domain.Pet) error {
	if err := pet.Validate(); err != nil {
		return store.ErrInvalidEntity
	}
	s.pets[pet.ID] = clonePet(pet)
	s.order = append(s.order, pet.ID)
	return nil
}

func (s *fakePetStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Pet, error) {
	pet, ok := s.pets[id]
	if !ok {
		return nil, store.ErrPetNotFound
	}
	return clonePet(pet), nil
}

func (s *fakePetStore) List(_ context.Context) ([]*domain.Pet, error) {
	out := make([]*domain.Pet, 0, len(s.order))
	for _, id := range s.order {
		if pet, ok := s.pets[id]; ok {
			out = append(out, clonePet(pet))
		}
	}
	return out, nil
}

func (s *fakePetStore) Update(_ context.Context, pet *domain.Pet) error {
	if s.failUpdate != nil {
		err := s.failUpdate
		s.failUpdate = nil
		return err
	}
	if _, ok := s.pets[pet.ID]; !ok {
		return store.ErrPetNotFound
	}
	s.pets[pet.ID] = clonePet(pet)
	return nil
}

func (s *fakePetStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.pets[id]; !ok {
		return store.ErrPetNotFound
	}
	delete(s.pets, id)
	return nil
}

func (s *fakePetStore) SetActive(_ context.Context, id uuid.UUID) error {
	if id != uuid.Nil {
		if _, ok := s.pets[id]; !ok {
			return store.ErrPetNotFound
		}
	}
	for petID, pet := range s.pets {
		pet.Active = petID == id
	}
	return nil
}

func (s *fakePetStore) WithTx(_ *sql.Tx) store.PetStore { return s }

func (s *fakePetStore) snapshot() func() {
	saved := make(map[uuid.UUID]*domain.Pet, len(s.pets))
	for id, pet := range s.pets {
		saved[id] = clonePet(pet)
	}
	order := append([]uuid.UUID(nil), s.order...)
	return func() {
		s.pets = saved
		s.order = order
	}
}

type fakeInventoryStore struct {
	stacks map[string]int

	failNextAdd error // next AddQuantity returns this error once
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{stacks: make(map[string]int)}
}

func (s *fakeInventoryStore) Get(_ context.Context, itemID string) (*domain.InventoryItem, error) {
	qty, ok := s.stacks[itemID]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	return &domain.InventoryItem{ItemID: itemID, Quantity: qty}, nil
}

func (s *fakeInventoryStore) List(_ context.Context) ([]*domain.InventoryItem, error) {
	ids := make([]string, 0, len(s.stacks))
	for id := range s.stacks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*domain.InventoryItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.InventoryItem{ItemID: id, Quantity: s.stacks[id]})
	}
	return out, nil
}

func (s *fakeInventoryStore) AddQuantity(_ context.Context, itemID string, delta int) (int, error) {
	if s.failNextAdd != nil {
		err := s.failNextAdd
		s.failNextAdd = nil
		return 0, err
	}

	current, ok := s.stacks[itemID]
	if !ok && delta < 0 {
		return 0, store.ErrItemNotFound
	}

	next := current + delta
	if next < 0 {
		return 0, store.ErrInsufficientStock
	}
	if next == 0 {
		delete(s.stacks, itemID)
		return 0, nil
	}
	s.stacks[itemID] = next
	return next, nil
}

func (s *fakeInventoryStore) WithTx(_ *sql.Tx) store.InventoryStore { return s }

func (s *fakeInventoryStore) snapshot() func() {
	saved := make(map[string]int, len(s.stacks))
	for id, qty := range s.stacks {
		saved[id] = qty
	}
	return func() { s.stacks = saved }
}

type fakeCurrencyStore struct {
	balance int64
}

func (s *fakeCurrencyStore) Balance(_ context.Context) (int64, error) {
	return s.balance, nil
}

func (s *fakeCurrencyStore) Credit(_ context.Context, amount int64) (int64, error) {
	s.balance += amount
	return s.balance, nil
}

func (s *fakeCurrencyStore) Debit(_ context.Context, amount int64) (int64, error) {
	if s.balance < amount {
		return 0, store.ErrInsufficientBalance
	}
	s.balance -= amount
	return s.balance, nil
}

func (s *fakeCurrencyStore) WithTx(_ *sql.Tx) store.CurrencyStore { return s }

func (s *fakeCurrencyStore) snapshot() func() {
	saved := s.balance
	return func() { s.balance = saved }
}

type fakeAchievementStore struct {
	unlocked map[string]time.Time
	progress domain.AchievementProgress
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{unlocked: make(map[string]time.Time)}
}

func (s *fakeAchievementStore) ListUnlocked(_ context.Context) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(s.unlocked))
	for id, at := range s.unlocked {
		out[id] = at
	}
	return out, nil
}

func (s *fakeAchievementStore) SaveUnlock(_ context.Context, achievementID string, at time.Time) error {
	if _, ok := s.unlocked[achievementID]; ok {
		return store.ErrDuplicate
	}
	s.unlocked[achievementID] = at
	return nil
}

func (s *fakeAchievementStore) LoadProgress(_ context.Context) (*domain.AchievementProgress, error) {
	progress := s.progress
	return &progress, nil
}

func (s *fakeAchievementStore) SaveProgress(_ context.Context, progress *domain.AchievementProgress) error {
	s.progress = *progress
	return nil
}

func (s *fakeAchievementStore) WithTx(_ *sql.Tx) store.AchievementStore { return s }

func (s *fakeAchievementStore) snapshot() func() {
	unlocked := make(map[string]time.Time, len(s.unlocked))
	for id, at := range s.unlocked {
		unlocked[id] = at
	}
	progress := s.progress
	return func() {
		s.unlocked = unlocked
		s.progress = progress
	}
}

// fakeTransactor mimics transactional semantics by snapshotting the
// registered fakes before the function runs and restoring them when it
// fails.
type fakeTransactor struct {
	pets         *fakePetStore
	inventory    *fakeInventoryStore
	currency     *fakeCurrencyStore
	achievements *fakeAchievementStore
}

func (t *fakeTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	var restores []func()
	if t.pets != nil {
		restores = append(restores, t.pets.snapshot())
	}
	if t.inventory != nil {
		restores = append(restores, t.inventory.snapshot())
	}
	if t.currency != nil {
		restores = append(restores, t.currency.snapshot())
	}
	if t.achievements != nil {
		restores = append(restores, t.achievements.snapshot())
	}

	if err := fn(ctx, nil); err != nil {
		for _, restore := range restores {
			restore()
		}
		return err
	}
	return nil
}

// capturingHandler records every event it sees, optionally filtered by
// kind.
type capturingHandler struct {
	kinds  map[events.Kind]bool
	events []*events.Event
}

func (h *capturingHandler) HandleEvent(_ context.Context, event *events.Event) error {
	if h.kinds != nil && !h.kinds[event.Kind] {
		return nil
	}
	h.events = append(h.events, event)
	return nil
}

func (h *capturingHandler) byKind(kind events.Kind) []*events.Event {
	var out []*events.Event
	for _, event := range h.events {
		if event.Kind == kind {
			out = append(out, event)
		}
	}
	return out
}
