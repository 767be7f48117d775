// Package memory provides an in-memory ledger.Store.
//
// It is used to exercise the engine without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cashbook/backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type account struct {
	userID uuid.UUID
	ledger.Account
}

type category struct {
	userID uuid.UUID
	name   string
}

type budget struct {
	userID uuid.UUID
	ledger.Budget
}

type entry struct {
	userID uuid.UUID
	ledger.Entry
}

type state struct {
	accounts   map[uuid.UUID]account
	categories map[uuid.UUID]category
	budgets    map[uuid.UUID]budget
	entries    []entry // sorted by date, then insertion
}

func (s state) clone() state {
	c := state{
		accounts:   make(map[uuid.UUID]account, len(s.accounts)),
		categories: make(map[uuid.UUID]category, len(s.categories)),
		budgets:    make(map[uuid.UUID]budget, len(s.budgets)),
		entries:    append([]entry{}, s.entries...),
	}

	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.budgets {
		c.budgets[k] = v
	}

	return c
}

// Store is a ledger.Store backed by maps.
type Store struct {
	mu    sync.RWMutex
	state state
	err   error
	clock time.Time
}

func New() *Store {
	return &Store{
		state: state{
			accounts:   make(map[uuid.UUID]account),
			categories: make(map[uuid.UUID]category),
			budgets:    make(map[uuid.UUID]budget),
		},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Fail makes every subsequent read return err. Passing nil recovers.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// tick returns strictly increasing creation times.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddAccount stores an account for the user. A nil ID is replaced by a new one.
func (s *Store) AddAccount(userID uuid.UUID, a ledger.Account) ledger.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.tick()
	}

	s.state.accounts[a.ID] = account{userID: userID, Account: a}
	return a
}

// AddCategory stores a category for the user and returns its ID.
func (s *Store) AddCategory(userID uuid.UUID, name string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.state.categories[id] = category{userID: userID, name: name}
	return id
}

// AddBudget stores a budget for the user. The category must belong to the user.
func (s *Store) AddBudget(userID uuid.UUID, b ledger.Budget) (ledger.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.categories[b.CategoryID]
	if !ok || c.userID != userID {
		return ledger.Budget{}, ledger.NotFound("category")
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.tick()
	}
	b.CategoryName = c.name

	s.state.budgets[b.ID] = budget{userID: userID, Budget: b}
	return b, nil
}

// AddEntry stores a transaction for the user. The account and, if set,
// the category must belong to the user.
func (s *Store) AddEntry(userID uuid.UUID, e ledger.Entry) (ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.state.accounts[e.AccountID]; !ok || a.userID != userID {
		return ledger.Entry{}, ledger.NotFound("account")
	}

	if e.CategoryID != nil {
		if c, ok := s.state.categories[*e.CategoryID]; !ok || c.userID != userID {
			return ledger.Entry{}, ledger.NotFound("category")
		}
	}

	if !e.Kind.Valid() {
		return ledger.Entry{}, ledger.ErrInvalidKind
	}

	if e.Amount.IsNegative() {
		return ledger.Entry{}, ledger.Invalid("the amount must not be negative")
	}

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.tick()
	}

	entries := s.state.entries
	i := slices.IndexFunc(entries, func(x entry) bool {
		return x.Date.After(e.Date)
	})
	if i < 0 {
		i = len(entries)
	}

	entries = append(entries, entry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = entry{userID: userID, Entry: e}
	s.state.entries = entries

	return e, nil
}

// RemoveEntry deletes a transaction of the user.
func (s *Store) RemoveEntry(userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.state.entries {
		if e.ID == id && e.userID == userID {
			s.state.entries = append(s.state.entries[:i], s.state.entries[i+1:]...)
			return nil
		}
	}

	return ledger.NotFound("transaction")
}

func (s *Store) view() *view {
	return &view{state: &s.state, err: s.err}
}

func (s *Store) Accounts(ctx context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().Accounts(ctx, userID)
}

func (s *Store) Budgets(ctx context.Context, userID uuid.UUID) ([]ledger.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().Budgets(ctx, userID)
}

func (s *Store) Entries(ctx context.Context, userID uuid.UUID, filter ledger.Filter) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().Entries(ctx, userID, filter)
}

func (s *Store) Sum(ctx context.Context, userID uuid.UUID, filter ledger.Filter, group ledger.GroupBy) ([]ledger.Total, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().Sum(ctx, userID, filter, group)
}

func (s *Store) CountEntries(ctx context.Context, userID uuid.UUID, filter ledger.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view().CountEntries(ctx, userID, filter)
}

func (s *Store) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteAccount(ctx, userID, accountID)
}

// Atomic holds the write lock for the whole of fn and restores
// the previous state if fn fails.
func (s *Store) Atomic(ctx context.Context, fn func(ledger.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := s.view().Atomic(ctx, fn); err != nil {
		s.state = snapshot
		return err
	}

	return nil
}

// view implements ledger.Store on the state without locking.
type view struct {
	state *state
	err   error
}

func (v *view) Accounts(_ context.Context, userID uuid.UUID) ([]ledger.Account, error) {
	if v.err != nil {
		return nil, v.err
	}

	var accounts []ledger.Account
	for _, a := range v.state.accounts {
		if a.userID == userID {
			accounts = append(accounts, a.Account)
		}
	}

	slices.SortStableFunc(accounts, func(a, b ledger.Account) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return accounts, nil
}

func (v *view) Budgets(_ context.Context, userID uuid.UUID) ([]ledger.Budget, error) {
	if v.err != nil {
		return nil, v.err
	}

	var budgets []ledger.Budget
	for _, b := range v.state.budgets {
		if b.userID == userID {
			budgets = append(budgets, b.Budget)
		}
	}

	return budgets, nil
}

func (v *view) Entries(_ context.Context, userID uuid.UUID, filter ledger.Filter) ([]ledger.Entry, error) {
	if v.err != nil {
		return nil, v.err
	}

	var entries []ledger.Entry
	for _, e := range v.state.entries {
		if e.userID == userID && filter.Matches(e.Entry) {
			entries = append(entries, e.Entry)
		}
	}

	return entries, nil
}

func (v *view) Sum(ctx context.Context, userID uuid.UUID, filter ledger.Filter, group ledger.GroupBy) ([]ledger.Total, error) {
	entries, err := v.Entries(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	if group == ledger.GroupNone {
		total := decimal.Zero
		for _, e := range entries {
			total = total.Add(e.Amount)
		}
		return []ledger.Total{{Total: total}}, nil
	}

	var totals []ledger.Total
	index := make(map[uuid.UUID]int)
	uncategorized := -1

	for _, e := range entries {
		key := &e.AccountID
		if group == ledger.GroupCategory {
			key = e.CategoryID
		}

		if key == nil {
			if uncategorized < 0 {
				uncategorized = len(totals)
				totals = append(totals, ledger.Total{Total: decimal.Zero})
			}
			totals[uncategorized].Total = totals[uncategorized].Total.Add(e.Amount)
			continue
		}

		i, ok := index[*key]
		if !ok {
			id := *key
			i = len(totals)
			index[id] = i
			totals = append(totals, ledger.Total{Key: &id, Name: v.name(group, id), Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}

	return totals, nil
}

func (v *view) name(group ledger.GroupBy, id uuid.UUID) *string {
	var name string
	switch group {
	case ledger.GroupAccount:
		name = v.state.accounts[id].Name
	case ledger.GroupCategory:
		name = v.state.categories[id].name
	}

	return &name
}

func (v *view) CountEntries(ctx context.Context, userID uuid.UUID, filter ledger.Filter) (int64, error) {
	entries, err := v.Entries(ctx, userID, filter)
	if err != nil {
		return 0, err
	}

	return int64(len(entries)), nil
}

func (v *view) DeleteAccount(_ context.Context, userID, accountID uuid.UUID) error {
	if v.err != nil {
		return v.err
	}

	a, ok := v.state.accounts[accountID]
	if !ok || a.userID != userID {
		return ledger.NotFound("account")
	}

	for _, e := range v.state.entries {
		if e.AccountID == accountID {
			return ledger.Conflict("the account is still referenced by transactions")
		}
	}

	delete(v.state.accounts, accountID)
	return nil
}

// Atomic on a view runs fn directly: the caller already holds the lock.
func (v *view) Atomic(_ context.Context, fn func(ledger.Store) error) error {
	return fn(v)
}
