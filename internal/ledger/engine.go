// Package ledger derives balances, budget consumption and dashboard
// summaries from a user's transactions.
//
// Nothing derived here is stored. Every figure is recomputed from the
// records returned by a Store on each call.
package ledger

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ErrRangeInverted is returned when a caller supplied range ends before it starts.
var ErrRangeInverted = Invalid("the start of the date range must not be after its end")

// Engine computes derived views over a Store.
type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// Balances returns the balance of every account of the user, oldest account first.
func (e *Engine) Balances(ctx context.Context, userID uuid.UUID) ([]AccountBalance, error) {
	accounts, err := e.store.Accounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	income, err := e.store.Sum(ctx, userID, Filter{Kind: Income}, GroupAccount)
	if err != nil {
		return nil, err
	}

	expense, err := e.store.Sum(ctx, userID, Filter{Kind: Expense}, GroupAccount)
	if err != nil {
		return nil, err
	}

	in, out := byKey(income), byKey(expense)

	balances := make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		balances = append(balances, NewAccountBalance(a, in[a.ID], out[a.ID]))
	}

	slices.SortStableFunc(balances, func(a, b AccountBalance) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return balances, nil
}

// Balance returns the balance of a single account.
func (e *Engine) Balance(ctx context.Context, userID, accountID uuid.UUID) (AccountBalance, error) {
	accounts, err := e.store.Accounts(ctx, userID)
	if err != nil {
		return AccountBalance{}, err
	}

	idx := slices.IndexFunc(accounts, func(a Account) bool { return a.ID == accountID })
	if idx < 0 {
		return AccountBalance{}, NotFound("account")
	}

	income, err := e.store.Sum(ctx, userID, Filter{AccountID: &accountID, Kind: Income}, GroupNone)
	if err != nil {
		return AccountBalance{}, err
	}

	expense, err := e.store.Sum(ctx, userID, Filter{AccountID: &accountID, Kind: Expense}, GroupNone)
	if err != nil {
		return AccountBalance{}, err
	}

	return NewAccountBalance(accounts[idx], sum(income), sum(expense)), nil
}

// Budgets returns the consumption of every budget of the user, most recent
// period first. Each budget is computed over its own period only.
func (e *Engine) Budgets(ctx context.Context, userID uuid.UUID) ([]BudgetConsumption, error) {
	budgets, err := e.store.Budgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]BudgetConsumption, 0, len(budgets))
	for _, b := range budgets {
		c, err := e.consume(ctx, userID, b)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	slices.SortStableFunc(result, compareBudgets)
	return result, nil
}

// Budget returns the consumption of a single budget.
func (e *Engine) Budget(ctx context.Context, userID, budgetID uuid.UUID) (BudgetConsumption, error) {
	budgets, err := e.store.Budgets(ctx, userID)
	if err != nil {
		return BudgetConsumption{}, err
	}

	idx := slices.IndexFunc(budgets, func(b Budget) bool { return b.ID == budgetID })
	if idx < 0 {
		return BudgetConsumption{}, NotFound("budget")
	}

	return e.consume(ctx, userID, budgets[idx])
}

func (e *Engine) consume(ctx context.Context, userID uuid.UUID, b Budget) (BudgetConsumption, error) {
	// An inverted period contains no dates
	if b.Period().Inverted() {
		return Consume(b, decimal.Zero), nil
	}

	categoryID := b.CategoryID
	spent, err := e.store.Sum(ctx, userID, Filter{CategoryID: &categoryID, Kind: Expense, Range: b.Period()}, GroupNone)
	if err != nil {
		return BudgetConsumption{}, err
	}

	return Consume(b, sum(spent)), nil
}

// Summary returns income and expense totals and the expenses per category
// for the range. The three sums are read concurrently.
func (e *Engine) Summary(ctx context.Context, userID uuid.UUID, r Range) (Summary, error) {
	if r.Inverted() {
		return Summary{}, ErrRangeInverted
	}

	var income, expense, categories []Total

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = e.store.Sum(gctx, userID, Filter{Kind: Income, Range: r}, GroupNone)
		return
	})
	g.Go(func() (err error) {
		expense, err = e.store.Sum(gctx, userID, Filter{Kind: Expense, Range: r}, GroupNone)
		return
	})
	g.Go(func() (err error) {
		categories, err = e.store.Sum(gctx, userID, Filter{Kind: Expense, Range: r}, GroupCategory)
		return
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	return NewSummary(r, sum(income), sum(expense), categories), nil
}

// Daily returns the daily income and expense totals for the range.
func (e *Engine) Daily(ctx context.Context, userID uuid.UUID, r Range) (iter.Seq[DailyTotals], error) {
	if r.Inverted() {
		return nil, ErrRangeInverted
	}

	entries, err := e.store.Entries(ctx, userID, Filter{Range: r})
	if err != nil {
		return nil, err
	}

	return Daily(entries), nil
}

// DeleteAccount deletes an account of the user unless transactions still
// reference it, in which case a *ConflictError is returned and nothing changes.
//
// The check and the deletion run as one atomic unit of the Store.
func (e *Engine) DeleteAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	return e.store.Atomic(ctx, func(s Store) error {
		n, err := s.CountEntries(ctx, userID, Filter{AccountID: &accountID})
		if err != nil {
			return err
		}

		if n > 0 {
			log.Debug().Str("account", accountID.String()).Int64("transactions", n).Msg("account deletion refused")
			return &ConflictError{AccountID: accountID, Transactions: n}
		}

		return s.DeleteAccount(ctx, userID, accountID)
	})
}
