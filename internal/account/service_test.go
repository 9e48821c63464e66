package account

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vault-x/vaultx/internal/logging"
	"github.com/vault-x/vaultx/internal/store"
)

func newTestService(t *testing.T, balance string) (*Service, store.Store) {
	t.Helper()
	records := store.NewMemory()
	require.NoError(t, records.PutUser(context.Background(), store.UserRecord{
		Username: "alex",
		Balance:  decimal.RequireFromString(balance),
	}))
	return NewService(records, logging.Discard()), records
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDeposit(t *testing.T) {
	svc, records := newTestService(t, "1000.00")
	ctx := context.Background()

	balance, err := svc.Deposit(ctx, "alex", amt("500"))
	require.NoError(t, err)
	assert.Equal(t, "1500.00", Format(balance))

	// persisted state agrees with the returned balance
	record, err := records.GetUser(ctx, "alex")
	require.NoError(t, err)
	assert.True(t, record.Balance.Equal(balance))

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Deposited: $500.00", history[0].Action)
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	svc, _ := newTestService(t, "100.00")
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "alex", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Deposit(ctx, "alex", amt("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestWithdraw(t *testing.T) {
	svc, _ := newTestService(t, "1000.00")
	ctx := context.Background()

	balance, err := svc.Withdraw(ctx, "alex", amt("250.50"))
	require.NoError(t, err)
	assert.Equal(t, "749.50", Format(balance))
}

func TestWithdrawExactBalanceLeavesZero(t *testing.T) {
	svc, _ := newTestService(t, "300.00")
	ctx := context.Background()

	balance, err := svc.Withdraw(ctx, "alex", amt("300.00"))
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWithdrawOneCentOverBalanceFails(t *testing.T) {
	svc, _ := newTestService(t, "300.00")
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, "alex", amt("300.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// balance untouched, nothing appended
	balance, err := svc.Balance(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, "300.00", Format(balance))

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestBalanceConservation(t *testing.T) {
	svc, _ := newTestService(t, "0.00")
	ctx := context.Background()

	deposits := []string{"100.00", "250.25", "49.75"}
	withdrawals := []string{"75.00", "500.00", "25.00"} // the 500 must fail

	for _, d := range deposits {
		_, err := svc.Deposit(ctx, "alex", amt(d))
		require.NoError(t, err)
	}
	var failed int
	for _, w := range withdrawals {
		if _, err := svc.Withdraw(ctx, "alex", amt(w)); err != nil {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	balance, err := svc.Balance(ctx, "alex")
	require.NoError(t, err)
	// 100 + 250.25 + 49.75 - 75 - 25
	assert.Equal(t, "300.00", Format(balance))
	assert.False(t, balance.IsNegative())
}

func TestCheckBalanceAppendsRecord(t *testing.T) {
	svc, _ := newTestService(t, "42.00")
	ctx := context.Background()

	balance, err := svc.CheckBalance(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, "42.00", Format(balance))

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Checked balance: $42.00", history[0].Action)
}

func TestBalanceIsPureRead(t *testing.T) {
	svc, _ := newTestService(t, "42.00")
	ctx := context.Background()

	_, err := svc.Balance(ctx, "alex")
	require.NoError(t, err)

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryKeepsCreationOrder(t *testing.T) {
	svc, _ := newTestService(t, "0.00")
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "alex", amt("10"))
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "alex", amt("20"))
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "alex", amt("5"))
	require.NoError(t, err)

	history, err := svc.History(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Deposited: $10.00", history[0].Action)
	assert.Equal(t, "Deposited: $20.00", history[1].Action)
	assert.Equal(t, "Withdrawn: $5.00", history[2].Action)
}

func TestUnknownUser(t *testing.T) {
	svc := NewService(store.NewMemory(), logging.Discard())
	ctx := context.Background()

	_, err := svc.Deposit(ctx, "ghost", amt("10"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}
