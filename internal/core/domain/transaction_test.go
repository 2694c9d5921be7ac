package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendwise/spendwise-backend/internal/core/domain"
)

func TestTransaction_BalanceEffects(t *testing.T) {
	accA := "acc_a"
	accB := "acc_b"

	tests := []struct {
		name        string
		transaction domain.Transaction
		want        map[string]decimal.Decimal
	}{
		{
			name: "expense debits the source account",
			transaction: domain.Transaction{
				TransactionType: domain.Expense,
				Amount:          decimal.NewFromInt(150),
				AccountID:       &accA,
			},
			want: map[string]decimal.Decimal{accA: decimal.NewFromInt(-150)},
		},
		{
			name: "income credits the destination account",
			transaction: domain.Transaction{
				TransactionType: domain.Income,
				Amount:          decimal.NewFromInt(2500),
				ToAccountID:     &accA,
			},
			want: map[string]decimal.Decimal{accA: decimal.NewFromInt(2500)},
		},
		{
			name: "transfer debits source and credits destination",
			transaction: domain.Transaction{
				TransactionType: domain.Transfer,
				Amount:          decimal.NewFromInt(200),
				AccountID:       &accA,
				ToAccountID:     &accB,
			},
			want: map[string]decimal.Decimal{
				accA: decimal.NewFromInt(-200),
				accB: decimal.NewFromInt(200),
			},
		},
		{
			name: "self transfer nets to zero",
			transaction: domain.Transaction{
				TransactionType: domain.Transfer,
				Amount:          decimal.NewFromInt(75),
				AccountID:       &accA,
				ToAccountID:     &accA,
			},
			want: map[string]decimal.Decimal{accA: decimal.Zero},
		},
		{
			name: "expense without source has no effect",
			transaction: domain.Transaction{
				TransactionType: domain.Expense,
				Amount:          decimal.NewFromInt(10),
			},
			want: map[string]decimal.Decimal{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.BalanceEffects()
			assert.Len(t, got, len(tt.want))
			for id, want := range tt.want {
				assert.Truef(t, got[id].Equal(want), "account %s: want %s, got %s", id, want, got[id])
			}
		})
	}
}

func TestTransaction_ReversalEffects(t *testing.T) {
	accA := "acc_a"
	accB := "acc_b"

	txn := domain.Transaction{
		TransactionType: domain.Transfer,
		Amount:          decimal.NewFromInt(200),
		AccountID:       &accA,
		ToAccountID:     &accB,
	}

	reversal := txn.ReversalEffects()
	assert.True(t, reversal[accA].Equal(decimal.NewFromInt(200)))
	assert.True(t, reversal[accB].Equal(decimal.NewFromInt(-200)))

	// Applying effect then reversal leaves every account where it started.
	effects := txn.BalanceEffects()
	for id := range effects {
		assert.True(t, effects[id].Add(reversal[id]).IsZero())
	}
}
