package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_StatusAndRemaining(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		paid      string
		status    PaymentStatus
		remaining string
	}{
		{"nothing paid", "1000", "0", PaymentUnpaid, "1000"},
		{"part paid", "1000", "250.50", PaymentPartial, "749.5"},
		{"fully paid", "1000", "1000", PaymentPaid, "0"},
		{"zero invoice", "0", "0", PaymentUnpaid, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invoice{Amount: decimal.RequireFromString(tt.amount), PaidAmount: decimal.RequireFromString(tt.paid)}
			assert.Equal(t, tt.status, inv.Status())
			assert.True(t, inv.Remaining().Equal(decimal.RequireFromString(tt.remaining)), inv.Remaining().String())
		})
	}
}
