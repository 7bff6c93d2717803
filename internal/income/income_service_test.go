package income_test

import (
	"context"
	"testing"
	"time"

	"go-truck-business/internal/income"
	incomeerrors "go-truck-business/internal/income/errors"
	"go-truck-business/internal/income/mock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func newService(t *testing.T) (income.Service, *mock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	return income.NewService(repo), repo
}

func TestIncomeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, in *income.Income) error {
			assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), in.IncomeDate)
			assert.Equal(t, "Freight", in.Category)
			in.ID = 11
			return nil
		})

		resp, err := svc.Create(ctx, income.CreateIncomeRequest{
			IncomeDate:  "2025-04-02",
			Description: "Bangkok to Chiang Mai",
			Category:    " Freight ",
			Amount:      decimal.RequireFromString("25000.00"),
		})
		require.NoError(t, err)
		assert.Equal(t, uint(11), resp.ID)
		assert.Equal(t, "2025-04-02", resp.IncomeDate)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Create(ctx, income.CreateIncomeRequest{IncomeDate: "02/04/2025", Description: "x", Category: "y"})
		assert.ErrorIs(t, err, incomeerrors.ErrInvalidIncomeDate)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Create(ctx, income.CreateIncomeRequest{
			IncomeDate: "2025-04-02", Description: "x", Category: "y", Amount: decimal.NewFromInt(-5),
		})
		assert.ErrorIs(t, err, incomeerrors.ErrInvalidAmount)
	})
}

func TestIncomeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial", func(t *testing.T) {
		svc, repo := newService(t)
		amount := decimal.NewFromInt(700)
		repo.EXPECT().FindByID(ctx, uint(2)).Return(&income.Income{
			ID: 2, IncomeDate: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Description: "old", Category: "Freight", Amount: decimal.NewFromInt(100),
		}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := svc.Update(ctx, 2, income.UpdateIncomeRequest{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, "old", resp.Description)
		assert.True(t, resp.Amount.Equal(amount))
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().FindByID(ctx, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, 2, income.UpdateIncomeRequest{})
		assert.ErrorIs(t, err, incomeerrors.ErrIncomeNotFound)
	})
}

func TestIncomeService_GetByYear(t *testing.T) {
	ctx := context.Background()

	t.Run("calendar year range", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().
			FindBetween(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
			Return([]income.Income{{ID: 1}}, nil)

		resp, err := svc.GetByYear(ctx, "2024")
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("invalid", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.GetByYear(ctx, "0")
		assert.ErrorIs(t, err, incomeerrors.ErrInvalidYear)
	})
}

func TestIncomeService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	repo.EXPECT().Delete(ctx, uint(4)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 4), incomeerrors.ErrIncomeNotFound)
}
