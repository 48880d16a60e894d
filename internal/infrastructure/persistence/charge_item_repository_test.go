package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/innkeep/backend/internal/domain/booking"
)

func setupChargeItemTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&booking.ChargeItem{})
	require.NoError(t, err)

	return db
}

func TestGormChargeItemRepository_FindDefaults(t *testing.T) {
	db := setupChargeItemTestDB(t)
	repo := NewGormChargeItemRepository(db)
	ctx := context.Background()

	seed := func(name string, isDefault bool) {
		item, err := booking.NewChargeItem(name, decimal.RequireFromString("100"), booking.ChargeTypeFixed, true, isDefault)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, item))
	}

	seed("Towel Service", true)
	seed("Breakfast", true)
	seed("Airport Transfer", false)

	defaults, err := repo.FindDefaults(ctx)
	require.NoError(t, err)
	require.Len(t, defaults, 2)
	assert.Equal(t, "Breakfast", defaults[0].Name)
	assert.Equal(t, "Towel Service", defaults[1].Name)
	for _, item := range defaults {
		assert.True(t, item.IsDefault)
	}
}
