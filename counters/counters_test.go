package counters

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type owner struct {
	ID    uint
	Total int64
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&owner{}))
	return db
}

func total(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var o owner
	require.NoError(t, db.First(&o, id).Error)
	return o.Total
}

func TestIncrementDecrementNeverNegative(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Create(&owner{ID: 1}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, Increment(db, &owner{}, "total", 1))
	}
	assert.Equal(t, int64(3), total(t, db, 1))

	for i := 0; i < 5; i++ {
		require.NoError(t, Decrement(db, &owner{}, "total", 1))
	}
	assert.Equal(t, int64(0), total(t, db, 1))
}

func TestAddIsAtomicWithTransaction(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Create(&owner{ID: 1}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := Increment(tx, &owner{}, "total", 1); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, int64(0), total(t, db, 1))
}

func TestMembership(t *testing.T) {
	assert.Empty(t, Membership(nil, nil))
	assert.Equal(t, map[uint]int64{1: 1, 2: 1}, Membership(nil, []uint{1, 2}))
	assert.Equal(t, map[uint]int64{1: -1}, Membership([]uint{1, 2}, []uint{2}))
	assert.Equal(t, map[uint]int64{1: -1, 3: 1}, Membership([]uint{1, 2}, []uint{2, 3}))
	assert.Empty(t, Membership([]uint{0}, []uint{0}))
}

func TestApplyMembership(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Create(&[]owner{{ID: 1, Total: 2}, {ID: 2}, {ID: 3, Total: 1}}).Error)

	require.NoError(t, ApplyMembership(db, &owner{}, "total", []uint{1, 3}, []uint{1, 2}))
	assert.Equal(t, int64(2), total(t, db, 1))
	assert.Equal(t, int64(1), total(t, db, 2))
	assert.Equal(t, int64(0), total(t, db, 3))
}
