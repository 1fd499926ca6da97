package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketconnect/internal/database"
	"marketconnect/internal/domain"
	"marketconnect/internal/repository"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:query_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db,
		&domain.User{},
		&domain.Stall{},
		&domain.Slot{},
		&domain.Booking{},
	))

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewStallRepository(db),
		repository.NewSlotRepository(db),
		repository.NewBookingRepository(db),
	)
	return svc, db
}

func TestListAvailableSlotsExcludesNonAvailable(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	stall := domain.Stall{LocationName: "Zhongshan Park Entrance", Facilities: "open air"}
	require.NoError(t, db.Create(&stall).Error)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	slots := []domain.Slot{
		{StallID: stall.ID, Date: date, Price: 500, Status: domain.SlotAvailable},
		{StallID: stall.ID, Date: date, Price: 600, Status: domain.SlotLocked},
		{StallID: stall.ID, Date: date, Price: 700, Status: domain.SlotBooked},
	}
	for i := range slots {
		require.NoError(t, db.Create(&slots[i]).Error)
	}

	rows, err := svc.ListAvailableSlots(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, slots[0].ID, rows[0].SlotID)
	assert.Equal(t, "Zhongshan Park Entrance", rows[0].LocationName)
	assert.Equal(t, 500.0, rows[0].Price)
}

func TestListAvailableSlotsSkipsDanglingStall(t *testing.T) {
	svc, db := setupTestService(t)

	// Slot whose stall was deleted: the join drops it rather than erroring.
	require.NoError(t, db.Create(&domain.Slot{
		StallID: 999,
		Date:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Price:   500,
		Status:  domain.SlotAvailable,
	}).Error)

	rows, err := svc.ListAvailableSlots(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListEntities(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.User{LineUID: "U1", Name: "Mei"}).Error)
	require.NoError(t, db.Create(&domain.User{LineUID: "U2", Name: "Wei"}).Error)
	require.NoError(t, db.Create(&domain.Stall{LocationName: "Gate A"}).Error)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	stalls, err := svc.ListStalls(ctx)
	require.NoError(t, err)
	assert.Len(t, stalls, 1)

	bookings, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
