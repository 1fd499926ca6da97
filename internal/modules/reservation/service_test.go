package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"marketconnect/internal/database"
	"marketconnect/internal/domain"
	"marketconnect/internal/repository"
)

type testEnv struct {
	db       *gorm.DB
	service  *Service
	users    repository.UserRepository
	slots    repository.SlotRepository
	bookings repository.BookingRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:reservation_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, false)
	require.NoError(t, err)

	// A single connection keeps the shared-cache in-memory database alive
	// and serializes transactions the way a row lock would on postgres.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db,
		&domain.User{},
		&domain.Stall{},
		&domain.Slot{},
		&domain.Booking{},
	))

	users := repository.NewUserRepository(db)
	slots := repository.NewSlotRepository(db)
	bookings := repository.NewBookingRepository(db)

	return &testEnv{
		db:       db,
		service:  NewService(users, slots, bookings),
		users:    users,
		slots:    slots,
		bookings: bookings,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := &domain.User{LineUID: "U" + name, Name: name}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) createSlot(t *testing.T) *domain.Slot {
	t.Helper()
	stall := &domain.Stall{LocationName: "Taipei Main Station Exit M3", Facilities: "power outlet"}
	require.NoError(t, e.db.Create(stall).Error)

	slot := &domain.Slot{
		StallID: stall.ID,
		Date:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Price:   500,
		Status:  domain.SlotAvailable,
	}
	require.NoError(t, e.slots.Create(context.Background(), slot))
	return slot
}

func (e *testEnv) reloadSlot(t *testing.T, id int64) *domain.Slot {
	t.Helper()
	var slot domain.Slot
	require.NoError(t, e.db.First(&slot, id).Error)
	return &slot
}

func (e *testEnv) reloadBooking(t *testing.T, id int64) *domain.Booking {
	t.Helper()
	var b domain.Booking
	require.NoError(t, e.db.First(&b, id).Error)
	return &b
}

func TestReserveSuccess(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)

	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)
	require.NotZero(t, b.ID)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, slot.ID, b.SlotID)

	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestReserveUserNotFound(t *testing.T) {
	env := setupTestEnv(t)
	slot := env.createSlot(t)

	_, err := env.service.Reserve(context.Background(), 404, slot.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.Equal(t, domain.SlotAvailable, env.reloadSlot(t, slot.ID).Status)
}

func TestReserveSlotNotFound(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "mei")

	_, err := env.service.Reserve(context.Background(), user.ID, 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestReserveConflictOnBookedSlot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	u1 := env.createUser(t, "mei")
	u2 := env.createUser(t, "wei")
	slot := env.createSlot(t)

	_, err := env.service.Reserve(ctx, u1.ID, slot.ID)
	require.NoError(t, err)

	_, err = env.service.Reserve(ctx, u2.ID, slot.ID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	var count int64
	require.NoError(t, env.db.Model(&domain.Booking{}).Where("slot_id = ?", slot.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReserveConflictOnLockedSlot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	require.NoError(t, env.db.Model(&domain.Slot{}).Where("id = ?", slot.ID).
		Update("status", domain.SlotLocked).Error)

	_, err := env.service.Reserve(ctx, user.ID, slot.ID)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestConcurrentReserveExactlyOneWinner(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	slot := env.createSlot(t)

	const n = 8
	userIDs := make([]int64, n)
	for i := 0; i < n; i++ {
		userIDs[i] = env.createUser(t, fmt.Sprintf("user%d", i)).ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.service.Reserve(ctx, userIDs[i], slot.ID)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)

	var count int64
	require.NoError(t, env.db.Model(&domain.Booking{}).Where("slot_id = ?", slot.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestPayMarksBookingPaid(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	paid, err := env.service.Pay(ctx, b.ID, "cash")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, "cash", paid.PaymentMethod)

	stored := env.reloadBooking(t, b.ID)
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, "cash", stored.PaymentMethod)

	// Payment never touches the slot.
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestPayBookingNotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.service.Pay(context.Background(), 404, "cash")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestPayRejectsNonPendingBooking(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	_, err = env.service.Pay(ctx, b.ID, "cash")
	require.NoError(t, err)

	// Paying twice is rejected.
	_, err = env.service.Pay(ctx, b.ID, "card")
	assert.ErrorIs(t, err, ErrBookingNotPending)
	assert.Equal(t, "cash", env.reloadBooking(t, b.ID).PaymentMethod)
}

func TestPayRejectsCanceledBooking(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	_, err = env.service.Cancel(ctx, b.ID)
	require.NoError(t, err)

	_, err = env.service.Pay(ctx, b.ID, "cash")
	assert.ErrorIs(t, err, ErrBookingNotPending)
	assert.Equal(t, domain.PaymentCanceled, env.reloadBooking(t, b.ID).PaymentStatus)
}

func TestCancelFreesSlot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	canceled, err := env.service.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCanceled, canceled.PaymentStatus)

	assert.Equal(t, domain.SlotAvailable, env.reloadSlot(t, slot.ID).Status)
	assert.Equal(t, domain.PaymentCanceled, env.reloadBooking(t, b.ID).PaymentStatus)
}

func TestCancelPaidBookingRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)
	_, err = env.service.Pay(ctx, b.ID, "cash")
	require.NoError(t, err)

	_, err = env.service.Cancel(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookingPaid)

	// Nothing moved: the booking stays PAID, the slot stays BOOKED.
	assert.Equal(t, domain.PaymentPaid, env.reloadBooking(t, b.ID).PaymentStatus)
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestCancelCanceledBookingRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	other := env.createUser(t, "wei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)
	_, err = env.service.Cancel(ctx, b.ID)
	require.NoError(t, err)

	// The freed slot goes to someone else; re-cancelling the dead booking
	// must not free it again.
	b2, err := env.service.Reserve(ctx, other.ID, slot.ID)
	require.NoError(t, err)

	_, err = env.service.Cancel(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotPending)
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
	assert.Equal(t, domain.PaymentPending, env.reloadBooking(t, b2.ID).PaymentStatus)
}

func TestCancelBookingNotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.service.Cancel(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelThenReserveAgain(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	u1 := env.createUser(t, "mei")
	u2 := env.createUser(t, "wei")
	slot := env.createSlot(t)

	b1, err := env.service.Reserve(ctx, u1.ID, slot.ID)
	require.NoError(t, err)

	_, err = env.service.Cancel(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, env.reloadSlot(t, slot.ID).Status)

	b2, err := env.service.Reserve(ctx, u2.ID, slot.ID)
	require.NoError(t, err)
	assert.NotEqual(t, b1.ID, b2.ID)
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestCancelSurvivesDeletedSlot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	require.NoError(t, env.slots.Delete(ctx, slot.ID))

	canceled, err := env.service.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCanceled, canceled.PaymentStatus)
}

func TestDeleteBookingDoesNotFreeSlot(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "mei")
	slot := env.createSlot(t)
	b, err := env.service.Reserve(ctx, user.ID, slot.ID)
	require.NoError(t, err)

	require.NoError(t, env.service.DeleteBooking(ctx, b.ID))

	err = env.db.First(&domain.Booking{}, b.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deliberate asymmetry versus Cancel: the slot stays BOOKED.
	assert.Equal(t, domain.SlotBooked, env.reloadSlot(t, slot.ID).Status)
}

func TestDeleteBookingNotFound(t *testing.T) {
	env := setupTestEnv(t)

	err := env.service.DeleteBooking(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestReserveRollsBackSlotOnFailure(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	slot := env.createSlot(t)

	// Simulate a crash between the slot update and the booking insert: the
	// rolled-back transaction must leave no BOOKED slot behind.
	boom := errors.New("boom")
	err := env.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := env.slots.FindForUpdate(ctx, tx, slot.ID); err != nil {
			return err
		}
		if err := env.slots.UpdateStatus(ctx, tx, slot.ID, domain.SlotBooked); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, domain.SlotAvailable, env.reloadSlot(t, slot.ID).Status)
}

func TestBookedSlotsAlwaysHaveOneActiveBooking(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	u1 := env.createUser(t, "mei")
	u2 := env.createUser(t, "wei")
	s1 := env.createSlot(t)
	s2 := env.createSlot(t)
	s3 := env.createSlot(t)

	b1, err := env.service.Reserve(ctx, u1.ID, s1.ID)
	require.NoError(t, err)
	_, err = env.service.Pay(ctx, b1.ID, "cash")
	require.NoError(t, err)

	b2, err := env.service.Reserve(ctx, u2.ID, s2.ID)
	require.NoError(t, err)
	_, err = env.service.Cancel(ctx, b2.ID)
	require.NoError(t, err)

	_, err = env.service.Reserve(ctx, u2.ID, s3.ID)
	require.NoError(t, err)

	var slots []domain.Slot
	require.NoError(t, env.db.Find(&slots).Error)
	for _, slot := range slots {
		var active int64
		require.NoError(t, env.db.Model(&domain.Booking{}).
			Where("slot_id = ? AND payment_status <> ?", slot.ID, domain.PaymentCanceled).
			Count(&active).Error)

		switch slot.Status {
		case domain.SlotBooked:
			assert.EqualValues(t, 1, active, "BOOKED slot %d must have exactly one active booking", slot.ID)
		case domain.SlotAvailable:
			assert.EqualValues(t, 0, active, "AVAILABLE slot %d must have no active booking", slot.ID)
		}
	}
}
