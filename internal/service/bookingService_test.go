package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelease/backend/internal/entity"
)

// fakeBookingRepo — потокобезопасное хранилище бронирований в памяти.
// Create повторяет транзакционную семантику боевой реализации: захват
// комнаты и вставка видны только вместе, неудачная вставка не оставляет
// занятых комнат.
type fakeBookingRepo struct {
	mu        sync.Mutex
	rooms     *fakeRoomRepo
	bookings  map[int64]*entity.Booking
	nextID    int64
	failures  int // сколько первых Create завершить конфликтом номера брони
	createErr error
}

func newFakeBookingRepo(rooms *fakeRoomRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		rooms:    rooms,
		bookings: make(map[int64]*entity.Booking),
		nextID:   1,
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Отказы проверяются до захвата комнаты: откатившаяся вставка
	// не должна менять доступность
	if f.createErr != nil {
		return f.createErr
	}
	if f.failures > 0 {
		f.failures--
		return entity.ErrReferenceConflict
	}
	for _, existing := range f.bookings {
		if existing.Reference == b.Reference {
			return entity.ErrReferenceConflict
		}
	}

	if b.RoomID == nil {
		if room := f.rooms.claim(b.Category); room != nil {
			b.Room = room
			b.RoomID = &room.ID
		}
	} else {
		f.rooms.occupy(*b.RoomID)
	}

	b.TotalPrice = b.CalculateTotal()

	b.ID = f.nextID
	f.nextID++
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.Reference == reference {
			copied := *b
			return &copied, nil
		}
	}
	return nil, entity.ErrBookingNotFound
}

func (f *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.bookings[b.ID]
	if !ok {
		return entity.ErrBookingNotFound
	}

	reference := stored.Reference
	updated := *b
	updated.Reference = reference // reference is immutable in storage
	f.bookings[b.ID] = &updated
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) GetAll(_ context.Context) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*entity.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeBookingRepo) GetByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	all, _ := f.GetAll(ctx)
	var out []*entity.Booking
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	all, _ := f.GetAll(ctx)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (f *fakeBookingRepo) GetUnassigned(ctx context.Context) ([]*entity.Booking, error) {
	all, _ := f.GetAll(ctx)
	var out []*entity.Booking
	for _, b := range all {
		if b.RoomID == nil && b.Status.OccupiesRoom() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	all, _ := f.GetAll(ctx)
	counts := make(map[entity.BookingStatus]int64)
	for _, b := range all {
		counts[b.Status]++
	}
	return counts, nil
}

func (f *fakeBookingRepo) SumRevenue(ctx context.Context) (int64, error) {
	all, _ := f.GetAll(ctx)
	var sum int64
	for _, b := range all {
		if b.Status.OccupiesRoom() {
			sum += int64(b.TotalPrice)
		}
	}
	return sum, nil
}

// fakeRoomRepo — потокобезопасное хранилище комнат в памяти. claim
// повторяет семантику боевой реализации: атомарный захват самой младшей
// свободной комнаты категории.
type fakeRoomRepo struct {
	mu          sync.Mutex
	rooms       map[int64]*entity.Room
	setAvailErr error // принудительная ошибка SetAvailability
}

func newFakeRoomRepo(rooms ...*entity.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[int64]*entity.Room)}
	for _, r := range rooms {
		copied := *r
		f.rooms[r.ID] = &copied
	}
	return f
}

func (f *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.rooms {
		if existing.Number == room.Number {
			return entity.ErrRoomAlreadyExists
		}
	}
	room.ID = int64(len(f.rooms) + 1)
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.rooms[id]
	if !ok {
		return nil, entity.ErrRoomNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoomRepo) GetByNumber(_ context.Context, number string) (*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rooms {
		if r.Number == number {
			copied := *r
			return &copied, nil
		}
	}
	return nil, entity.ErrRoomNotFound
}

func (f *fakeRoomRepo) GetAll(_ context.Context) ([]*entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*entity.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakeRoomRepo) GetByCategory(ctx context.Context, category entity.RoomCategory) ([]*entity.Room, error) {
	all, _ := f.GetAll(ctx)
	var out []*entity.Room
	for _, r := range all {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rooms[room.ID]; !ok {
		return entity.ErrRoomNotFound
	}
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomRepo) CategoryExists(_ context.Context, category entity.RoomCategory) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rooms {
		if r.Category == category {
			return true, nil
		}
	}
	return false, nil
}

// claim забирает самую младшую свободную комнату категории; nil, если
// категория распродана. Вызывается только из fakeBookingRepo.Create.
func (f *fakeRoomRepo) claim(category entity.RoomCategory) *entity.Room {
	f.mu.Lock()
	defer f.mu.Unlock()

	var candidate *entity.Room
	for _, r := range f.rooms {
		if r.Category != category || !r.IsAvailable {
			continue
		}
		if candidate == nil || r.Number < candidate.Number {
			candidate = r
		}
	}
	if candidate == nil {
		return nil
	}

	candidate.IsAvailable = false
	copied := *candidate
	return &copied
}

// occupy помечает заранее выбранную комнату занятой внутри вставки брони
func (f *fakeRoomRepo) occupy(roomID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r, ok := f.rooms[roomID]; ok {
		r.IsAvailable = false
	}
}

func (f *fakeRoomRepo) SetAvailability(_ context.Context, roomID int64, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setAvailErr != nil {
		return f.setAvailErr
	}

	r, ok := f.rooms[roomID]
	if !ok {
		return entity.ErrRoomNotFound
	}
	r.IsAvailable = available
	return nil
}

func (f *fakeRoomRepo) ReconcileAvailability(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRoomRepo) GetOccupancyStats(ctx context.Context) (*entity.OccupancyStats, error) {
	all, _ := f.GetAll(ctx)
	stats := &entity.OccupancyStats{TotalRooms: len(all)}
	for _, r := range all {
		if r.IsAvailable {
			stats.AvailableRooms++
		} else {
			stats.BookedRooms++
		}
	}
	return stats, nil
}

// fakeNotifier записывает отправленные оповещения
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Notify(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func singleRoom(id int64, number string) *entity.Room {
	return &entity.Room{ID: id, Number: number, Category: entity.CategorySingle, IsAvailable: true}
}

func validRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		FullName:    "Ali Raza",
		CNIC:        "3520212345671",
		Address:     "14-B Gulberg III, Lahore",
		PhoneNumber: "03001234567",
		Category:    entity.CategorySingle,
		Nights:      3,
	}
}

// TestCreateBooking тестирует создание бронирования целиком: номер брони,
// подбор комнаты, расчет стоимости и синхронизацию доступности
func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns reference, room and price", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		req := validRequest()
		req.AirportPickDrop = true

		booking, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)

		assert.Len(t, booking.Reference, 12)
		assert.Equal(t, entity.BookingStatusPending, booking.Status)
		assert.Equal(t, 5000*3+7000, booking.TotalPrice)

		require.NotNil(t, booking.RoomID)
		assert.Equal(t, int64(1), *booking.RoomID)

		room, err := roomRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.False(t, room.IsAvailable)
	})

	t.Run("lowest numbered room is claimed first", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(2, "102"), singleRoom(1, "101"), singleRoom(3, "103"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		require.NotNil(t, booking.Room)
		assert.Equal(t, "101", booking.Room.Number)
	})

	t.Run("room price overrides category rate", func(t *testing.T) {
		room := &entity.Room{ID: 7, Number: "701", Category: entity.CategorySuite, Price: 18000, IsAvailable: true}
		roomRepo := newFakeRoomRepo(room)
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		req := validRequest()
		req.Category = entity.CategorySuite
		req.Nights = 1

		booking, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 18000, booking.TotalPrice)
	})

	t.Run("explicit room number wins over allocation", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"), singleRoom(2, "102"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		req := validRequest()
		req.RoomNumber = "102"

		booking, err := svc.CreateBooking(ctx, req)
		require.NoError(t, err)

		require.NotNil(t, booking.RoomID)
		assert.Equal(t, int64(2), *booking.RoomID)
	})

	t.Run("sold out category leaves booking unassigned", func(t *testing.T) {
		room := singleRoom(1, "101")
		room.IsAvailable = false
		roomRepo := newFakeRoomRepo(room)
		bookingRepo := newFakeBookingRepo(roomRepo)
		notifier := &fakeNotifier{}
		svc := NewBookingService(bookingRepo, roomRepo, nil, notifier)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		assert.Nil(t, booking.RoomID)
		assert.Equal(t, entity.BookingStatusPending, booking.Status)
		assert.Equal(t, 15000, booking.TotalPrice)

		// Консьерж получает оповещение о брони без комнаты
		assert.Equal(t, 1, notifier.count())
	})

	t.Run("unknown category is rejected before persistence", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		req := validRequest()
		req.Category = entity.RoomCategory("penthouse")

		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, entity.ErrUnknownCategory)
		assert.Empty(t, bookingRepo.bookings)
	})

	t.Run("category with no rooms at all is rejected", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		req := validRequest()
		req.Category = entity.CategorySuite

		_, err := svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, entity.ErrUnknownCategory)
	})

	t.Run("nights out of range", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		for _, nights := range []int{0, 8, -3} {
			req := validRequest()
			req.Nights = nights

			_, err := svc.CreateBooking(ctx, req)
			assert.ErrorIs(t, err, entity.ErrNightsOutOfRange, "nights=%d", nights)
		}
	})
}

// TestReferenceRetry тестирует повторную генерацию номера брони при конфликте
func TestReferenceRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("collision is retried with a fresh reference", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		bookingRepo.failures = 2
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)
		assert.Len(t, booking.Reference, 12)
	})

	t.Run("retries exhausted leave no room claimed", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		bookingRepo.failures = referenceRetryLimit
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		_, err := svc.CreateBooking(ctx, validRequest())
		assert.ErrorIs(t, err, entity.ErrReferenceRetriesExceeded)

		// Каждая конфликтная попытка откатилась целиком вместе с захватом
		room, err := roomRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, room.IsAvailable)
	})
}

// TestCreateRollback тестирует атомарность создания брони: захват комнаты
// фиксируется только вместе со вставкой, промежуточное состояние «комната
// занята, брони нет» снаружи не наблюдается
func TestCreateRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("failed insert leaves no room claimed", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		bookingRepo.createErr = errors.New("storage offline")
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		_, err := svc.CreateBooking(ctx, validRequest())
		require.Error(t, err)
		assert.Empty(t, bookingRepo.bookings)

		room, err := roomRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, room.IsAvailable)
	})

	t.Run("claimed room always carries its booking", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		room, err := roomRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		require.False(t, room.IsAvailable)

		// Занятая комната объяснима активной бронью, реконсайлеру
		// нечего чинить
		unassigned, err := svc.GetUnassignedBookings(ctx)
		require.NoError(t, err)
		assert.Empty(t, unassigned)
		require.NotNil(t, booking.RoomID)
		assert.Equal(t, room.ID, *booking.RoomID)
	})
}

// TestAvailabilitySyncFailure тестирует устойчивость к сбою записи флага
// доступности: зафиксированная бронь не откатывается, расхождение
// оставляется идемпотентному реконсайлеру
func TestAvailabilitySyncFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel survives a failed room flag write", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		roomRepo.mu.Lock()
		roomRepo.setAvailErr = errors.New("connection reset")
		roomRepo.mu.Unlock()

		require.NoError(t, svc.CancelBooking(ctx, booking.ID))

		stored, err := svc.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, stored.Status)

		// Флаг остался несогласованным до прохода реконсайлера
		room, err := roomRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.False(t, room.IsAvailable)
	})

	t.Run("update survives a failed room flag write", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		roomRepo.mu.Lock()
		roomRepo.setAvailErr = errors.New("connection reset")
		roomRepo.mu.Unlock()

		status := entity.BookingStatusCancelled
		updated, err := svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, updated.Status)

		stored, err := svc.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, stored.Status)
	})
}

// TestUpdateBooking тестирует обновление с безусловным пересчетом стоимости
func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (BookingService, *fakeBookingRepo, *fakeRoomRepo, *entity.Booking) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)
		return svc, bookingRepo, roomRepo, booking
	}

	t.Run("price is recomputed on every save", func(t *testing.T) {
		svc, _, _, booking := setup(t)

		nights := 5
		updated, err := svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{Nights: &nights})
		require.NoError(t, err)
		assert.Equal(t, 5000*5, updated.TotalPrice)

		airport := true
		updated, err = svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{AirportPickDrop: &airport})
		require.NoError(t, err)
		assert.Equal(t, 5000*5+7000, updated.TotalPrice)
	})

	t.Run("price is recomputed even when no pricing field changed", func(t *testing.T) {
		svc, bookingRepo, _, booking := setup(t)

		// Симулируем продавленную извне неверную стоимость
		bookingRepo.mu.Lock()
		bookingRepo.bookings[booking.ID].TotalPrice = 1
		bookingRepo.mu.Unlock()

		notes := "late arrival"
		updated, err := svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, 5000*3, updated.TotalPrice)
	})

	t.Run("reference never changes", func(t *testing.T) {
		svc, _, _, booking := setup(t)
		original := booking.Reference

		nights := 2
		updated, err := svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{Nights: &nights})
		require.NoError(t, err)
		assert.Equal(t, original, updated.Reference)

		stored, err := svc.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, original, stored.Reference)
	})

	t.Run("illegal status transition is rejected", func(t *testing.T) {
		svc, _, _, booking := setup(t)

		require.NoError(t, svc.CancelBooking(ctx, booking.ID))

		status := entity.BookingStatusConfirmed
		_, err := svc.UpdateBooking(ctx, booking.ID, &UpdateBookingRequest{Status: &status})
		assert.ErrorIs(t, err, entity.ErrInvalidStatusTransition)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		nights := 2
		_, err := svc.UpdateBooking(ctx, 9999, &UpdateBookingRequest{Nights: &nights})
		assert.ErrorIs(t, err, entity.ErrBookingNotFound)
	})
}

// TestBookingLifecycle тестирует переходы статусов и освобождение комнаты
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm then cancel frees the room", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		require.NoError(t, svc.ConfirmBooking(ctx, booking.ID))

		room, _ := roomRepo.GetByID(ctx, 1)
		assert.False(t, room.IsAvailable)

		require.NoError(t, svc.CancelBooking(ctx, booking.ID))

		room, _ = roomRepo.GetByID(ctx, 1)
		assert.True(t, room.IsAvailable)

		stored, err := svc.GetBooking(ctx, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCancelled, stored.Status)
	})

	t.Run("cancelled room can be claimed by a new booking", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		first, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)
		require.NoError(t, svc.CancelBooking(ctx, first.ID))

		second, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		require.NotNil(t, second.RoomID)
		assert.Equal(t, int64(1), *second.RoomID)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		require.NoError(t, svc.CancelBooking(ctx, booking.ID))
		assert.ErrorIs(t, svc.CancelBooking(ctx, booking.ID), entity.ErrBookingAlreadyCancelled)
	})

	t.Run("confirm after cancel is rejected", func(t *testing.T) {
		roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
		bookingRepo := newFakeBookingRepo(roomRepo)
		svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

		booking, err := svc.CreateBooking(ctx, validRequest())
		require.NoError(t, err)

		require.NoError(t, svc.CancelBooking(ctx, booking.ID))
		assert.ErrorIs(t, svc.ConfirmBooking(ctx, booking.ID), entity.ErrInvalidStatusTransition)
	})
}

// TestConcurrentAllocation тестирует захват последней комнаты под нагрузкой:
// комнату получает ровно одна бронь, остальные остаются без назначения
func TestConcurrentAllocation(t *testing.T) {
	ctx := context.Background()

	roomRepo := newFakeRoomRepo(singleRoom(1, "101"))
	bookingRepo := newFakeBookingRepo(roomRepo)
	svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

	const guests = 50

	var wg sync.WaitGroup
	results := make([]*entity.Booking, guests)
	errs := make([]error, guests)

	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.CreateBooking(ctx, validRequest())
		}(i)
	}
	wg.Wait()

	assigned := 0
	for i, b := range results {
		require.NoError(t, errs[i])
		if b.RoomID != nil {
			assigned++
		}
	}

	assert.Equal(t, 1, assigned, "exactly one booking must claim the last room")

	room, err := roomRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, room.IsAvailable)
}

// TestDashboardStats тестирует сводку для панели персонала
func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	roomRepo := newFakeRoomRepo(singleRoom(1, "101"), singleRoom(2, "102"))
	bookingRepo := newFakeBookingRepo(roomRepo)
	svc := NewBookingService(bookingRepo, roomRepo, nil, nil)

	first, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmBooking(ctx, first.ID))

	second, err := svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ctx, second.ID))

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.BookingsByStatus[entity.BookingStatusConfirmed])
	assert.Equal(t, int64(1), stats.BookingsByStatus[entity.BookingStatusCancelled])
	assert.Equal(t, int64(first.TotalPrice), stats.Revenue)
	assert.Equal(t, 1, stats.Occupancy.BookedRooms)
	assert.Equal(t, 1, stats.Occupancy.AvailableRooms)
	assert.False(t, stats.NeedsFollowUp())
}
