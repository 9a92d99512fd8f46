package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testLoc = time.FixedZone("UTC+3", 3*60*60)

func fixedNow() time.Time {
	return time.Date(2025, 3, 5, 15, 30, 0, 0, testLoc)
}

func newTestBookingService(bookings *MockBookingStore, clients *MockClientStore, opts ...BookingServiceOption) *BookingService {
	opts = append([]BookingServiceOption{WithClock(fixedNow)}, opts...)
	return NewBookingService(bookings, clients, testLoc, zap.NewNop(), opts...)
}

func vacuumDraft() model.BookingDraft {
	return model.BookingDraft{
		ServiceName:   model.Catalog[0].Name,
		BookingDate:   time.Date(2025, 3, 5, 0, 0, 0, 0, testLoc),
		ClientName:    "Ivan",
		ClientPhone:   "+375291112233",
		ClientAddress: "Minsk",
	}
}

func TestBookingService_CreateFromDraft(t *testing.T) {
	bookings := &MockBookingStore{}
	cache := &MockCache{}
	announcer := &MockAnnouncer{}
	svc := newTestBookingService(bookings, &MockClientStore{}, WithAvailabilityCache(cache), WithAnnouncer(announcer))

	var createdClient *model.Client
	var createdBooking *model.Booking
	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdClient = args.Get(1).(*model.Client)
			createdBooking = args.Get(2).(*model.Booking)
			createdClient.ID = 7
			createdBooking.ID = 42
			createdBooking.ClientID = 7
		}).
		Return(nil).Once()
	cache.On("InvalidateAvailability", mock.Anything, "2025-03-05").Return(nil).Once()
	announcer.On("Announce", mock.MatchedBy(func(e model.BookingEvent) bool {
		return e.Booking.ID == 42 && e.ClientName == "Ivan" && e.ClientPhone == "+375291112233" && e.ID != ""
	})).Once()

	details, err := svc.CreateFromDraft(context.Background(), vacuumDraft())
	require.NoError(t, err)

	assert.Equal(t, int64(42), details.ID)
	assert.Equal(t, int64(7), details.ClientID)
	assert.Equal(t, "Аренда пылесоса Karcher Puzzi 8/1 C", details.ServiceName)
	assert.Equal(t, "Minsk", details.AddressOrEmpty())

	assert.Equal(t, "Ivan", createdClient.FirstName)
	assert.Equal(t, "+375291112233", createdClient.PhoneNumber)
	assert.Regexp(t, `^client_[0-9a-f]{12}@karcher\.by$`, createdClient.Email)
	assert.NotEmpty(t, createdClient.PasswordHash)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, testLoc), createdBooking.BookingDate)

	bookings.AssertNumberOfCalls(t, "CreateClientWithBooking", 1)
	cache.AssertExpectations(t)
	announcer.AssertExpectations(t)
}

func TestBookingService_CreateFromDraft_RetriesOnceOnDuplicateEmail(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	var emails []string
	record := func(args mock.Arguments) {
		emails = append(emails, args.Get(1).(*model.Client).Email)
	}
	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.Anything).
		Run(record).Return(fmt.Errorf("create client: %w", model.ErrDuplicateEmail)).Once()
	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.Anything).
		Run(record).Return(nil).Once()

	_, err := svc.CreateFromDraft(context.Background(), vacuumDraft())
	require.NoError(t, err)

	require.Len(t, emails, 2)
	assert.NotEqual(t, emails[0], emails[1])
}

func TestBookingService_CreateFromDraft_GivesUpAfterSecondCollision(t *testing.T) {
	bookings := &MockBookingStore{}
	announcer := &MockAnnouncer{}
	svc := newTestBookingService(bookings, &MockClientStore{}, WithAnnouncer(announcer))

	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("create client: %w", model.ErrDuplicateEmail))

	_, err := svc.CreateFromDraft(context.Background(), vacuumDraft())
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
	bookings.AssertNumberOfCalls(t, "CreateClientWithBooking", 2)
	announcer.AssertNotCalled(t, "Announce", mock.Anything)
}

func TestBookingService_CreateFromDraft_NoRetryOnOtherErrors(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	_, err := svc.CreateFromDraft(context.Background(), vacuumDraft())
	assert.Error(t, err)
	bookings.AssertNumberOfCalls(t, "CreateClientWithBooking", 1)
}

func TestBookingService_CreateFromDraft_EmptyAddressStoredAsNull(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	bookings.On("CreateClientWithBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.Address == nil
	})).Return(nil).Once()

	draft := vacuumDraft()
	draft.ClientAddress = ""
	_, err := svc.CreateFromDraft(context.Background(), draft)
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}

func TestBookingService_Create_ClientMissing(t *testing.T) {
	bookings := &MockBookingStore{}
	clients := &MockClientStore{}
	svc := newTestBookingService(bookings, clients)

	clients.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	err := svc.Create(context.Background(), &model.Booking{ClientID: 99, ServiceName: "x"})
	assert.ErrorIs(t, err, model.ErrClientNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_Create_Announces(t *testing.T) {
	bookings := &MockBookingStore{}
	clients := &MockClientStore{}
	announcer := &MockAnnouncer{}
	svc := newTestBookingService(bookings, clients, WithAnnouncer(announcer))

	clients.On("GetByID", mock.Anything, int64(3)).
		Return(&model.Client{ID: 3, FirstName: "Anna", LastName: "Ivanova", PhoneNumber: "+375"}, nil)
	bookings.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Booking).ID = 11 }).
		Return(nil)
	announcer.On("Announce", mock.MatchedBy(func(e model.BookingEvent) bool {
		return e.Booking.ID == 11 && e.ClientName == "Anna Ivanova"
	})).Once()

	booking := &model.Booking{ClientID: 3, ServiceName: model.Catalog[2].Name, BookingDate: fixedNow()}
	require.NoError(t, svc.Create(context.Background(), booking))
	assert.Equal(t, int64(11), booking.ID)
	announcer.AssertExpectations(t)
}

func TestBookingService_Delete(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	bookings.On("Delete", mock.Anything, int64(42)).Return(int64(0), nil).Once()
	bookings.On("Delete", mock.Anything, int64(5)).Return(int64(1), nil).Once()

	assert.ErrorIs(t, svc.Delete(context.Background(), 42), model.ErrBookingNotFound)
	assert.NoError(t, svc.Delete(context.Background(), 5))
	bookings.AssertExpectations(t)
}

func TestBookingService_Update_UnknownClient(t *testing.T) {
	bookings := &MockBookingStore{}
	clients := &MockClientStore{}
	svc := newTestBookingService(bookings, clients)

	clientID := int64(8)
	clients.On("GetByID", mock.Anything, clientID).Return(nil, nil)

	_, err := svc.Update(context.Background(), 1, model.BookingUpdate{ClientID: &clientID})
	assert.ErrorIs(t, err, model.ErrClientNotFound)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Update_NotFound(t *testing.T) {
	bookings := &MockBookingStore{}
	cache := &MockCache{}
	svc := newTestBookingService(bookings, &MockClientStore{}, WithAvailabilityCache(cache))

	bookings.On("Update", mock.Anything, int64(1), mock.Anything).Return(nil, nil)

	_, err := svc.Update(context.Background(), 1, model.BookingUpdate{ServiceName: "x"})
	assert.ErrorIs(t, err, model.ErrBookingNotFound)
	cache.AssertNotCalled(t, "InvalidateAllAvailability", mock.Anything)
}

func TestBookingService_ListToday(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	from := time.Date(2025, 3, 5, 0, 0, 0, 0, testLoc)
	to := time.Date(2025, 3, 6, 0, 0, 0, 0, testLoc)
	bookings.On("ListBetween", mock.Anything, from, to).
		Return([]*model.BookingDetails{{Booking: model.Booking{ID: 1}}}, nil)

	day, list, err := svc.ListToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, from, day)
	assert.Len(t, list, 1)
}

func TestBookingService_AvailabilityByDate(t *testing.T) {
	bookings := &MockBookingStore{}
	cache := &MockCache{}
	svc := newTestBookingService(bookings, &MockClientStore{}, WithAvailabilityCache(cache))

	day := time.Date(2025, 3, 5, 0, 0, 0, 0, testLoc)
	cache.On("GetAvailability", mock.Anything, "2025-03-05").Return(nil, nil).Once()
	bookings.On("CountByServiceBetween", mock.Anything, day, day.AddDate(0, 0, 1)).
		Return(map[string]int64{
			model.Catalog[0].Name: 1,
			model.Catalog[1].Name: 1,
			"Другая услуга":        3,
		}, nil)
	cache.On("SetAvailability", mock.Anything, "2025-03-05", mock.Anything).Return(nil).Once()

	availability, err := svc.AvailabilityByDate(context.Background(), day)
	require.NoError(t, err)

	assert.Len(t, availability, 3)
	assert.Equal(t, model.Availability{Current: 1, Limit: 2, Available: true}, availability[model.Catalog[0].Name])
	assert.Equal(t, model.Availability{Current: 1, Limit: 1, Available: false}, availability[model.Catalog[1].Name])
	assert.Equal(t, model.Availability{Current: 0, Limit: 1, Available: true}, availability[model.Catalog[2].Name])
	cache.AssertExpectations(t)
}

func TestBookingService_AvailabilityByDate_CacheHit(t *testing.T) {
	bookings := &MockBookingStore{}
	cache := &MockCache{}
	svc := newTestBookingService(bookings, &MockClientStore{}, WithAvailabilityCache(cache))

	cached := map[string]model.Availability{model.Catalog[0].Name: {Current: 2, Limit: 2}}
	cache.On("GetAvailability", mock.Anything, "2025-03-05").Return(cached, nil)

	availability, err := svc.AvailabilityByDate(context.Background(), fixedNow())
	require.NoError(t, err)
	assert.Equal(t, cached, availability)
	bookings.AssertNotCalled(t, "CountByServiceBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CheckAvailability_UnknownServiceDefaultsToOne(t *testing.T) {
	bookings := &MockBookingStore{}
	svc := newTestBookingService(bookings, &MockClientStore{})

	bookings.On("CountByServiceBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]int64{"Что-то ещё": 1}, nil)

	availability, err := svc.CheckAvailability(context.Background(), "Что-то ещё", fixedNow())
	require.NoError(t, err)
	assert.Equal(t, model.Availability{Current: 1, Limit: 1, Available: false}, availability)
}

func TestBookingService_Stats(t *testing.T) {
	bookings := &MockBookingStore{}
	clients := &MockClientStore{}
	svc := newTestBookingService(bookings, clients)

	today := time.Date(2025, 3, 5, 0, 0, 0, 0, testLoc)
	month := time.Date(2025, 3, 1, 0, 0, 0, 0, testLoc)
	popular := []model.ServiceCount{{ServiceName: model.Catalog[0].Name, Count: 9}}

	bookings.On("CountBetween", mock.Anything, today, today.AddDate(0, 0, 1)).Return(int64(2), nil)
	bookings.On("CountBetween", mock.Anything, month, month.AddDate(0, 1, 0)).Return(int64(14), nil)
	bookings.On("PopularServices", mock.Anything, PopularServicesLimit).Return(popular, nil)
	clients.On("Count", mock.Anything).Return(int64(31), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Today)
	assert.Equal(t, int64(14), stats.ThisMonth)
	assert.Equal(t, int64(31), stats.TotalClients)
	assert.Equal(t, popular, stats.PopularServices)
}

func TestBookingService_Stats_Error(t *testing.T) {
	bookings := &MockBookingStore{}
	clients := &MockClientStore{}
	svc := newTestBookingService(bookings, clients)

	bookings.On("CountBetween", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	bookings.On("PopularServices", mock.Anything, mock.Anything).Return([]model.ServiceCount(nil), nil)
	clients.On("Count", mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}
