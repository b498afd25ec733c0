package services

import (
	"testing"
	"time"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecurringSeries(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	trips, err := svc.Create(f.parkID, TripInput{
		RouteID:         f.routeID,
		Date:            "2025-01-10",
		UnitTime:        "08:00",
		VehicleID:       "LAG-101-XA",
		IsRecurrent:     true,
		RecurrenceWeeks: 4,
	})
	require.NoError(t, err)
	require.Len(t, trips, 4)

	group := trips[0].RecurrenceGroupID
	require.NotEmpty(t, group)
	for i, tr := range trips {
		assert.Equal(t, group, tr.RecurrenceGroupID)
		want, _ := time.ParseInLocation("2006-01-02", "2025-01-10", time.Local)
		assert.Equal(t, want.AddDate(0, 0, 7*i).Format("2006-01-02"), tr.Date)
		assert.Equal(t, models.TripDraft, tr.Status)
		// Defaults pulled off the route.
		assert.Equal(t, 14, tr.SeatCount)
		assert.Equal(t, int64(15000), tr.Price)
	}
}

func TestCreateRecurringBounds(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	for _, weeks := range []int{0, 1, 53} {
		_, err := svc.Create(f.parkID, TripInput{
			RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00",
			VehicleID: "LAG-101-XA", IsRecurrent: true, RecurrenceWeeks: weeks,
		})
		require.Error(t, err, "weeks=%d", weeks)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestCreateRejectsVehicleDoubleBooking(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	first, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
	})
	require.NoError(t, err)

	// Same vehicle two hours later, inside the four-hour window.
	_, err = svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "10:00", VehicleID: "LAG-101-XA",
	})
	require.Error(t, err)
	ce, ok := domain.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, domain.ConflictVehicleBusy, ce.Tag)
	assert.Equal(t, first[0].ID, ce.ConflictTripID)

	// Outside the window the same vehicle is fine.
	_, err = svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "14:00", VehicleID: "LAG-101-XA",
	})
	require.NoError(t, err)
}

func TestRecurringCreateIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	// Occupy the vehicle on what would be occurrence 3.
	_, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-24", UnitTime: "08:00", VehicleID: "LAG-101-XA",
	})
	require.NoError(t, err)

	_, err = svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
		IsRecurrent: true, RecurrenceWeeks: 4,
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// None of the earlier occurrences leaked in.
	assert.Len(t, svc.List(f.parkID, "", ""), 1)
}

func TestUpdateApplyScopes(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	trips, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
		IsRecurrent: true, RecurrenceWeeks: 3,
	})
	require.NoError(t, err)
	require.Len(t, trips, 3)

	price := int64(18000)
	touched, err := svc.Update(f.parkID, trips[1].ID, models.TripUpdate{Price: &price}, ApplyFuture)
	require.NoError(t, err)
	assert.Len(t, touched, 2)

	all := svc.List(f.parkID, "", "")
	require.Len(t, all, 3)
	assert.Equal(t, int64(15000), all[0].Price)
	assert.Equal(t, int64(18000), all[1].Price)
	assert.Equal(t, int64(18000), all[2].Price)

	price = 20000
	touched, err = svc.Update(f.parkID, trips[1].ID, models.TripUpdate{Price: &price}, ApplySeries)
	require.NoError(t, err)
	assert.Len(t, touched, 3)
	for _, tr := range svc.List(f.parkID, "", "") {
		assert.Equal(t, int64(20000), tr.Price)
	}
}

func TestUpdateDateIsOccurrenceOnly(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	trips, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
		IsRecurrent: true, RecurrenceWeeks: 2,
	})
	require.NoError(t, err)

	date := "2025-01-11"
	_, err = svc.Update(f.parkID, trips[0].ID, models.TripUpdate{Date: &date}, ApplySeries)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	touched, err := svc.Update(f.parkID, trips[0].ID, models.TripUpdate{Date: &date}, ApplyOccurrence)
	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Equal(t, "2025-01-11", touched[0].Date)
}

func TestUpdateSeatCountRespectsActiveBookings(t *testing.T) {
	f := newFixture(t)
	trip := f.publishedTrip(t, "2025-01-10", "08:00", "LAG-101-XA", 14)

	f.hold(t, trip.ID, "Amaka Obi", "08031112222")
	f.hold(t, trip.ID, "Bola Ade", "08033334444")

	svc := TripService{Store: f.st}
	one := 1
	_, err := svc.Update(f.parkID, trip.ID, models.TripUpdate{SeatCount: &one}, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	two := 2
	_, err = svc.Update(f.parkID, trip.ID, models.TripUpdate{SeatCount: &two}, "")
	require.NoError(t, err)
}

func TestTripLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	trips, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
	})
	require.NoError(t, err)
	id := trips[0].ID

	// Cannot start a draft.
	_, err = svc.Start(f.parkID, id)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))

	tr, err := svc.Publish(f.parkID, id)
	require.NoError(t, err)
	assert.Equal(t, models.TripPublished, tr.Status)

	// Publishing twice is illegal.
	_, err = svc.Publish(f.parkID, id)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))

	tr, err = svc.Start(f.parkID, id)
	require.NoError(t, err)
	assert.Equal(t, models.TripLive, tr.Status)

	tr, err = svc.Complete(f.parkID, id)
	require.NoError(t, err)
	assert.Equal(t, models.TripCompleted, tr.Status)

	_, err = svc.Cancel(f.parkID, id)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))
}

func TestDeleteOnlyUnsoldDrafts(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}

	trips, err := svc.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-10", UnitTime: "08:00", VehicleID: "LAG-101-XA",
	})
	require.NoError(t, err)
	draft := trips[0].ID

	published := f.publishedTrip(t, "2025-01-11", "08:00", "LAG-202-XB", 14)
	err = svc.Delete(f.parkID, published.ID)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))

	// A draft that somehow carries confirmed seats is also protected.
	f.st.Update(func(d *store.Data) error {
		d.Trips[draft].ConfirmedBookingsCount = 1
		return nil
	})
	err = svc.Delete(f.parkID, draft)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))

	f.st.Update(func(d *store.Data) error {
		d.Trips[draft].ConfirmedBookingsCount = 0
		return nil
	})
	require.NoError(t, svc.Delete(f.parkID, draft))
	assert.Len(t, svc.List(f.parkID, "", ""), 1)
}

func TestCancelBlockedByConfirmedBookings(t *testing.T) {
	f := newFixture(t)
	trip := f.publishedTrip(t, "2025-01-10", "08:00", "LAG-101-XA", 14)
	bsvc := BookingService{Store: f.st}

	held := f.hold(t, trip.ID, "Amaka Obi", "08031112222")
	_, err := bsvc.ConfirmPayment(f.parkID, held.ID)
	require.NoError(t, err)

	svc := TripService{Store: f.st}
	_, err = svc.Cancel(f.parkID, trip.ID)
	require.Error(t, err)
	assert.True(t, domain.IsState(err))

	_, err = bsvc.UpdateStatus(f.parkID, held.ID, models.BookingCancelled, nil)
	require.NoError(t, err)

	tr, err := svc.Cancel(f.parkID, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripCancelled, tr.Status)
}

func TestDriverPhoneRevealWindow(t *testing.T) {
	f := newFixture(t)
	svc := TripService{Store: f.st}
	asvc := AssignmentService{Store: f.st}

	// Clock is 10:00. Departure 14:00 opened its window at 09:00; 16:00 has not.
	soon := f.publishedTrip(t, "2025-01-05", "14:00", "LAG-101-XA", 14)
	later := f.publishedTrip(t, "2025-01-05", "19:00", "LAG-202-XB", 14)

	d1 := f.driver(t, "Musa Bello", "08040001111", "DL-001")
	d2 := f.driver(t, "Tunde Ajayi", "08040002222", "DL-002")
	_, err := asvc.AssignDriver(f.parkID, soon.ID, d1.ID)
	require.NoError(t, err)
	_, err = asvc.AssignDriver(f.parkID, later.ID, d2.ID)
	require.NoError(t, err)

	board := svc.ListWithParkMetadata(f.parkID, "2025-01-05")
	require.Len(t, board, 2)

	assert.Equal(t, "Musa Bello", board[0].DriverName)
	assert.Equal(t, "08040001111", board[0].DriverPhone)

	assert.Equal(t, "Tunde Ajayi", board[1].DriverName)
	assert.Empty(t, board[1].DriverPhone)

	assert.Equal(t, "Jibowu Park", board[0].ParkName)
	assert.Equal(t, "Abuja", board[0].Destination)
}

func TestCreateRejectsPastDate(t *testing.T) {
	f := newFixture(t)
	_, err := TripService{Store: f.st}.Create(f.parkID, TripInput{
		RouteID: f.routeID, Date: "2025-01-04", UnitTime: "08:00", VehicleID: "LAG-101-XA",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}
