package services

import (
	"testing"
	"time"

	"parkops/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatsByEffectiveStatus(t *testing.T) {
	f := newFixture(t)
	trip := f.publishedTrip(t, "2025-01-10", "08:00", "LAG-101-XA", 14)
	bsvc := BookingService{Store: f.st}
	ssvc := StatsService{Store: f.st}

	confirmed := f.hold(t, trip.ID, "Amaka Obi", "08031112222")
	_, err := bsvc.ConfirmPayment(f.parkID, confirmed.ID)
	require.NoError(t, err)

	cancelled := f.hold(t, trip.ID, "Bola Ade", "08033334444")
	_, err = bsvc.UpdateStatus(f.parkID, cancelled.ID, models.BookingCancelled, nil)
	require.NoError(t, err)

	// This one will lapse; the stats must see it as expired without a sweep.
	f.hold(t, trip.ID, "Chidi Eze", "08035556666")
	f.advance(models.HoldTTL + time.Second)

	f.hold(t, trip.ID, "Dada Yusuf", "08037778888")

	got := ssvc.BookingStats(f.parkID)
	assert.Equal(t, 1, got.Reserved)
	assert.Equal(t, 1, got.Confirmed)
	assert.Equal(t, 1, got.Expired)
	assert.Equal(t, 1, got.Cancelled)
	assert.Equal(t, 0, got.Completed)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, int64(15000), got.TodayRevenue)
}

func TestBookingStatsRevenueIsTodayOnly(t *testing.T) {
	f := newFixture(t)
	trip := f.publishedTrip(t, "2025-01-10", "08:00", "LAG-101-XA", 14)
	bsvc := BookingService{Store: f.st}

	b := f.hold(t, trip.ID, "Amaka Obi", "08031112222")
	_, err := bsvc.ConfirmPayment(f.parkID, b.ID)
	require.NoError(t, err)

	got := StatsService{Store: f.st}.BookingStats(f.parkID)
	assert.Equal(t, int64(15000), got.TodayRevenue)

	// Tomorrow the sale no longer counts toward today's till.
	f.advance(24 * time.Hour)
	got = StatsService{Store: f.st}.BookingStats(f.parkID)
	assert.Equal(t, 1, got.Confirmed)
	assert.Equal(t, int64(0), got.TodayRevenue)
}

func TestLastModifiedAdvancesOnWrites(t *testing.T) {
	f := newFixture(t)
	ssvc := StatsService{Store: f.st}

	before := ssvc.LastModified()
	f.advance(time.Minute)
	f.publishedTrip(t, "2025-01-10", "08:00", "LAG-101-XA", 14)

	after := ssvc.LastModified()
	assert.True(t, after.After(before))

	// Reads leave the stamp alone.
	_ = TripService{Store: f.st}.List(f.parkID, "", "")
	assert.Equal(t, after, ssvc.LastModified())
}
