package services

import (
	"time"

	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"
)

// StatsService is the read-only projection layer consumed by dashboards.
// It reflects the store invariants; it never enforces them.
type StatsService struct {
	Store *store.Store
}

// BookingStats aggregates a park's bookings by effective status.
type BookingStats struct {
	Reserved     int   `json:"reserved"`
	Confirmed    int   `json:"confirmed"`
	Expired      int   `json:"expired"`
	Cancelled    int   `json:"cancelled"`
	Completed    int   `json:"completed"`
	Total        int   `json:"total"`
	TodayRevenue int64 `json:"todayRevenue"`
}

// BookingStats counts the park's bookings per effective status and sums
// today's paid revenue.
func (s StatsService) BookingStats(parkID string) BookingStats {
	var out BookingStats
	s.Store.View(func(d *store.Data) {
		now := s.Store.Now()
		dayStart := utils.StartOfDay(now)
		dayEnd := utils.EndOfDay(now)
		for _, b := range d.Bookings {
			trip, ok := d.Trips[b.TripID]
			if !ok || trip.ParkID != parkID {
				continue
			}
			out.Total++
			status := b.EffectiveStatus(now)
			switch status {
			case models.BookingReserved:
				out.Reserved++
			case models.BookingConfirmed:
				out.Confirmed++
			case models.BookingExpired:
				out.Expired++
			case models.BookingCancelled:
				out.Cancelled++
			case models.BookingCompleted:
				out.Completed++
			}
			paid := status == models.BookingConfirmed || status == models.BookingCompleted
			if paid && !b.CreatedAt.Before(dayStart) && !b.CreatedAt.After(dayEnd) {
				out.TodayRevenue += b.AmountPaid
			}
		}
	})
	return out
}

// LastModified lets polling clients skip unchanged reloads.
func (s StatsService) LastModified() time.Time {
	return s.Store.LastModified()
}
