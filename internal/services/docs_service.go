package services

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"parkops/internal/domain"
	"parkops/internal/domain/models"
	"parkops/internal/store"
	"parkops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable PDFs: the boarding manifest handed to the
// driver and per-passenger e-tickets.
type DocsService struct {
	Store     *store.Store
	RequestID string
}

type manifestRow struct {
	Seat      int
	Name      string
	Phone     string
	CheckedIn bool
}

type manifestData struct {
	TripID      string
	ParkName    string
	Destination string
	Date        string
	UnitTime    string
	VehicleID   string
	DriverName  string
	Rows        []manifestRow
}

type ticketData struct {
	BookingID   string
	ParkName    string
	Destination string
	Date        string
	UnitTime    string
	Seat        int
	Name        string
	Phone       string
	Amount      int64
}

// GenerateManifest renders the confirmed-passenger manifest for a trip.
func (s DocsService) GenerateManifest(parkID, tripID string) ([]byte, string, error) {
	var data manifestData
	var opErr error
	s.Store.View(func(d *store.Data) {
		trip, ok := d.Trips[tripID]
		if !ok || trip.ParkID != parkID {
			opErr = domain.NotFoundError{Resource: "trip"}
			return
		}
		data.TripID = trip.ID
		data.Date = trip.Date
		data.UnitTime = trip.UnitTime
		data.VehicleID = trip.VehicleID
		if p, ok := d.Parks[trip.ParkID]; ok {
			data.ParkName = p.Name
		}
		if r, ok := d.Routes[trip.RouteID]; ok {
			data.Destination = r.Destination
		}
		if dr, ok := d.Drivers[trip.DriverID]; ok {
			data.DriverName = dr.Name
		}
		now := s.Store.Now()
		for _, b := range d.Bookings {
			if b.TripID != tripID || b.EffectiveStatus(now) != models.BookingConfirmed {
				continue
			}
			data.Rows = append(data.Rows, manifestRow{
				Seat:      b.SeatNumber,
				Name:      b.PassengerName,
				Phone:     b.PassengerPhone,
				CheckedIn: b.CheckedIn,
			})
		}
	})
	if opErr != nil {
		return nil, "", opErr
	}
	sort.Slice(data.Rows, func(i, j int) bool { return data.Rows[i].Seat < data.Rows[j].Seat })
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", "trip_id="+tripID)
	return buildManifestPDF(data)
}

// GenerateTicket renders one booking's e-ticket.
func (s DocsService) GenerateTicket(parkID, bookingID string) ([]byte, string, error) {
	var data ticketData
	var opErr error
	s.Store.View(func(d *store.Data) {
		b, ok := d.Bookings[bookingID]
		if !ok {
			opErr = domain.NotFoundError{Resource: "booking"}
			return
		}
		trip, ok := d.Trips[b.TripID]
		if !ok || trip.ParkID != parkID {
			opErr = domain.NotFoundError{Resource: "booking"}
			return
		}
		data = ticketData{
			BookingID: b.ID,
			Date:      trip.Date,
			UnitTime:  trip.UnitTime,
			Seat:      b.SeatNumber,
			Name:      b.PassengerName,
			Phone:     b.PassengerPhone,
			Amount:    b.AmountPaid,
		}
		if p, ok := d.Parks[trip.ParkID]; ok {
			data.ParkName = p.Name
		}
		if r, ok := d.Routes[trip.RouteID]; ok {
			data.Destination = r.Destination
		}
	})
	if opErr != nil {
		return nil, "", opErr
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", "booking_id="+bookingID)
	return buildTicketPDF(data)
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Passenger Manifest", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Park        : %s", safe(d.ParkName, "-")),
		fmt.Sprintf("Destination : %s", safe(d.Destination, "-")),
		fmt.Sprintf("Date/Time   : %s %s", safe(d.Date, "-"), safe(d.UnitTime, "-")),
		fmt.Sprintf("Vehicle     : %s", safe(d.VehicleID, "-")),
		fmt.Sprintf("Driver      : %s", safe(d.DriverName, "unassigned")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 8, "Seat", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 8, "Passenger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Phone", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Boarded", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range d.Rows {
		boarded := ""
		if row.CheckedIn {
			boarded = "YES"
		}
		pdf.CellFormat(15, 8, fmt.Sprintf("%d", row.Seat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 8, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, row.Phone, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, boarded, "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%s_%s.pdf", safeFilenamePart(d.Destination), safeFilenamePart(d.Date))
	return buf.Bytes(), filename, nil
}

func buildTicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", safe(d.Name, "-")),
		fmt.Sprintf("Phone       : %s", safe(d.Phone, "-")),
		fmt.Sprintf("Park        : %s", safe(d.ParkName, "-")),
		fmt.Sprintf("Destination : %s", safe(d.Destination, "-")),
		fmt.Sprintf("Date/Time   : %s %s", safe(d.Date, "-"), safe(d.UnitTime, "-")),
		fmt.Sprintf("Seat        : %d", d.Seat),
		fmt.Sprintf("Amount      : %s", utils.FormatNaira(d.Amount)),
		fmt.Sprintf("Ticket No   : %s", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket covers 1 passenger (1 seat). Present it at the loading bay before departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(d.Name+"_"+d.Date))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
