package services

import (
	"bytes"
	"fmt"
	"strings"

	"busbuddy/internal/domain"
	"busbuddy/internal/repositories"
	"busbuddy/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket PDF for a paid booking.
type DocsService struct {
	BookingRepo  repositories.BookingRepository
	PaymentRepo  repositories.PaymentRepository
	ScheduleRepo repositories.ScheduleRepository
	RouteRepo    repositories.RouteRepository
	BusRepo      repositories.BusRepository
	RequestID    string

	// Loader overrides data loading in tests.
	Loader func(bookingID int64) (ticketData, error)
}

type ticketData struct {
	BookingID     int64
	Reference     string
	BusName       string
	Registration  string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	RunsOn        string
	Seats         int
	SeatNumbers   string
	Amount        int64
	Paid          bool
}

func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	data, err := s.loadTicketData(bookingID)
	if err != nil {
		return nil, "", err
	}
	if !data.Paid {
		return nil, "", domain.ConflictError{Resource: "booking", Msg: "not paid yet"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketData(bookingID int64) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	var out ticketData
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return out, err
	}
	payment, err := s.PaymentRepo.GetByBookingID(bookingID)
	if err != nil {
		return out, err
	}

	out.BookingID = booking.ID
	out.Seats = booking.Seats
	out.SeatNumbers = strings.Join(booking.SeatNumbers, ", ")
	out.Amount = booking.Amount
	out.Paid = booking.Paid
	out.Reference = payment.Reference

	schedule, err := s.ScheduleRepo.GetByID(booking.ScheduleID)
	if err != nil {
		return out, err
	}
	out.DepartureTime = schedule.DepartureTime
	out.ArrivalTime = schedule.ArrivalTime
	if d, ok := schedule.Calendar.Date(); ok {
		out.RunsOn = utils.FormatDate(d)
	} else if days := schedule.Calendar.Days(); len(days) > 0 {
		out.RunsOn = strings.Join(days, ",")
	}

	if bus, err := s.BusRepo.GetByID(schedule.BusID); err == nil {
		out.BusName = bus.Name
		out.Registration = bus.RegistrationNumber
	}
	if schedule.RouteID != 0 {
		if route, err := s.RouteRepo.GetWithStops(schedule.RouteID); err == nil {
			out.Origin = route.Origin
			out.Destination = route.Destination
		}
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ref    : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Bus            : %s", safe(d.BusName, "-")),
		fmt.Sprintf("Registration   : %s", safe(d.Registration, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Departure      : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Arrival        : %s", safe(d.ArrivalTime, "-")),
		fmt.Sprintf("Runs on        : %s", safe(d.RunsOn, "-")),
		fmt.Sprintf("Seats          : %d", d.Seats),
		fmt.Sprintf("Seat numbers   : %s", safe(d.SeatNumbers, "unassigned")),
		fmt.Sprintf("Amount paid    : %s", utils.FormatAmount(d.Amount)),
		fmt.Sprintf("Booking code   : #%d", d.BookingID),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Reference))
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
