package booking

// Wire payloads for the automation webhooks. Field names and formats are
// fixed by the n8n flows on the other side; do not rename.

// bookPayload creates an appointment. Date carries the chosen slot start
// as a clinic-local "YYYY-MM-DD HH:MM" string.
type bookPayload struct {
	BookingID string `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	Service   string `json:"service"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	Duration  int    `json:"duration"`
	Note      string `json:"note"`
}

type cancelPayload struct {
	Action    string `json:"action"`
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Service   string `json:"service"`
}

// reschedulePayload moves an appointment. StartTime/EndTime are absolute
// UTC instants ("...Z") so the calendar consumes them unambiguously;
// everything else stays clinic-local.
type reschedulePayload struct {
	Action    string `json:"action"`
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Age       string `json:"age"`
	OldDate   string `json:"old_date"`
	OldTime   string `json:"old_time"`
	NewDate   string `json:"new_date"`
	NewTime   string `json:"new_time"`
	OldDoctor string `json:"old_doctor"`
	Doctor    string `json:"doctor"`
	Duration  int    `json:"duration"`
	Service   string `json:"service"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
