package host

import (
	"time"

	"tavrika-widget/internal/floorplan"
	"tavrika-widget/internal/parse"
)

// ActionCreateReservation tags reservation payloads.
const ActionCreateReservation = "create_reservation"

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Payload is what the host receives for a finished reservation.
type Payload struct {
	Action      string `json:"action"`
	TableID     string `json:"tableId"`
	TableNumber int    `json:"tableNumber"`
	Guests      int    `json:"guests"`
	Time        string `json:"time"`
	Date        string `json:"date"`
	UserID      *int64 `json:"userId,omitempty"`
	UserName    string `json:"userName,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// NewPayload builds the reservation payload stamped with now.
func NewPayload(table floorplan.Table, guests int, date time.Time, at parse.Clock, user *User, now time.Time) Payload {
	p := Payload{
		Action:      ActionCreateReservation,
		TableID:     table.ID,
		TableNumber: table.Number,
		Guests:      guests,
		Time:        at.String(),
		Date:        parse.FormatDate(date),
		UserName:    user.DisplayName(),
		Timestamp:   now.UTC().Format(timestampLayout),
	}
	if user != nil {
		id := user.ID
		p.UserID = &id
	}
	return p
}
