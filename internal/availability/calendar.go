package availability

import (
	"time"

	"rezkit/pkg/model"
)

// Day truncates t to midnight UTC. All calendar arithmetic in the
// engine happens at day precision in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Past reports whether day lies before today. Today itself is not past,
// same-day arrivals are allowed.
func Past(day, today time.Time) bool {
	return Day(day).Before(Day(today))
}

// Booked reports whether day falls inside any of the given ranges.
// Ranges are half-open, the end day itself is free again.
func Booked(day time.Time, booked []model.DateRange) bool {
	d := Day(day)
	for _, r := range booked {
		if !d.Before(Day(r.Start)) && d.Before(Day(r.End)) {
			return true
		}
	}
	return false
}

// SelectableCheckIn reports whether day can open a new stay.
func SelectableCheckIn(day, today time.Time, booked []model.DateRange) bool {
	return !Past(day, today) && !Booked(day, booked)
}

// SelectableCheckOut reports whether day can close a stay starting at
// checkIn. The day must lie strictly after checkIn, and no booked range
// may start strictly between the two. A range starting exactly on day
// is fine: the guest departs that morning, before the next arrival.
func SelectableCheckOut(day, checkIn time.Time, booked []model.DateRange) bool {
	d := Day(day)
	in := Day(checkIn)
	if !d.After(in) {
		return false
	}
	for _, r := range booked {
		start := Day(r.Start)
		if start.After(in) && start.Before(d) {
			return false
		}
	}
	return true
}

// Selection is the dates a visitor has picked so far.
type Selection struct {
	CheckIn  *time.Time
	CheckOut *time.Time
}

// DayState is the render state of one calendar cell.
type DayState struct {
	Date               string `json:"date"`
	Past               bool   `json:"past"`
	Booked             bool   `json:"booked"`
	SelectableCheckIn  bool   `json:"selectable_check_in"`
	SelectableCheckOut bool   `json:"selectable_check_out"`
	CheckIn            bool   `json:"check_in"`
	CheckOut           bool   `json:"check_out"`
	InStay             bool   `json:"in_stay"`
}

// Grid builds the render state for every day in the inclusive span
// [from, to]. SelectableCheckOut is only computed once a check-in
// exists; before that the column stays false.
func Grid(from, to, today time.Time, sel Selection, booked []model.DateRange) []DayState {
	start := Day(from)
	end := Day(to)

	var days []DayState
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		state := DayState{
			Date:              d.Format(model.DayLayout),
			Past:              Past(d, today),
			Booked:            Booked(d, booked),
			SelectableCheckIn: SelectableCheckIn(d, today, booked),
		}

		if sel.CheckIn != nil {
			in := Day(*sel.CheckIn)
			state.CheckIn = d.Equal(in)
			state.SelectableCheckOut = SelectableCheckOut(d, in, booked)

			if sel.CheckOut != nil {
				out := Day(*sel.CheckOut)
				state.CheckOut = d.Equal(out)
				state.InStay = d.After(in) && d.Before(out)
			}
		}

		days = append(days, state)
	}
	return days
}
