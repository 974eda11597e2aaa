package tools

import (
	"strings"
	"testing"
	"time"

	"github.com/concierge-ai/concierge/internal/log"
)

// newTestStubs returns stub handlers with a pinned clock.
func newTestStubs(t *testing.T) *Stubs {
	t.Helper()
	st, err := NewStubs(log.NewNop())
	if err != nil {
		t.Fatalf("NewStubs() error = %v", err)
	}
	st.now = func() time.Time {
		return time.Date(2026, 8, 26, 10, 30, 0, 0, time.UTC)
	}
	return st
}

func TestNewStubs_RequiresLogger(t *testing.T) {
	if _, err := NewStubs(nil); err == nil {
		t.Fatal("NewStubs(nil) error = nil, want error")
	}
}

func TestCurrentTime(t *testing.T) {
	st := newTestStubs(t)

	tests := []struct {
		name  string
		input CurrentTimeInput
		want  string
	}{
		{"explicit timezone", CurrentTimeInput{Timezone: "EST"}, "Current time: 2026-08-26 10:30:00 EST"},
		{"default timezone", CurrentTimeInput{}, "Current time: 2026-08-26 10:30:00 UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.CurrentTime(nil, tt.input)
			if err != nil {
				t.Fatalf("CurrentTime() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CurrentTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddReminder(t *testing.T) {
	st := newTestStubs(t)

	tests := []struct {
		name  string
		input AddReminderInput
		want  string
	}{
		{
			"days and hours offset",
			AddReminderInput{ReminderText: "buy milk", DaysFromNow: 1, HoursFromNow: 2},
			"Reminder set: 'buy milk' scheduled for 2026-08-27 12:30:00",
		},
		{
			"immediate",
			AddReminderInput{ReminderText: "stretch"},
			"Reminder set: 'stretch' scheduled for 2026-08-26 10:30:00",
		},
		{
			"empty text becomes error string",
			AddReminderInput{ReminderText: "  "},
			"Error: could not set reminder",
		},
		{
			"negative offset becomes error string",
			AddReminderInput{ReminderText: "x", DaysFromNow: -1},
			"Error: could not set reminder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.AddReminder(nil, tt.input)
			if err != nil {
				t.Fatalf("AddReminder() error = %v, tool failures must be string results", err)
			}
			if got != tt.want {
				t.Errorf("AddReminder() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchCalendar(t *testing.T) {
	st := newTestStubs(t)

	got, err := st.SearchCalendar(nil, SearchCalendarInput{Date: "2026-09-01"})
	if err != nil {
		t.Fatalf("SearchCalendar() error = %v", err)
	}
	want := "Calendar search for 2026-09-01: No events found (database not connected)"
	if got != want {
		t.Errorf("SearchCalendar() = %q, want %q", got, want)
	}

	got, err = st.SearchCalendar(nil, SearchCalendarInput{Date: "tomorrow"})
	if err != nil {
		t.Fatalf("SearchCalendar() error = %v", err)
	}
	if got != "Error: could not search calendar" {
		t.Errorf("SearchCalendar() with bad date = %q, want error string", got)
	}
}

func TestCreateEvent(t *testing.T) {
	st := newTestStubs(t)

	tests := []struct {
		name  string
		input CreateEventInput
		want  string
	}{
		{
			"explicit duration",
			CreateEventInput{Title: "standup", Date: "2026-09-01", Time: "09:00", DurationMinutes: 15},
			"Event created: 'standup' on 2026-09-01 at 09:00 for 15 minutes",
		},
		{
			"default duration",
			CreateEventInput{Title: "review", Date: "2026-09-01", Time: "14:30"},
			"Event created: 'review' on 2026-09-01 at 14:30 for 60 minutes",
		},
		{
			"missing title",
			CreateEventInput{Date: "2026-09-01", Time: "09:00"},
			"Error: could not create event",
		},
		{
			"bad date",
			CreateEventInput{Title: "x", Date: "Sept 1", Time: "09:00"},
			"Error: could not create event",
		},
		{
			"bad time",
			CreateEventInput{Title: "x", Date: "2026-09-01", Time: "9am"},
			"Error: could not create event",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.CreateEvent(nil, tt.input)
			if err != nil {
				t.Fatalf("CreateEvent() error = %v, tool failures must be string results", err)
			}
			if got != tt.want {
				t.Errorf("CreateEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetWeather(t *testing.T) {
	st := newTestStubs(t)

	got, err := st.GetWeather(nil, GetWeatherInput{Location: "Berlin"})
	if err != nil {
		t.Fatalf("GetWeather() error = %v", err)
	}
	want := "Weather for Berlin: Unable to fetch (API not connected)"
	if got != want {
		t.Errorf("GetWeather() = %q, want %q", got, want)
	}

	got, _ = st.GetWeather(nil, GetWeatherInput{})
	if !strings.HasPrefix(got, "Error: could not fetch weather") {
		t.Errorf("GetWeather() with empty location = %q, want error string", got)
	}
}

func TestSendEmail(t *testing.T) {
	st := newTestStubs(t)

	got, err := st.SendEmail(nil, SendEmailInput{
		Recipient: "ada@example.com",
		Subject:   "Hello",
		Body:      "Hi there",
	})
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	want := "Email sent to ada@example.com with subject 'Hello'"
	if got != want {
		t.Errorf("SendEmail() = %q, want %q", got, want)
	}

	got, _ = st.SendEmail(nil, SendEmailInput{Recipient: "not-an-address"})
	if got != "Error: could not send email" {
		t.Errorf("SendEmail() with bad recipient = %q, want error string", got)
	}
}
