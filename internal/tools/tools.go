// Package tools provides the assistant's tool catalog: registration with
// Genkit and lookup for the agent and the HTTP tool listing.
//
// Every tool is a stateless stub. It formats a human-readable string and
// persists nothing — each one is a stand-in for a real integration
// (calendar store, email transport, weather API). Internal failures are
// converted into explanatory string results rather than errors, so a bad
// tool run is fed back into the model's context instead of failing the
// request.
package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"

	"github.com/concierge-ai/concierge/internal/log"
)

// Tool name constants. These are the identifiers offered to the model and
// reported back in chat responses; they never change at runtime.
const (
	CurrentTimeName    = "get_current_time"
	AddReminderName    = "add_reminder"
	SearchCalendarName = "search_calendar"
	CreateEventName    = "create_event"
	GetWeatherName     = "get_weather"
	SendEmailName      = "send_email"
)

// timeLayout is the timestamp format used in tool replies.
const timeLayout = "2006-01-02 15:04:05"

// CurrentTimeInput defines input for the get_current_time tool.
type CurrentTimeInput struct {
	Timezone string `json:"timezone,omitempty" jsonschema_description:"Timezone string (e.g., 'UTC', 'EST', 'PST')"`
}

// AddReminderInput defines input for the add_reminder tool.
type AddReminderInput struct {
	ReminderText string `json:"reminder_text" jsonschema_description:"What to remind about"`
	DaysFromNow  int    `json:"days_from_now,omitempty" jsonschema_description:"Number of days from now"`
	HoursFromNow int    `json:"hours_from_now,omitempty" jsonschema_description:"Number of hours from now"`
}

// SearchCalendarInput defines input for the search_calendar tool.
type SearchCalendarInput struct {
	Date  string `json:"date" jsonschema_description:"Date to search (YYYY-MM-DD format)"`
	Query string `json:"query,omitempty" jsonschema_description:"Optional search query for event title"`
}

// CreateEventInput defines input for the create_event tool.
type CreateEventInput struct {
	Title           string `json:"title" jsonschema_description:"Event title"`
	Date            string `json:"date" jsonschema_description:"Event date (YYYY-MM-DD format)"`
	Time            string `json:"time" jsonschema_description:"Event time (HH:MM format)"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema_description:"Duration in minutes (default 60)"`
}

// GetWeatherInput defines input for the get_weather tool.
type GetWeatherInput struct {
	Location string `json:"location" jsonschema_description:"City or location name"`
}

// SendEmailInput defines input for the send_email tool.
type SendEmailInput struct {
	Recipient string `json:"recipient" jsonschema_description:"Email address to send to"`
	Subject   string `json:"subject" jsonschema_description:"Email subject"`
	Body      string `json:"body" jsonschema_description:"Email body"`
}

// Stubs holds the stub tool handlers and their dependencies.
// The clock is injected so tests can pin time-dependent replies.
type Stubs struct {
	logger log.Logger
	now    func() time.Time
}

// NewStubs creates the stub handler set.
func NewStubs(logger log.Logger) (*Stubs, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Stubs{logger: logger, now: time.Now}, nil
}

// CurrentTime reports the current time in the requested timezone label.
// The label is echoed, not resolved — the stub always reads the server clock.
func (s *Stubs) CurrentTime(_ *ai.ToolContext, input CurrentTimeInput) (string, error) {
	tz := input.Timezone
	if tz == "" {
		tz = "UTC"
	}
	s.logger.Info("tool called", "tool", CurrentTimeName, "timezone", tz)
	return fmt.Sprintf("Current time: %s %s", s.now().Format(timeLayout), tz), nil
}

// AddReminder confirms a reminder at now + offset. Nothing is stored.
func (s *Stubs) AddReminder(_ *ai.ToolContext, input AddReminderInput) (string, error) {
	s.logger.Info("tool called", "tool", AddReminderName,
		"days_from_now", input.DaysFromNow, "hours_from_now", input.HoursFromNow)

	if strings.TrimSpace(input.ReminderText) == "" || input.DaysFromNow < 0 || input.HoursFromNow < 0 {
		s.logger.Warn("invalid reminder input", "tool", AddReminderName)
		return "Error: could not set reminder", nil
	}

	when := s.now().
		AddDate(0, 0, input.DaysFromNow).
		Add(time.Duration(input.HoursFromNow) * time.Hour)

	return fmt.Sprintf("Reminder set: '%s' scheduled for %s",
		input.ReminderText, when.Format(timeLayout)), nil
}

// SearchCalendar reports that no events exist for the date.
func (s *Stubs) SearchCalendar(_ *ai.ToolContext, input SearchCalendarInput) (string, error) {
	s.logger.Info("tool called", "tool", SearchCalendarName, "date", input.Date)

	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		s.logger.Warn("invalid calendar date", "tool", SearchCalendarName, "date", input.Date)
		return "Error: could not search calendar", nil
	}

	return fmt.Sprintf("Calendar search for %s: No events found (database not connected)", input.Date), nil
}

// CreateEvent confirms event details. Nothing is stored.
func (s *Stubs) CreateEvent(_ *ai.ToolContext, input CreateEventInput) (string, error) {
	s.logger.Info("tool called", "tool", CreateEventName, "title", input.Title, "date", input.Date)

	if strings.TrimSpace(input.Title) == "" {
		s.logger.Warn("invalid event input", "tool", CreateEventName)
		return "Error: could not create event", nil
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		s.logger.Warn("invalid event date", "tool", CreateEventName, "date", input.Date)
		return "Error: could not create event", nil
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		s.logger.Warn("invalid event time", "tool", CreateEventName, "time", input.Time)
		return "Error: could not create event", nil
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	return fmt.Sprintf("Event created: '%s' on %s at %s for %d minutes",
		input.Title, input.Date, input.Time, duration), nil
}

// GetWeather reports that the weather backend is not connected.
func (s *Stubs) GetWeather(_ *ai.ToolContext, input GetWeatherInput) (string, error) {
	s.logger.Info("tool called", "tool", GetWeatherName, "location", input.Location)

	if strings.TrimSpace(input.Location) == "" {
		s.logger.Warn("missing weather location", "tool", GetWeatherName)
		return fmt.Sprintf("Error: could not fetch weather for %s", input.Location), nil
	}

	return fmt.Sprintf("Weather for %s: Unable to fetch (API not connected)", input.Location), nil
}

// SendEmail confirms the email without sending anything.
func (s *Stubs) SendEmail(_ *ai.ToolContext, input SendEmailInput) (string, error) {
	s.logger.Info("tool called", "tool", SendEmailName, "recipient", input.Recipient, "subject", input.Subject)

	if !strings.Contains(input.Recipient, "@") {
		s.logger.Warn("invalid email recipient", "tool", SendEmailName, "recipient", input.Recipient)
		return "Error: could not send email", nil
	}

	return fmt.Sprintf("Email sent to %s with subject '%s'", input.Recipient, input.Subject), nil
}
