package tools

import (
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Descriptor describes a tool for API consumers (GET /api/tools).
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// catalog is the single source of truth for tool names and descriptions.
// Registration order here fixes the stable listing order everywhere else.
var catalog = []Descriptor{
	{
		Name: CurrentTimeName,
		Description: "Get the current time in a specified timezone. " +
			"Use this to answer any question about the current date or time.",
	},
	{
		Name: AddReminderName,
		Description: "Add a reminder for the user. " +
			"Takes the reminder text and an offset in days and hours from now.",
	},
	{
		Name: SearchCalendarName,
		Description: "Search for events in the user's calendar on a given date (YYYY-MM-DD), " +
			"optionally filtered by a query on the event title.",
	},
	{
		Name: CreateEventName,
		Description: "Create a new calendar event with a title, date (YYYY-MM-DD), " +
			"start time (HH:MM) and duration in minutes.",
	},
	{
		Name:        GetWeatherName,
		Description: "Get weather information for a city or location.",
	},
	{
		Name: SendEmailName,
		Description: "Send an email to a recipient with a subject and body. " +
			"The recipient must be a valid email address.",
	},
}

// Names returns all tool names in stable registration order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, d := range catalog {
		names[i] = d.Name
	}
	return names
}

// description looks up a catalog description by name.
// Panics on an unknown name: catalog and registration must stay in sync,
// and a mismatch is a bug caught at startup.
func description(name string) string {
	for _, d := range catalog {
		if d.Name == name {
			return d.Description
		}
	}
	panic(fmt.Sprintf("BUG: tool %q missing from catalog", name))
}

// Register defines all stub tools with Genkit so the agent can bind them
// for autonomous invocation. The returned slice follows catalog order.
func Register(g *genkit.Genkit, st *Stubs) ([]ai.Tool, error) {
	if g == nil {
		return nil, fmt.Errorf("genkit instance is required")
	}
	if st == nil {
		return nil, fmt.Errorf("stub handlers are required")
	}

	return []ai.Tool{
		genkit.DefineTool(g, CurrentTimeName, description(CurrentTimeName), st.CurrentTime),
		genkit.DefineTool(g, AddReminderName, description(AddReminderName), st.AddReminder),
		genkit.DefineTool(g, SearchCalendarName, description(SearchCalendarName), st.SearchCalendar),
		genkit.DefineTool(g, CreateEventName, description(CreateEventName), st.CreateEvent),
		genkit.DefineTool(g, GetWeatherName, description(GetWeatherName), st.GetWeather),
		genkit.DefineTool(g, SendEmailName, description(SendEmailName), st.SendEmail),
	}, nil
}
