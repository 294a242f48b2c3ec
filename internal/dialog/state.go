// Package dialog implements the conversation state machine: it receives
// transport-agnostic events, validates input, dispatches lookups and
// decides the next state plus the rendered reply.
package dialog

import (
	"time"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
)

// State is the conversation position. Exactly one state is active per
// conversation at any time.
type State int

const (
	// StateMainMenu is the initial state; every path returns here.
	StateMainMenu State = iota
	// StateAwaitingWeatherLocation waits for a city name.
	StateAwaitingWeatherLocation
	// StateAwaitingQuestion waits for a free-form climate question.
	StateAwaitingQuestion
	// StateAwaitingEventsLocation waits for an optional city name.
	StateAwaitingEventsLocation
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateAwaitingWeatherLocation:
		return "awaiting_weather_location"
	case StateAwaitingQuestion:
		return "awaiting_question"
	case StateAwaitingEventsLocation:
		return "awaiting_events_location"
	default:
		return "unknown"
	}
}

// EventKind discriminates incoming events.
type EventKind int

const (
	// EventStart resets the conversation and greets the user.
	EventStart EventKind = iota
	// EventCancel returns to the main menu with a farewell.
	EventCancel
	// EventMenu is a button press carrying a menu-action token.
	EventMenu
	// EventText is a free-form text message.
	EventText
)

// Event is one incoming conversation event.
type Event struct {
	Kind      EventKind
	Action    string
	Text      string
	FirstName string
}

// Context is the per-conversation mutable state. It is owned by exactly
// one conversation and never shared across them.
type Context struct {
	State       State
	LastLookup  time.Time
	LastWeather *lookup.WeatherReport
}
