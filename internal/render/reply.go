// Package render maps lookup results and static reference data to
// user-facing replies. Pure: no I/O, deterministic output for a given
// input.
package render

// Action is one follow-up button. Key is the opaque menu-action token
// dispatched back to the dialogue controller when pressed.
type Action struct {
	Key   string
	Label string
}

// Reply is a rendered message: display text, parse mode and the
// follow-up actions laid out in rows.
type Reply struct {
	Text     string
	Markdown bool
	Actions  [][]Action
}

// Menu action tokens understood by the dialogue controller.
const (
	ActionWeather  = "weather"
	ActionAsk      = "ask"
	ActionTips     = "tips"
	ActionEvents   = "events"
	ActionWater    = "water"
	ActionDisaster = "disaster"
	ActionLaws     = "laws"
	ActionAbout    = "about"
	ActionBack     = "back"
	ActionTomorrow = "tomorrow"
)
