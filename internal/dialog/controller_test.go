package dialog

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"
)

type fakeGateway struct {
	mu      sync.Mutex
	calls   []lookup.Request
	handler func(lookup.Request) (lookup.Payload, error)
}

func (f *fakeGateway) Lookup(_ context.Context, req lookup.Request) (lookup.Payload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.handler != nil {
		return f.handler(req)
	}
	return lookup.Payload{Text: "stub answer"}, nil
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig() coreconfig.LookupConfig {
	return coreconfig.LookupConfig{
		CooldownSeconds:   5,
		MaxCityLength:     50,
		MaxQuestionLength: 200,
	}
}

func newTestController(gw lookup.Gateway) *Controller {
	return NewController(gw, testConfig())
}

func sampleWeatherPayload() lookup.Payload {
	return lookup.Payload{Weather: &lookup.WeatherReport{
		Location: "Cebu City, Philippines",
		Current:  lookup.CurrentConditions{Temp: 31.2, Humidity: 70, WeatherCode: 2, UV: 5},
		Daily: []lookup.DailyForecast{
			{Date: "2026-08-23", TempMax: 32, TempMin: 26},
			{Date: "2026-08-24", TempMax: 30, TempMin: 25},
		},
	}}
}

func TestWeatherSelectionAlwaysPrompts(t *testing.T) {
	c := newTestController(&fakeGateway{})
	contexts := []Context{
		{State: StateMainMenu},
		{State: StateMainMenu, LastWeather: sampleWeatherPayload().Weather, LastLookup: time.Now()},
	}
	for _, conv := range contexts {
		reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: render.ActionWeather})
		if conv.State != StateAwaitingWeatherLocation {
			t.Fatalf("expected AwaitingWeatherLocation, got %s", conv.State)
		}
		if !strings.Contains(reply.Text, "city") {
			t.Fatalf("expected city prompt, got %q", reply.Text)
		}
	}
}

func TestWeatherSuccessScenario(t *testing.T) {
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		if req.Capability != lookup.CapabilityWeather {
			t.Fatalf("unexpected capability %s", req.Capability)
		}
		if req.Query != "Cebu City" {
			t.Fatalf("unexpected query %q", req.Query)
		}
		return sampleWeatherPayload(), nil
	}}
	c := newTestController(gw)
	conv := Context{State: StateAwaitingWeatherLocation}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Cebu City"})
	if conv.State != StateMainMenu {
		t.Fatalf("expected MainMenu after success, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "31.2") || !strings.Contains(reply.Text, "70") {
		t.Fatalf("reply missing payload fields:\n%s", reply.Text)
	}
	if conv.LastWeather == nil {
		t.Fatal("successful lookup must be kept for follow-ups")
	}
}

func TestWeatherTimeoutRetriesInPlace(t *testing.T) {
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		return lookup.Payload{}, &lookup.Failure{Capability: req.Capability, Kind: lookup.FailTimeout}
	}}
	c := newTestController(gw)

	conv := Context{State: StateAwaitingWeatherLocation}
	c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Cebu City"})
	if conv.State != StateAwaitingWeatherLocation {
		t.Fatalf("weather timeout must keep state, got %s", conv.State)
	}

	conv = Context{State: StateAwaitingQuestion}
	c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Why?"})
	if conv.State != StateMainMenu {
		t.Fatalf("question timeout must return to MainMenu, got %s", conv.State)
	}
}

func TestWeatherEmptyResultReprompts(t *testing.T) {
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		return lookup.Payload{}, &lookup.Failure{Capability: req.Capability, Kind: lookup.FailEmpty}
	}}
	c := newTestController(gw)
	conv := Context{State: StateAwaitingWeatherLocation}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Atlantis"})
	if conv.State != StateAwaitingWeatherLocation {
		t.Fatalf("weather miss must keep state, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "Couldn't find") {
		t.Fatalf("expected not-found hint, got %q", reply.Text)
	}
}

func TestCityLengthValidation(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw)
	conv := Context{State: StateAwaitingWeatherLocation}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: strings.Repeat("a", 60)})
	if conv.State != StateAwaitingWeatherLocation {
		t.Fatalf("validation failure must keep state, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "max 50") {
		t.Fatalf("expected length-violation message, got %q", reply.Text)
	}
	if gw.callCount() != 0 {
		t.Fatal("invalid input must never reach the gateway")
	}
}

func TestQuestionValidation(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw)
	conv := Context{State: StateAwaitingQuestion}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "   "})
	if conv.State != StateAwaitingQuestion {
		t.Fatalf("validation failure must keep state, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "valid question") {
		t.Fatalf("expected question hint, got %q", reply.Text)
	}
	if gw.callCount() != 0 {
		t.Fatal("invalid input must never reach the gateway")
	}
}

func TestBackFromAnyState(t *testing.T) {
	c := newTestController(&fakeGateway{})
	states := []State{StateMainMenu, StateAwaitingWeatherLocation, StateAwaitingQuestion, StateAwaitingEventsLocation}
	for _, st := range states {
		conv := Context{State: st}
		reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: render.ActionBack})
		if conv.State != StateMainMenu {
			t.Fatalf("back from %s must land in MainMenu, got %s", st, conv.State)
		}
		if !strings.Contains(reply.Text, "Main Menu") {
			t.Fatalf("expected main-menu render, got %q", reply.Text)
		}
	}
}

func TestCooldownSkipsSecondLookup(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw)

	base := time.Now()
	c.now = func() time.Time { return base }

	conv := Context{State: StateAwaitingQuestion}
	c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "First question?"})
	if gw.callCount() != 1 {
		t.Fatalf("expected one lookup, got %d", gw.callCount())
	}

	// Second dispatch 2 seconds later, inside the 5 second cooldown.
	c.now = func() time.Time { return base.Add(2 * time.Second) }
	conv.State = StateAwaitingQuestion
	reply := c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Second question?"})
	if gw.callCount() != 1 {
		t.Fatalf("cooldown must skip the lookup, got %d calls", gw.callCount())
	}
	if !strings.Contains(reply.Text, "wait") {
		t.Fatalf("expected cooldown notice, got %q", reply.Text)
	}

	// After the window the lookup goes through again.
	c.now = func() time.Time { return base.Add(6 * time.Second) }
	conv.State = StateAwaitingQuestion
	c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: "Third question?"})
	if gw.callCount() != 2 {
		t.Fatalf("expected lookup after cooldown, got %d calls", gw.callCount())
	}
}

func TestTomorrowUsesCachedPayload(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw)
	conv := Context{State: StateMainMenu, LastWeather: sampleWeatherPayload().Weather}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: render.ActionTomorrow})
	if gw.callCount() != 0 {
		t.Fatal("tomorrow must render from the cached payload without a lookup")
	}
	if !strings.Contains(reply.Text, "2026-08-24") {
		t.Fatalf("expected tomorrow's forecast, got %q", reply.Text)
	}
	if conv.State != StateMainMenu {
		t.Fatalf("expected MainMenu, got %s", conv.State)
	}
}

func TestTomorrowWithoutCachedPayloadPrompts(t *testing.T) {
	c := newTestController(&fakeGateway{})
	conv := Context{State: StateMainMenu}

	c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: render.ActionTomorrow})
	if conv.State != StateAwaitingWeatherLocation {
		t.Fatalf("tomorrow without data must prompt for a city, got %s", conv.State)
	}
}

func TestEventsEmptyLocationGoesGlobal(t *testing.T) {
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		if req.Capability != lookup.CapabilityNews {
			t.Fatalf("unexpected capability %s", req.Capability)
		}
		if !strings.Contains(req.Query, "worldwide") {
			t.Fatalf("empty location must request global events, got %q", req.Query)
		}
		return lookup.Payload{Text: "3 events"}, nil
	}}
	c := newTestController(gw)
	conv := Context{State: StateAwaitingEventsLocation}

	c.Handle(context.Background(), &conv, Event{Kind: EventText, Text: ""})
	if conv.State != StateMainMenu {
		t.Fatalf("expected MainMenu after events, got %s", conv.State)
	}
}

func TestStartResetsContext(t *testing.T) {
	c := newTestController(&fakeGateway{})
	conv := Context{
		State:       StateAwaitingQuestion,
		LastWeather: sampleWeatherPayload().Weather,
		LastLookup:  time.Now(),
	}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventStart, FirstName: "Ana"})
	if conv.State != StateMainMenu {
		t.Fatalf("start must reset state, got %s", conv.State)
	}
	if conv.LastWeather != nil || !conv.LastLookup.IsZero() {
		t.Fatal("start must clear the conversation context")
	}
	if !strings.Contains(reply.Text, "Ana") {
		t.Fatalf("welcome must greet the user, got %q", reply.Text)
	}
}

func TestUnknownMenuActionRerendersMenu(t *testing.T) {
	c := newTestController(&fakeGateway{})
	conv := Context{State: StateMainMenu}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: "bogus"})
	if conv.State != StateMainMenu {
		t.Fatalf("unknown action must stay in MainMenu, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "Main Menu") {
		t.Fatalf("expected menu re-render, got %q", reply.Text)
	}
}

func TestLawCardIsStatic(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestController(gw)
	conv := Context{State: StateMainMenu}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: "law_air"})
	if gw.callCount() != 0 {
		t.Fatal("law cards are static and must not hit the gateway")
	}
	if !strings.Contains(reply.Text, "RA 8749") {
		t.Fatalf("expected clean air act card, got %q", reply.Text)
	}
}

func TestDisasterPrepLookup(t *testing.T) {
	gw := &fakeGateway{handler: func(req lookup.Request) (lookup.Payload, error) {
		if !strings.Contains(req.Query, "typhoon") {
			t.Fatalf("expected typhoon prompt, got %q", req.Query)
		}
		return lookup.Payload{Text: "1. Prepare a go bag"}, nil
	}}
	c := newTestController(gw)
	conv := Context{State: StateMainMenu}

	reply := c.Handle(context.Background(), &conv, Event{Kind: EventMenu, Action: "prep_typhoon"})
	if conv.State != StateMainMenu {
		t.Fatalf("prep guide is a self-loop on MainMenu, got %s", conv.State)
	}
	if !strings.Contains(reply.Text, "Typhoons Preparedness") {
		t.Fatalf("expected guide header, got %q", reply.Text)
	}
}
