package dialog

import (
	"context"
	"strings"
	"time"

	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/input"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/refdata"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"
	"log/slog"
)

const dialogComponent = "service.dialog"

// Controller drives the conversation state machine. It is stateless
// itself; all mutable state lives in the per-conversation Context the
// caller passes in.
type Controller struct {
	gateway     lookup.Gateway
	cooldown    time.Duration
	maxCity     int
	maxQuestion int

	now func() time.Time
}

// NewController builds a controller over the given lookup gateway.
func NewController(gw lookup.Gateway, cfg coreconfig.LookupConfig) *Controller {
	return &Controller{
		gateway:     gw,
		cooldown:    cfg.Cooldown(),
		maxCity:     cfg.MaxCityLength,
		maxQuestion: cfg.MaxQuestionLength,
		now:         time.Now,
	}
}

// Handle processes one event against the conversation context and
// returns the reply to send. The context is mutated in place; the
// caller must serialize events per conversation.
func (c *Controller) Handle(ctx context.Context, conv *Context, ev Event) render.Reply {
	from := conv.State

	var reply render.Reply
	switch ev.Kind {
	case EventStart:
		*conv = Context{State: StateMainMenu}
		reply = render.Welcome(ev.FirstName)
	case EventCancel:
		conv.State = StateMainMenu
		reply = render.Farewell()
	case EventMenu:
		reply = c.handleMenu(ctx, conv, ev.Action)
	case EventText:
		reply = c.handleText(ctx, conv, ev.Text)
	default:
		conv.State = StateMainMenu
		reply = render.MainMenu()
	}

	logger.Debug(ctx, dialogComponent, "event.handled",
		slog.String("state", from.String()),
		slog.String("next", conv.State.String()),
		slog.String("action", ev.Action),
	)
	return reply
}

func (c *Controller) handleMenu(ctx context.Context, conv *Context, action string) render.Reply {
	switch {
	case action == render.ActionBack:
		conv.State = StateMainMenu
		return render.MainMenu()

	case action == render.ActionWeather:
		conv.State = StateAwaitingWeatherLocation
		return render.PromptWeather()

	case action == render.ActionAsk:
		conv.State = StateAwaitingQuestion
		return render.PromptQuestion()

	case action == render.ActionEvents:
		conv.State = StateAwaitingEventsLocation
		return render.PromptEvents()

	case action == render.ActionTips:
		return c.contentLookup(ctx, conv, lookup.EcoTipsRequest(), render.EcoTips)

	case action == render.ActionWater:
		return c.contentLookup(ctx, conv, lookup.WaterTipsRequest(), render.WaterTips)

	case action == render.ActionDisaster:
		conv.State = StateMainMenu
		return render.DisasterMenu()

	case action == render.ActionLaws:
		conv.State = StateMainMenu
		return render.LawsMenu()

	case action == render.ActionAbout:
		conv.State = StateMainMenu
		return render.About()

	case action == render.ActionTomorrow:
		conv.State = StateMainMenu
		if conv.LastWeather == nil {
			conv.State = StateAwaitingWeatherLocation
			return render.PromptWeather()
		}
		return render.TomorrowCard(conv.LastWeather)

	case strings.HasPrefix(action, "prep_"):
		topic, ok := refdata.TopicByID(strings.TrimPrefix(action, "prep_"))
		if !ok {
			conv.State = StateMainMenu
			return render.DisasterMenu()
		}
		return c.contentLookup(ctx, conv, lookup.DisasterPrepRequest(topic.ID), func(text string) render.Reply {
			return render.DisasterGuide(topic, text)
		})

	default:
		if law, ok := refdata.LawByID(action); ok {
			conv.State = StateMainMenu
			return render.LawCard(law)
		}
		// Unknown action: re-render the menu rather than getting stuck.
		conv.State = StateMainMenu
		return render.MainMenu()
	}
}

func (c *Controller) handleText(ctx context.Context, conv *Context, text string) render.Reply {
	switch conv.State {
	case StateAwaitingWeatherLocation:
		return c.handleWeatherLocation(ctx, conv, text)
	case StateAwaitingQuestion:
		return c.handleQuestion(ctx, conv, text)
	case StateAwaitingEventsLocation:
		return c.handleEventsLocation(ctx, conv, text)
	default:
		return render.UnknownText()
	}
}

func (c *Controller) handleWeatherLocation(ctx context.Context, conv *Context, text string) render.Reply {
	city := input.Clean(text)
	if !input.ValidateCity(city, c.maxCity) {
		return render.InvalidCity(c.maxCity)
	}
	if c.cooldownHit(conv) {
		return render.CooldownNotice()
	}

	payload, err := c.gateway.Lookup(ctx, lookup.WeatherRequest(city))
	if err != nil {
		// Weather misses re-prompt in place so the user can try a
		// nearby city instead of starting over.
		if f, ok := lookup.AsFailure(err); ok {
			if f.Kind == lookup.FailEmpty {
				return render.WeatherNotFound(city)
			}
			return render.WeatherUnavailable(city)
		}
		return c.unexpected(ctx, conv, err)
	}

	conv.LastWeather = payload.Weather
	conv.State = StateMainMenu
	return render.WeatherCard(payload.Weather)
}

func (c *Controller) handleQuestion(ctx context.Context, conv *Context, text string) render.Reply {
	question := input.Clean(text)
	if !input.ValidateQuestion(question, c.maxQuestion) {
		return render.InvalidQuestion(c.maxQuestion)
	}
	if c.cooldownHit(conv) {
		return render.CooldownNotice()
	}

	payload, err := c.gateway.Lookup(ctx, lookup.QuestionRequest(question))
	if err != nil {
		return c.lookupFailed(ctx, conv, err)
	}

	conv.State = StateMainMenu
	return render.AIAnswer(payload.Text)
}

func (c *Controller) handleEventsLocation(ctx context.Context, conv *Context, text string) render.Reply {
	city := input.Clean(text)
	if city != "" && !input.ValidateCity(city, c.maxCity) {
		return render.InvalidCity(c.maxCity)
	}
	if c.cooldownHit(conv) {
		return render.CooldownNotice()
	}

	payload, err := c.gateway.Lookup(ctx, lookup.EventsRequest(city))
	if err != nil {
		return c.lookupFailed(ctx, conv, err)
	}

	conv.State = StateMainMenu
	return render.Events(payload.Text)
}

// contentLookup serves the self-loop menu renders (tips, water,
// preparedness guides): lookup plus render, always back to the menu.
func (c *Controller) contentLookup(ctx context.Context, conv *Context, req lookup.Request, wrap func(string) render.Reply) render.Reply {
	conv.State = StateMainMenu
	if c.cooldownHit(conv) {
		return render.CooldownNotice()
	}
	payload, err := c.gateway.Lookup(ctx, req)
	if err != nil {
		return c.lookupFailed(ctx, conv, err)
	}
	return wrap(payload.Text)
}

// lookupFailed renders an apology and returns control to the menu.
func (c *Controller) lookupFailed(ctx context.Context, conv *Context, err error) render.Reply {
	conv.State = StateMainMenu
	if f, ok := lookup.AsFailure(err); ok {
		return render.Apology(f.Kind)
	}
	return c.unexpected(ctx, conv, err)
}

func (c *Controller) unexpected(ctx context.Context, conv *Context, err error) render.Reply {
	conv.State = StateMainMenu
	logger.Error(ctx, dialogComponent, "event.unexpected_error",
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
	return render.Apology(lookup.FailUnexpected)
}

// cooldownHit enforces the per-conversation lookup cooldown: inside the
// window the event is accepted but its lookup is skipped.
func (c *Controller) cooldownHit(conv *Context) bool {
	now := c.now()
	if !conv.LastLookup.IsZero() && now.Sub(conv.LastLookup) < c.cooldown {
		return true
	}
	conv.LastLookup = now
	return false
}
