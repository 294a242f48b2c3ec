// Package bot wires the dialogue controller to the Telegram transport:
// commands, callback routing and free-text routing.
package bot

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	tg "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/commands"
	tghelpers "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/helpers"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/middleware"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/router"
	tgsender "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/sender"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/dialog"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/refdata"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"

	tele "gopkg.in/telebot.v4"
)

// Bot bridges conversation sessions and the Telegram surface.
type Bot struct {
	cfg      *coreconfig.Config
	sessions *dialog.Sessions
	started  time.Time

	dispatcher atomic.Pointer[tgsender.Dispatcher]
}

// New builds the bot wiring over an existing session store.
func New(cfg *coreconfig.Config, sessions *dialog.Sessions) *Bot {
	return &Bot{
		cfg:      cfg,
		sessions: sessions,
		started:  time.Now(),
	}
}

// SetDispatcher records the outbound dispatcher for /stats reporting.
func (b *Bot) SetDispatcher(d *tgsender.Dispatcher) {
	b.dispatcher.Store(d)
}

// conversationID keys conversations by the sending user.
func conversationID(c tele.Context) int64 {
	if user := c.Sender(); user != nil {
		return user.ID
	}
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

func (b *Bot) dispatch(c tele.Context, ev dialog.Event) error {
	ctx := tghelpers.BuildContext(c)
	reply := b.sessions.Dispatch(ctx, conversationID(c), ev)
	return sendReply(c, reply)
}

// lookupActions are the menu actions that trigger an external lookup
// and therefore show a typing indicator first.
func lookupAction(action string) bool {
	switch action {
	case render.ActionTips, render.ActionWater:
		return true
	}
	return strings.HasPrefix(action, "prep_")
}

func (b *Bot) menuHandler(action string) tele.HandlerFunc {
	return func(c tele.Context) error {
		if lookupAction(action) {
			tghelpers.Typing(c)
		}
		return b.dispatch(c, dialog.Event{Kind: dialog.EventMenu, Action: action})
	}
}

func (b *Bot) textHandler(c tele.Context) error {
	tghelpers.Typing(c)
	return b.dispatch(c, dialog.Event{Kind: dialog.EventText, Text: c.Text()})
}

func (b *Bot) startHandler(c tele.Context) error {
	firstName := ""
	if user := c.Sender(); user != nil {
		firstName = user.FirstName
	}
	return b.dispatch(c, dialog.Event{Kind: dialog.EventStart, FirstName: firstName})
}

func (b *Bot) cancelHandler(c tele.Context) error {
	return b.dispatch(c, dialog.Event{Kind: dialog.EventCancel})
}

func (b *Bot) statsHandler(c tele.Context) error {
	var sendErrors uint64
	if d := b.dispatcher.Load(); d != nil {
		sendErrors = d.ErrorCount()
	}
	text := fmt.Sprintf(
		"📊 *Bot stats*\n\n"+
			"Conversations: *%d*\n"+
			"Send errors: *%d*\n"+
			"Uptime: *%s*",
		b.sessions.Count(),
		sendErrors,
		time.Since(b.started).Round(time.Second),
	)
	return tghelpers.SendMD(c, text)
}

// menuActionKeys enumerates every callback key the bot serves.
func menuActionKeys() []string {
	keys := []string{
		render.ActionWeather,
		render.ActionAsk,
		render.ActionTips,
		render.ActionEvents,
		render.ActionWater,
		render.ActionDisaster,
		render.ActionLaws,
		render.ActionAbout,
		render.ActionBack,
		render.ActionTomorrow,
	}
	for _, t := range refdata.Topics() {
		keys = append(keys, "prep_"+t.ID)
	}
	for _, l := range refdata.Laws() {
		keys = append(keys, l.ID)
	}
	return keys
}

// BuildRegistry assembles commands and callbacks.
func (b *Bot) BuildRegistry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Description: "Start the bot and show the main menu",
		Handler:     b.startHandler,
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Description: "Return to the main menu",
		Handler:     b.cancelHandler,
	})
	reg.RegisterCommand("/stats", commands.Command{
		Description: "Show runtime statistics",
		Handler:     b.statsHandler,
		AdminOnly:   true,
		Hidden:      true,
	})

	for _, key := range menuActionKeys() {
		_ = reg.RegisterCallback(key, b.menuHandler(key))
	}

	reg.SetTextFallback(b.textHandler)

	return reg
}

// fsmAdapter exposes the session store to the text router.
type fsmAdapter struct {
	bot *Bot
}

func (a fsmAdapter) InProgress(userID int64) bool {
	return a.bot.sessions.InProgress(userID)
}

func (a fsmAdapter) ManagerHandler(c tele.Context) error {
	return a.bot.textHandler(c)
}

// Routes builds the full route table: commands, callbacks and text.
func (b *Bot) Routes(reg *tg.Registry) []tg.Route {
	routes := router.CommandRoutes(reg, middleware.AdminOptions{
		AdminID: b.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(fsmAdapter{bot: b}, reg, router.TextOptions{})...)
	return routes
}
