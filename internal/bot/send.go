package bot

import (
	tghelpers "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/helpers"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/keyboard"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/render"

	tele "gopkg.in/telebot.v4"
)

// markupFor converts rendered action rows to an inline keyboard.
func markupFor(reply render.Reply) *tele.ReplyMarkup {
	if len(reply.Actions) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(reply.Actions))
	for _, row := range reply.Actions {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, a := range row {
			btns = append(btns, keyboard.InlineBtn{Text: a.Label, Unique: a.Key})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// sendReply sends a rendered reply through the async sender helpers.
func sendReply(c tele.Context, reply render.Reply) error {
	markup := markupFor(reply)
	if reply.Markdown {
		return tghelpers.SendMD(c, reply.Text, markup)
	}
	return tghelpers.SendText(c, reply.Text, &tele.SendOptions{ReplyMarkup: markup})
}
