package render

import (
	"fmt"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/format"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/refdata"
)

func mainMenuActions() [][]Action {
	return [][]Action{
		{
			{Key: ActionWeather, Label: "🌦️ Weather"},
			{Key: ActionAsk, Label: "❓ Ask Question"},
		},
		{
			{Key: ActionTips, Label: "🌱 Eco Tips"},
			{Key: ActionEvents, Label: "📅 Events"},
		},
		{
			{Key: ActionWater, Label: "💧 Water Tips"},
			{Key: ActionDisaster, Label: "⚠️ Disaster Prep"},
		},
		{
			{Key: ActionLaws, Label: "📜 Climate Laws"},
			{Key: ActionAbout, Label: "ℹ️ About"},
		},
	}
}

func backRow() [][]Action {
	return [][]Action{{{Key: ActionBack, Label: "🔙 Back"}}}
}

func homeRow() []Action {
	return []Action{{Key: ActionBack, Label: "🏠 Main Menu"}}
}

// Welcome greets a new or restarting user with the main menu.
func Welcome(firstName string) Reply {
	return Reply{
		Text: fmt.Sprintf(
			"🌍 Hello %s! Welcome to *AeroBot* 🌱\n\n"+
				"I'm your climate and weather assistant. Here's what I can help with:\n"+
				"• Real-time weather data and forecasts 🌦️\n"+
				"• Climate change information and tips 🌱\n"+
				"• Disaster preparedness guides ⚠️\n"+
				"• Environmental laws and regulations 📜\n\n"+
				"How can I assist you today?",
			format.EscapeMarkdown(firstName),
		),
		Markdown: true,
		Actions:  mainMenuActions(),
	}
}

// MainMenu renders the top-level menu.
func MainMenu() Reply {
	return Reply{
		Text:    "🌍 Main Menu 🌱\n\nSelect an option:",
		Actions: mainMenuActions(),
	}
}

// PromptWeather asks for a city name.
func PromptWeather() Reply {
	return Reply{
		Text:    "🌇 Enter a city name for weather information:",
		Actions: backRow(),
	}
}

// PromptQuestion asks for a climate question.
func PromptQuestion() Reply {
	return Reply{
		Text:    "🌡️ What climate-related question would you like to ask?",
		Actions: backRow(),
	}
}

// PromptEvents asks for an optional city for the events feed.
func PromptEvents() Reply {
	return Reply{
		Text:    "📍 Enter a city for local events or leave blank for global events:",
		Actions: backRow(),
	}
}

// DisasterMenu lists the preparedness topics two per row.
func DisasterMenu() Reply {
	var rows [][]Action
	var row []Action
	for _, t := range refdata.Topics() {
		row = append(row, Action{
			Key:   "prep_" + t.ID,
			Label: t.Emoji + " " + t.Title,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []Action{{Key: ActionBack, Label: "🔙 Back"}})
	return Reply{
		Text:    "⚠️ Select disaster type for preparedness info:",
		Actions: rows,
	}
}

var lawLabels = map[string]string{
	"law_air":     "Clean Air Act",
	"law_water":   "Clean Water Act",
	"law_waste":   "Waste Management",
	"law_climate": "Climate Change",
}

// LawsMenu lists the environmental law entries.
func LawsMenu() Reply {
	var rows [][]Action
	var row []Action
	for _, l := range refdata.Laws() {
		label := lawLabels[l.ID]
		if label == "" {
			label = l.Title
		}
		row = append(row, Action{Key: l.ID, Label: label})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []Action{{Key: ActionBack, Label: "🔙 Back"}})
	return Reply{
		Text:    "📜 Select a climate law to view details:",
		Actions: rows,
	}
}

// About describes the bot.
func About() Reply {
	return Reply{
		Text: "*AeroBot* 🌱\n\n" +
			"An advanced climate and weather assistant bot.\n\n" +
			"Features:\n" +
			"• Accurate weather data from multiple sources\n" +
			"• Climate change information\n" +
			"• Disaster preparedness guides\n" +
			"• Environmental law database\n" +
			"\n\nGroup 4 - Super Science\n" +
			"\nDeveloped with ❤️ for the planet",
		Markdown: true,
		Actions:  [][]Action{homeRow()},
	}
}

// Farewell thanks the user and shows the menu again.
func Farewell() Reply {
	return Reply{
		Text:    "🌱 Thank you for using AeroBot!",
		Actions: mainMenuActions(),
	}
}
