package render

import (
	"fmt"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/telegram/format"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
)

func weatherFollowUps() [][]Action {
	return [][]Action{
		{
			{Key: ActionWeather, Label: "🌦️ Get Weather Again"},
			{Key: ActionTomorrow, Label: "📆 Tomorrow"},
		},
		{{Key: ActionBack, Label: "🔙 Back"}},
	}
}

// WeatherCard renders current conditions for a resolved location.
func WeatherCard(report *lookup.WeatherReport) Reply {
	cur := report.Current
	desc := WeatherDescription(cur.WeatherCode)
	uvLevel, uvAdvice := UVLevel(cur.UV)

	text := fmt.Sprintf(
		"🌦️ *Weather for %s*\n\n"+
			"%s\n"+
			"🌡️ Temperature: *%.1f°C*\n"+
			"💧 Humidity: *%.0f%%*\n"+
			"🌬️ Wind: *%.2f km/h* from *%.2f°*\n"+
			"☔ Precipitation: *%.2f mm*\n"+
			"☀️ UV Index: *%.1f (%s)*\n"+
			"%s\n\n"+
			"Select an option below:",
		format.EscapeMarkdown(report.Location), desc, cur.Temp, cur.Humidity,
		cur.WindSpeed, cur.WindDir, cur.Precip,
		cur.UV, uvLevel, uvAdvice,
	)

	return Reply{Text: text, Markdown: true, Actions: weatherFollowUps()}
}

// TomorrowCard renders the next-day forecast from an already fetched
// report. No lookup is performed.
func TomorrowCard(report *lookup.WeatherReport) Reply {
	day, ok := report.Tomorrow()
	if !ok {
		return Reply{
			Text:    "⚠️ No forecast data available for tomorrow. Try fetching the weather again.",
			Actions: weatherFollowUps(),
		}
	}

	desc := WeatherDescription(day.WeatherCode)
	uvLevel, uvAdvice := UVLevel(day.UVMax)

	text := fmt.Sprintf(
		"📆 *Tomorrow's forecast for %s* (%s)\n\n"+
			"%s\n"+
			"🌡️ Temperature: *%.1f°C to %.1f°C*\n"+
			"☔ Precipitation: *%.2f mm*\n"+
			"☀️ Max UV Index: *%.1f (%s)*\n"+
			"%s",
		format.EscapeMarkdown(report.Location), day.Date, desc,
		day.TempMin, day.TempMax, day.PrecipSum,
		day.UVMax, uvLevel, uvAdvice,
	)

	return Reply{Text: text, Markdown: true, Actions: weatherFollowUps()}
}
