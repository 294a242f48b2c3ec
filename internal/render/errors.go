package render

import (
	"fmt"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
)

// InvalidCity re-prompts after a rejected city name.
func InvalidCity(maxLen int) Reply {
	return Reply{
		Text:    fmt.Sprintf("⚠️ Please enter a valid city name (max %d characters).", maxLen),
		Actions: backRow(),
	}
}

// InvalidQuestion re-prompts after a rejected question.
func InvalidQuestion(maxLen int) Reply {
	return Reply{
		Text:    fmt.Sprintf("⚠️ Please enter a valid question (max %d characters).", maxLen),
		Actions: backRow(),
	}
}

// WeatherNotFound re-prompts when no coordinates were found for a city.
func WeatherNotFound(location string) Reply {
	return Reply{
		Text:    fmt.Sprintf("❌ Couldn't find weather data for '%s'. Try a nearby city.", location),
		Actions: backRow(),
	}
}

// WeatherUnavailable re-prompts after a weather provider error.
func WeatherUnavailable(location string) Reply {
	return Reply{
		Text:    fmt.Sprintf("⚠️ Weather service unavailable for %s. Try again or try a nearby city.", location),
		Actions: backRow(),
	}
}

// Apology renders a lookup failure and returns the user to the menu.
func Apology(kind lookup.FailureKind) Reply {
	var text string
	switch kind {
	case lookup.FailTimeout:
		text = "⚠️ Aero Bot service is taking too long to respond. Please try again later."
	case lookup.FailUpstream:
		text = "⚠️ Aero Bot service is currently unavailable. Please try again later."
	case lookup.FailEmpty:
		text = "⚠️ No results available right now. Please try again later."
	default:
		text = "⚠️ An unexpected error occurred. Please try again."
	}
	return Reply{Text: text, Actions: mainMenuActions()}
}

// CooldownNotice tells the user the request was accepted but skipped.
func CooldownNotice() Reply {
	return Reply{
		Text:    "⏳ Easy there! Please wait a few seconds before your next request.",
		Actions: backRow(),
	}
}

// UnknownText nudges the user back to the menu on unroutable input.
func UnknownText() Reply {
	return Reply{
		Text:    "🤔 I didn't catch that. Pick an option below:",
		Actions: mainMenuActions(),
	}
}
