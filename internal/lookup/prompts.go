package lookup

import "fmt"

// Canned requests for the AI-backed content the bot serves. Keeping the
// prompt text here means call sites only choose a request and never
// assemble prompt strings themselves.

// QuestionRequest answers a free-form climate question.
func QuestionRequest(question string) Request {
	return Request{
		Capability: CapabilityAI,
		Query:      question,
		System:     "You're a climate scientist. Provide accurate, concise answers to climate questions, maximum 200 words.",
		MaxChars:   DefaultAnswerCap,
	}
}

// EcoTipsRequest fetches a batch of eco-friendly tips.
func EcoTipsRequest() Request {
	return Request{
		Capability: CapabilityAI,
		Query:      "Provide 5 practical eco-friendly tips with emojis maximum 200 words",
		System:     "You're an environmental expert. Provide actionable eco tips, maximum 200 words.",
		MaxChars:   DefaultTipsCap,
	}
}

// WaterTipsRequest fetches water conservation tips.
func WaterTipsRequest() Request {
	return Request{
		Capability: CapabilityAI,
		Query:      "Provide 5 general water conservation tips, maximum 200 words.",
		System:     "You're a water conservation expert. Provide practical tips with emojis, maximum 200 words.",
		MaxChars:   DefaultTipsCap,
	}
}

// DisasterPrepRequest fetches a preparedness guide for one topic.
func DisasterPrepRequest(topic string) Request {
	return Request{
		Capability: CapabilityAI,
		Query:      fmt.Sprintf("Provide a 5-step preparedness guide for %s, maximum 200 words.", topic),
		System:     "You're a disaster preparedness expert. Provide clear, actionable steps with emojis, maximum 200 words.",
		MaxChars:   DefaultEventsCap,
	}
}

// EventsRequest fetches recent or upcoming natural disaster events,
// scoped to a city when one is given and global otherwise.
func EventsRequest(city string) Request {
	prompt := "List 3 recent or upcoming major natural disaster events (typhoons, earthquakes, floods, etc.) worldwide with dates and brief descriptions, maximum 200 words."
	if city != "" {
		prompt = fmt.Sprintf("List 3 recent or upcoming natural disaster events (typhoons, earthquakes, floods, etc.) affecting %s with dates and brief descriptions, maximum 200 words.", city)
	}
	return Request{
		Capability: CapabilityNews,
		Query:      prompt,
		System:     "You're a disaster response expert. Provide recent or upcoming natural disaster events with dates and impacts in clear bullet points, maximum 200 words. Focus on typhoons, earthquakes, floods and other natural disasters.",
		MaxChars:   DefaultEventsCap,
	}
}

// WeatherRequest looks up current weather and forecast for a city.
func WeatherRequest(city string) Request {
	return Request{
		Capability: CapabilityWeather,
		Query:      city,
	}
}

func locationPrompt(city string) (prompt, system string) {
	prompt = fmt.Sprintf("Return ONLY the location in format 'City, Country'. Be concise. Input: %s", city)
	system = "You are a location formatting assistant. Return only the properly formatted location."
	return prompt, system
}
