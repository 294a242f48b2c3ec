package render

var weatherCodes = map[int]string{
	0:  "☀️ Clear sky",
	1:  "🌤️ Mainly clear",
	2:  "⛅ Partly cloudy",
	3:  "☁️ Overcast",
	45: "🌫️ Fog",
	48: "❄️ Depositing rime fog",
	51: "🌧️ Light drizzle",
	53: "🌧️ Moderate drizzle",
	55: "🌧️ Dense drizzle",
	56: "🌧️ Freezing drizzle",
	57: "🌧️ Dense freezing drizzle",
	61: "🌧️ Slight rain",
	63: "🌧️ Moderate rain",
	65: "🌧️ Heavy rain",
	66: "🌨️ Freezing rain",
	67: "🌨️ Heavy freezing rain",
	71: "❄️ Slight snow",
	73: "❄️ Moderate snow",
	75: "❄️ Heavy snow",
	77: "❄️ Snow grains",
	80: "🌧️ Slight rain showers",
	81: "🌧️ Moderate rain showers",
	82: "🌧️ Violent rain showers",
	85: "❄️ Slight snow showers",
	86: "❄️ Heavy snow showers",
	95: "⛈️ Thunderstorm",
	96: "⛈️ Thunderstorm with hail",
	99: "⛈️ Heavy thunderstorm with hail",
}

// WeatherDescription maps a WMO weather code to display text.
func WeatherDescription(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Unknown weather conditions"
}

// UVLevel returns the UV index level name and protection advice.
func UVLevel(uv float64) (string, string) {
	switch {
	case uv < 3:
		return "Low", "🟢 No protection needed"
	case uv < 6:
		return "Moderate", "🟡 Wear sunscreen and a hat"
	case uv < 8:
		return "High", "🟠 Protection required - seek shade during midday"
	case uv < 11:
		return "Very High", "🔴 Extra protection needed - avoid sun exposure"
	default:
		return "Extreme", "🚨 Avoid being outside during midday"
	}
}
