package render

import (
	"strings"
	"testing"

	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/lookup"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/internal/refdata"
)

func sampleReport() *lookup.WeatherReport {
	return &lookup.WeatherReport{
		Location: "Cebu City, Philippines",
		Timezone: "Asia/Manila",
		Current: lookup.CurrentConditions{
			Temp:        31.2,
			Humidity:    70,
			Precip:      0.4,
			WeatherCode: 2,
			Pressure:    1008.5,
			WindSpeed:   12.4,
			WindDir:     180,
			UV:          7.5,
		},
		Daily: []lookup.DailyForecast{
			{Date: "2026-08-23", WeatherCode: 2, TempMax: 32.1, TempMin: 26.0, PrecipSum: 0.4, UVMax: 8.1},
			{Date: "2026-08-24", WeatherCode: 61, TempMax: 30.4, TempMin: 25.1, PrecipSum: 8.2, UVMax: 6.3},
		},
	}
}

func TestWeatherCard(t *testing.T) {
	reply := WeatherCard(sampleReport())
	if !reply.Markdown {
		t.Fatal("weather card must use markdown")
	}
	for _, want := range []string{"Cebu City, Philippines", "31.2", "70", "⛅ Partly cloudy", "High"} {
		if !strings.Contains(reply.Text, want) {
			t.Fatalf("weather card missing %q:\n%s", want, reply.Text)
		}
	}
	if len(reply.Actions) == 0 {
		t.Fatal("weather card must offer follow-up actions")
	}
	if reply.Actions[0][0].Key != ActionWeather {
		t.Fatalf("first follow-up should re-enter weather, got %q", reply.Actions[0][0].Key)
	}
}

func TestTomorrowCard(t *testing.T) {
	reply := TomorrowCard(sampleReport())
	for _, want := range []string{"2026-08-24", "25.1", "30.4", "🌧️ Slight rain"} {
		if !strings.Contains(reply.Text, want) {
			t.Fatalf("tomorrow card missing %q:\n%s", want, reply.Text)
		}
	}
}

func TestTomorrowCardWithoutDailyData(t *testing.T) {
	report := sampleReport()
	report.Daily = report.Daily[:1]
	reply := TomorrowCard(report)
	if !strings.Contains(reply.Text, "No forecast data") {
		t.Fatalf("expected missing-data notice, got: %s", reply.Text)
	}
}

func TestWeatherDescriptionUnknownCode(t *testing.T) {
	if got := WeatherDescription(42); got != "Unknown weather conditions" {
		t.Fatalf("unexpected description for unknown code: %q", got)
	}
}

func TestUVLevels(t *testing.T) {
	cases := []struct {
		uv    float64
		level string
	}{
		{1.0, "Low"},
		{4.5, "Moderate"},
		{7.0, "High"},
		{9.9, "Very High"},
		{12.0, "Extreme"},
	}
	for _, tc := range cases {
		level, advice := UVLevel(tc.uv)
		if level != tc.level {
			t.Fatalf("UVLevel(%v) = %q, want %q", tc.uv, level, tc.level)
		}
		if advice == "" {
			t.Fatalf("UVLevel(%v) returned empty advice", tc.uv)
		}
	}
}

func TestMainMenuActions(t *testing.T) {
	reply := MainMenu()
	keys := map[string]bool{}
	for _, row := range reply.Actions {
		for _, a := range row {
			keys[a.Key] = true
		}
	}
	for _, want := range []string{ActionWeather, ActionAsk, ActionTips, ActionEvents, ActionWater, ActionDisaster, ActionLaws, ActionAbout} {
		if !keys[want] {
			t.Fatalf("main menu missing action %q", want)
		}
	}
}

func TestDisasterMenuCoversTopics(t *testing.T) {
	reply := DisasterMenu()
	var keys []string
	for _, row := range reply.Actions {
		for _, a := range row {
			keys = append(keys, a.Key)
		}
	}
	for _, topic := range refdata.Topics() {
		found := false
		for _, k := range keys {
			if k == "prep_"+topic.ID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("disaster menu missing topic %q", topic.ID)
		}
	}
}

func TestLawCard(t *testing.T) {
	law, ok := refdata.LawByID("law_air")
	if !ok {
		t.Fatal("law_air must exist")
	}
	reply := LawCard(law)
	if !reply.Markdown {
		t.Fatal("law card must use markdown")
	}
	for _, want := range []string{law.Title, law.Summary, law.Link} {
		if !strings.Contains(reply.Text, want) {
			t.Fatalf("law card missing %q", want)
		}
	}
}

func TestApologyByFailureKind(t *testing.T) {
	timeoutReply := Apology(lookup.FailTimeout)
	if !strings.Contains(timeoutReply.Text, "taking too long") {
		t.Fatalf("unexpected timeout apology: %s", timeoutReply.Text)
	}
	upstreamReply := Apology(lookup.FailUpstream)
	if !strings.Contains(upstreamReply.Text, "currently unavailable") {
		t.Fatalf("unexpected upstream apology: %s", upstreamReply.Text)
	}
	if len(timeoutReply.Actions) == 0 {
		t.Fatal("apologies must re-offer the main menu")
	}
}
