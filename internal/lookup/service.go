package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	coreconfig "github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/config"
	"github.com/BagunasJohnrey/AERO-CHAT-BOT-TG/core/logger"
	"log/slog"
)

const serviceComponent = "service.lookup"

// Service is the production Gateway: AI completion with bounded retry,
// single-attempt news, and geocode-then-forecast weather with a sqlite
// response cache.
type Service struct {
	ai      *aiClient
	weather *weatherClient
	cache   *Cache
}

// NewService builds the gateway from configuration. cache may be nil to
// disable weather caching (used by tests).
func NewService(cfg coreconfig.LookupConfig, cache *Cache, client *http.Client) *Service {
	return &Service{
		ai: newAIClient(
			cfg.AI.Endpoint,
			cfg.AI.Timeout(),
			cfg.AI.MaxRetries,
			cfg.AI.BackoffFactor,
			client,
		),
		weather: newWeatherClient(
			cfg.Weather.GeocodeEndpoint,
			cfg.Weather.FallbackEndpoint,
			cfg.Weather.ForecastEndpoint,
			cfg.Weather.Timeout(),
			client,
		),
		cache: cache,
	}
}

// Lookup dispatches the request to the capability's provider binding.
func (s *Service) Lookup(ctx context.Context, req Request) (Payload, error) {
	start := time.Now()
	payload, err := s.dispatch(ctx, req)
	if err != nil {
		attrs := []slog.Attr{
			slog.String("status", "fail"),
			slog.String("capability", string(req.Capability)),
			slog.String("query", logger.SanitizeLimit(req.Query, 128)),
			slog.Duration("duration", logger.Took(start)),
		}
		if f, ok := AsFailure(err); ok {
			attrs = append(attrs, slog.String("err_code", f.Code()))
		}
		logger.Warn(ctx, serviceComponent, "lookup.failed", attrs...)
		return Payload{}, err
	}
	logger.Debug(ctx, serviceComponent, "lookup.ok",
		slog.String("status", "ok"),
		slog.String("capability", string(req.Capability)),
		slog.Duration("duration", logger.Took(start)),
	)
	return payload, nil
}

func (s *Service) dispatch(ctx context.Context, req Request) (Payload, error) {
	switch req.Capability {
	case CapabilityAI:
		text, err := s.ai.complete(ctx, CapabilityAI, req.Query, req.System, req.MaxChars, 0)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Text: text}, nil

	case CapabilityNews:
		// News is single-attempt; the retry budget belongs to ai-completion.
		text, err := s.ai.complete(ctx, CapabilityNews, req.Query, req.System, req.MaxChars, 1)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Text: text}, nil

	case CapabilityWeather:
		report, err := s.lookupWeather(ctx, req.Query)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Weather: report}, nil

	default:
		return Payload{}, newFailure(req.Capability, FailUnexpected, nil)
	}
}

func (s *Service) lookupWeather(ctx context.Context, city string) (*WeatherReport, error) {
	key := cacheKey(city)

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err != nil {
			logger.Warn(ctx, serviceComponent, "cache.read_failed",
				slog.String("err", err.Error()),
			)
		} else if ok {
			var report WeatherReport
			if err := json.Unmarshal(raw, &report); err == nil {
				logger.Debug(ctx, serviceComponent, "cache.hit",
					slog.String("cache", "hit"),
					slog.String("city", logger.SanitizeLimit(city, 64)),
				)
				return &report, nil
			}
		}
	}

	location := s.resolveLocation(ctx, city)

	coords, failure := s.weather.geocode(ctx, location)
	if failure != nil {
		return nil, failure
	}

	report, failure := s.weather.forecast(ctx, coords)
	if failure != nil {
		return nil, failure
	}
	report.Location = location

	if s.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Put(ctx, key, raw); err != nil {
				logger.Warn(ctx, serviceComponent, "cache.write_failed",
					slog.String("err", err.Error()),
				)
			}
		}
	}
	return report, nil
}

// resolveLocation normalizes the user's city via the completion endpoint
// ("City, Country"). Best effort: any failure falls back to the raw input.
func (s *Service) resolveLocation(ctx context.Context, city string) string {
	prompt, system := locationPrompt(city)
	text, err := s.ai.complete(ctx, CapabilityAI, prompt, system, locationCap, 1)
	if err != nil {
		return city
	}
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	if len(text) >= 6 && strings.EqualFold(text[:6], "input:") {
		text = strings.TrimSpace(text[6:])
	}
	if text == "" {
		return city
	}
	return text
}

func cacheKey(city string) string {
	return "weather:" + strings.ToLower(strings.TrimSpace(city))
}
