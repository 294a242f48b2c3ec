package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// weatherClient resolves a city to coordinates and fetches the forecast.
// Geocoding tries the primary provider first and falls back to the
// secondary on error or empty result; each call is single-attempt.
type weatherClient struct {
	geocodeEndpoint  string
	fallbackEndpoint string
	forecastEndpoint string
	timeout          time.Duration
	client           *http.Client
}

func newWeatherClient(geocode, fallback, forecast string, timeout time.Duration, client *http.Client) *weatherClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &weatherClient{
		geocodeEndpoint:  geocode,
		fallbackEndpoint: fallback,
		forecastEndpoint: forecast,
		timeout:          timeout,
		client:           client,
	}
}

type coordinates struct {
	Lat float64
	Lon float64
}

// geocode resolves a city name to coordinates. Both providers failing
// or returning nothing surfaces as an EmptyResult failure.
func (w *weatherClient) geocode(ctx context.Context, city string) (coordinates, *Failure) {
	if coords, err := w.geocodePrimary(ctx, city); err == nil {
		return coords, nil
	}
	coords, err := w.geocodeFallback(ctx, city)
	if err != nil {
		return coordinates{}, newFailure(CapabilityWeather, FailEmpty, fmt.Errorf("no coordinates for %q", city))
	}
	return coords, nil
}

func (w *weatherClient) geocodePrimary(ctx context.Context, city string) (coordinates, error) {
	u, err := url.Parse(w.geocodeEndpoint)
	if err != nil {
		return coordinates{}, err
	}
	q := u.Query()
	q.Set("name", city)
	q.Set("count", "1")
	u.RawQuery = q.Encode()

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := w.getJSON(ctx, u.String(), &payload); err != nil {
		return coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return coordinates{}, fmt.Errorf("geocode: no results for %q", city)
	}
	return coordinates{Lat: payload.Results[0].Latitude, Lon: payload.Results[0].Longitude}, nil
}

func (w *weatherClient) geocodeFallback(ctx context.Context, city string) (coordinates, error) {
	u, err := url.Parse(w.fallbackEndpoint)
	if err != nil {
		return coordinates{}, err
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := w.getJSON(ctx, u.String(), &payload); err != nil {
		return coordinates{}, err
	}
	if len(payload) == 0 {
		return coordinates{}, fmt.Errorf("geocode fallback: no results for %q", city)
	}
	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return coordinates{}, err
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return coordinates{}, err
	}
	return coordinates{Lat: lat, Lon: lon}, nil
}

// forecast fetches current conditions plus the daily series.
func (w *weatherClient) forecast(ctx context.Context, coords coordinates) (*WeatherReport, *Failure) {
	u, err := url.Parse(w.forecastEndpoint)
	if err != nil {
		return nil, newFailure(CapabilityWeather, FailUnexpected, err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,precipitation,weather_code,surface_pressure,wind_speed_10m,wind_direction_10m,uv_index")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,uv_index_max")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	var payload struct {
		Timezone string `json:"timezone"`
		Current  struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			Precip      float64 `json:"precipitation"`
			WeatherCode int     `json:"weather_code"`
			Pressure    float64 `json:"surface_pressure"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WindDir     float64 `json:"wind_direction_10m"`
			UV          float64 `json:"uv_index"`
		} `json:"current"`
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			PrecipSum   []float64 `json:"precipitation_sum"`
			UVMax       []float64 `json:"uv_index_max"`
		} `json:"daily"`
	}
	if err := w.getJSON(ctx, u.String(), &payload); err != nil {
		return nil, newFailure(CapabilityWeather, classifyTransport(err), err)
	}

	report := &WeatherReport{
		Timezone: payload.Timezone,
		Current: CurrentConditions{
			Temp:        payload.Current.Temperature,
			Humidity:    payload.Current.Humidity,
			Precip:      payload.Current.Precip,
			WeatherCode: payload.Current.WeatherCode,
			Pressure:    payload.Current.Pressure,
			WindSpeed:   payload.Current.WindSpeed,
			WindDir:     payload.Current.WindDir,
			UV:          payload.Current.UV,
		},
	}
	for i := range payload.Daily.Time {
		day := DailyForecast{Date: payload.Daily.Time[i]}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		if i < len(payload.Daily.TempMax) {
			day.TempMax = payload.Daily.TempMax[i]
		}
		if i < len(payload.Daily.TempMin) {
			day.TempMin = payload.Daily.TempMin[i]
		}
		if i < len(payload.Daily.PrecipSum) {
			day.PrecipSum = payload.Daily.PrecipSum[i]
		}
		if i < len(payload.Daily.UVMax) {
			day.UVMax = payload.Daily.UVMax[i]
		}
		report.Daily = append(report.Daily, day)
	}
	return report, nil
}

func (w *weatherClient) getJSON(ctx context.Context, rawURL string, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	// Nominatim requires an identifying agent.
	req.Header.Set("User-Agent", "aerobot/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather provider status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
