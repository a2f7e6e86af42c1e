package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// HTTPActivitySource queries a tours-and-activities API that answers
// {"data": [...]} on success and {"errors": [...]} on failure.
type HTTPActivitySource struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPActivitySource returns a source rooted at baseURL. token, when set,
// is sent as a bearer token. client may be nil.
func NewHTTPActivitySource(baseURL, token string, client *http.Client) *HTTPActivitySource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPActivitySource{baseURL: baseURL, token: token, client: client}
}

// ActivitiesByDestinationName calls GET {base}/activities?destination=name.
func (s *HTTPActivitySource) ActivitiesByDestinationName(ctx context.Context, name string) ([]RawActivity, error) {
	q := url.Values{"destination": {name}}
	return s.fetch(ctx, q)
}

// ActivitiesByCoordinates calls GET {base}/activities?latitude=&longitude=&radius=.
func (s *HTTPActivitySource) ActivitiesByCoordinates(ctx context.Context, lat, lng, radiusKm float64) ([]RawActivity, error) {
	q := url.Values{
		"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(lng, 'f', -1, 64)},
		"radius":    {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}
	return s.fetch(ctx, q)
}

func (s *HTTPActivitySource) fetch(ctx context.Context, q url.Values) ([]RawActivity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/activities?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("gateway.HTTPActivitySource: %w: %w", domain.ErrGatewayUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	var body struct {
		Data   []RawActivity     `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	if err := doJSON(s.client, req, &body); err != nil {
		return nil, fmt.Errorf("gateway.HTTPActivitySource: %w", err)
	}
	if len(body.Errors) > 0 {
		return nil, fmt.Errorf("gateway.HTTPActivitySource: %w: provider returned %d errors",
			domain.ErrGatewayUnavailable, len(body.Errors))
	}
	return body.Data, nil
}

// MaxForecastDays is the furthest ahead the weather provider forecasts.
const MaxForecastDays = 14

// HTTPWeatherSource reads daily forecasts from a weatherapi.com-compatible
// forecast.json endpoint.
type HTTPWeatherSource struct {
	baseURL string
	key     string
	client  *http.Client
	now     func() time.Time
}

// NewHTTPWeatherSource returns a source rooted at baseURL using API key key.
// client may be nil.
func NewHTTPWeatherSource(baseURL, key string, client *http.Client) *HTTPWeatherSource {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPWeatherSource{baseURL: baseURL, key: key, client: client, now: time.Now}
}

type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC          float64 `json:"avgtemp_c"`
				DailyChanceOfRain float64 `json:"daily_chance_of_rain"`
				Condition         struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// WeatherForDate returns the daily forecast for date. Dates in the past or
// beyond MaxForecastDays, and dates the provider does not return, are
// reported as domain.ErrGatewayUnavailable.
func (s *HTTPWeatherSource) WeatherForDate(ctx context.Context, lat, lng float64, date time.Time) (domain.Forecast, error) {
	date = domain.NormalizeDate(date)
	today := domain.NormalizeDate(s.now().UTC())
	days := int(date.Sub(today).Hours()/24) + 1
	if days < 1 || days > MaxForecastDays {
		return domain.Forecast{}, fmt.Errorf("gateway.HTTPWeatherSource: %w: %s is outside the forecast window",
			domain.ErrGatewayUnavailable, date.Format(domain.DateLayout))
	}

	q := url.Values{
		"key":    {s.key},
		"q":      {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"days":   {strconv.Itoa(days)},
		"aqi":    {"no"},
		"alerts": {"no"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/forecast.json?"+q.Encode(), nil)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("gateway.HTTPWeatherSource: %w: %w", domain.ErrGatewayUnavailable, err)
	}

	var body forecastResponse
	if err := doJSON(s.client, req, &body); err != nil {
		return domain.Forecast{}, fmt.Errorf("gateway.HTTPWeatherSource: %w", err)
	}

	want := date.Format(domain.DateLayout)
	for _, fd := range body.Forecast.ForecastDay {
		if fd.Date != want {
			continue
		}
		return domain.Forecast{
			Date:                       date,
			Condition:                  MapCondition(fd.Day.Condition.Text),
			TemperatureC:               fd.Day.AvgTempC,
			PrecipitationChancePercent: fd.Day.DailyChanceOfRain,
		}, nil
	}
	return domain.Forecast{}, fmt.Errorf("gateway.HTTPWeatherSource: %w: no forecast for %s",
		domain.ErrGatewayUnavailable, want)
}

// doJSON sends req and decodes a 2xx JSON body into v. Transport errors,
// non-2xx statuses and undecodable bodies wrap domain.ErrGatewayUnavailable.
func doJSON(client *http.Client, req *http.Request, v any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s returned %d", domain.ErrGatewayUnavailable, req.Method, req.URL.Path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrGatewayUnavailable, err)
	}
	return nil
}
