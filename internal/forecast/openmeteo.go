package forecast

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

const (
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	dailyFields = "weathercode,temperature_2m_max,temperature_2m_min,sunrise,sunset,windspeed_10m_max"
	maxBody     = 1 << 20
)

// OpenMeteo is a Geocoder and Provider backed by the Open-Meteo HTTP APIs.
type OpenMeteo struct {
	GeocodeURL  string
	ForecastURL string
	Days        int
	Client      *http.Client
}

// NewOpenMeteo returns a client for the public endpoints. Requests time out
// after timeout; there are no retries.
func NewOpenMeteo(timeout time.Duration) *OpenMeteo {
	return &OpenMeteo{
		GeocodeURL:  DefaultGeocodeURL,
		ForecastURL: DefaultForecastURL,
		Days:        7,
		Client:      &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Geocode returns the best match for name.
func (o *OpenMeteo) Geocode(ctx context.Context, name string) (Location, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var out geocodeResponse
	if err := o.getJSON(ctx, "geocode", o.GeocodeURL, q, &out); err != nil {
		return Location{}, err
	}
	if len(out.Results) == 0 {
		return Location{}, fmt.Errorf("geocode %q: %w", name, ErrCityNotFound)
	}

	r := out.Results[0]
	return Location{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Country:   r.Country,
		Timezone:  r.Timezone,
	}, nil
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
	} `json:"current_weather"`
	Daily *struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weathercode"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		Sunrise     []string  `json:"sunrise"`
		Sunset      []string  `json:"sunset"`
		WindMax     []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Forecast fetches the daily window and current conditions for a coordinate
// in the location's own time zone.
func (o *OpenMeteo) Forecast(ctx context.Context, lat, lon float64) (Window, error) {
	days := o.Days
	if days <= 0 {
		days = 7
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("daily", dailyFields)
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("timezone", "auto")

	var out forecastResponse
	if err := o.getJSON(ctx, "forecast", o.ForecastURL, q, &out); err != nil {
		return Window{}, err
	}
	if out.Daily == nil {
		return Window{}, &MissingDataError{Field: "daily"}
	}
	d := out.Daily
	if len(d.Time) == 0 {
		return Window{}, &MissingDataError{Field: "time"}
	}

	var w Window
	for i, ds := range d.Time {
		date, err := time.Parse(time.DateOnly, ds)
		if err != nil {
			return Window{}, &TransportError{Op: "forecast", Err: fmt.Errorf("bad date %q: %w", ds, err)}
		}
		if i >= len(d.WeatherCode) || i >= len(d.TempMax) || i >= len(d.TempMin) ||
			i >= len(d.WindMax) || i >= len(d.Sunrise) || i >= len(d.Sunset) {
			return Window{}, &MissingDataError{Field: "daily"}
		}
		w.Days = append(w.Days, Day{
			Date:        date,
			WeatherCode: d.WeatherCode[i],
			TempMin:     d.TempMin[i],
			TempMax:     d.TempMax[i],
			WindMax:     d.WindMax[i],
			Sunrise:     d.Sunrise[i],
			Sunset:      d.Sunset[i],
		})
	}
	if cw := out.CurrentWeather; cw != nil {
		w.Current = &Observation{Temp: cw.Temperature, Wind: cw.Windspeed}
	}
	return w, nil
}

func (o *OpenMeteo) getJSON(ctx context.Context, op, endpoint string, q url.Values, dst any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
