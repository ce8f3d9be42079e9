// Package forecast resolves which forecast day a request is about and talks
// to the geocoding and forecast services.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCityNotFound is returned by a Geocoder that has no match for a name.
	ErrCityNotFound = errors.New("city not found")

	// ErrForecastDataMissing is returned when a forecast carries no usable
	// daily rows.
	ErrForecastDataMissing = errors.New("forecast data missing")
)

// TransportError is a failed call to a remote collaborator. Status is the
// HTTP status code, or 0 when the request never got a response.
type TransportError struct {
	Op     string // "geocode" or "forecast"
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MissingDataError narrows ErrForecastDataMissing to the part that was
// absent: "daily" or "time".
type MissingDataError struct {
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("forecast data missing: %s", e.Field)
}

func (e *MissingDataError) Is(target error) bool { return target == ErrForecastDataMissing }

// Location is a geocoded place.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	Country   string
	Timezone  string
}

// Day is one daily row of a forecast. Sunrise and Sunset are local wall
// clock times as "2006-01-02T15:04".
type Day struct {
	Date        time.Time
	WeatherCode int
	TempMin     float64
	TempMax     float64
	WindMax     float64
	Sunrise     string
	Sunset      string
}

// Observation is the current conditions. It only describes the first day of
// a window.
type Observation struct {
	Temp float64
	Wind float64
}

// Window is the ordered list of forecast days, starting today.
type Window struct {
	Days    []Day
	Current *Observation
}

// Snapshot is the forecast for the day a request resolved to.
type Snapshot struct {
	City        string
	Day         Day
	Description string
	Keyword     string
	Current     *Observation
}

// Geocoder turns a place name into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (Location, error)
}

// Provider fetches the forecast window for a coordinate.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64) (Window, error)
}

// Lookup geocodes city, fetches its window and picks the day closest to the
// date keyword relative to today.
func Lookup(ctx context.Context, g Geocoder, p Provider, city, keyword string, today time.Time) (Snapshot, error) {
	target := ResolveDate(keyword, today)

	loc, err := g.Geocode(ctx, city)
	if err != nil {
		return Snapshot{}, err
	}

	w, err := p.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Snapshot{}, err
	}
	if len(w.Days) == 0 {
		return Snapshot{}, &MissingDataError{Field: "time"}
	}

	idx := ClosestDay(w.Days, target)
	day := w.Days[idx]
	snap := Snapshot{
		City:        loc.Name,
		Day:         day,
		Description: Describe(day.WeatherCode),
		Keyword:     keyword,
	}
	if idx == 0 {
		snap.Current = w.Current
	}
	return snap, nil
}
