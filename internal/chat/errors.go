package chat

import (
	"errors"
	"fmt"

	"weatherbot/internal/forecast"
)

const (
	missingCityReply = `I couldn't find a city in your message. Try something like "weather in Paris tomorrow".`
	apologyReply     = "Sorry, something went wrong on my side. Please try again."
)

// errorReply turns a lookup failure into the text shown to the user.
func errorReply(city string, err error) string {
	var (
		missing   *forecast.MissingDataError
		transport *forecast.TransportError
	)
	switch {
	case errors.Is(err, forecast.ErrCityNotFound):
		return fmt.Sprintf("Could not find city '%s'.", city)
	case errors.As(err, &missing):
		if missing.Field == "time" {
			return "Missing dates in weather data."
		}
		return "No daily weather data available."
	case errors.Is(err, forecast.ErrForecastDataMissing):
		return "No daily weather data available."
	case errors.As(err, &transport):
		return transportReply(transport)
	default:
		return fmt.Sprintf("Weather API connection error: %v", err)
	}
}

func transportReply(e *forecast.TransportError) string {
	if e.Op == "geocode" {
		if e.Status != 0 {
			return fmt.Sprintf("Geocoding HTTP error: %d", e.Status)
		}
		return fmt.Sprintf("Geocoding error: %v", e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("Weather API HTTP error: %d", e.Status)
	}
	return fmt.Sprintf("Weather API connection error: %v", e.Err)
}
