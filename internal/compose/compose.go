// Package compose turns a forecast snapshot into the bot's reply text.
package compose

import (
	"fmt"
	"strings"

	"weatherbot/internal/forecast"
)

// Mood is a one-line remark about how a day's temperatures feel.
type Mood struct {
	Text  string
	Emoji string
}

type moodBand struct {
	below float64
	mood  Mood
}

// Bands are checked in order against the mean of min and max; the last one
// has no upper bound.
var moodBands = []moodBand{
	{0, Mood{"It's absolutely freezing out there, bring everything you own.", "🥶❄️"}},
	{5, Mood{"Pretty cold, coat and maybe a scarf are a good idea.", "🧣🥶"}},
	{15, Mood{"Cool and fresh, perfect hoodie weather.", "🧥🙂"}},
	{25, Mood{"Very pleasant, you picked a good day.", "🌤🙂"}},
	{32, Mood{"Warm and a bit sweaty, stay hydrated.", "😅🌞"}},
}

var scorching = Mood{"Scorching hot, like walking into an oven.", "🥵🔥"}

// MoodFor picks the mood for a day ranging from min to max degrees.
func MoodFor(min, max float64) Mood {
	avg := (min + max) / 2
	for _, b := range moodBands {
		if avg < b.below {
			return b.mood
		}
	}
	return scorching
}

const umbrellaRemark = "Maybe keep an umbrella nearby, just in case. we never know... ☔"

// Compose renders the reply for snap. The first aspect the composer knows
// decides the kind of answer; without one it writes a general summary.
func Compose(snap forecast.Snapshot, aspects []string) string {
	d := snap.Day
	date := HumanDate(d.Date)
	mood := MoodFor(d.TempMin, d.TempMax)

	for _, a := range aspects {
		switch strings.ToLower(a) {
		case "sunrise":
			return fmt.Sprintf("The sunrise in %s on %s is at %s %s", snap.City, date, HumanTime(d.Sunrise), mood.Emoji)
		case "sunset":
			return fmt.Sprintf("The sunset in %s on %s is at %s %s", snap.City, date, HumanTime(d.Sunset), mood.Emoji)
		case "temperature", "temp":
			return fmt.Sprintf("In %s on %s, temperatures go from %s°C to %s°C. %s %s",
				snap.City, date, num(d.TempMin), num(d.TempMax), mood.Text, mood.Emoji)
		case "wind", "windy":
			return fmt.Sprintf("On %s in %s, the maximum wind speed is %s km/h. Better hold your hat! 💨🧢",
				date, snap.City, num(d.WindMax))
		case "rain":
			return fmt.Sprintf("The weather in %s on %s is %s. %s",
				snap.City, date, strings.ToLower(snap.Description), umbrellaRemark)
		}
	}
	return summary(snap, date, mood)
}

func summary(snap forecast.Snapshot, date string, mood Mood) string {
	d := snap.Day
	var b strings.Builder
	fmt.Fprintf(&b, "Here's the weather for %s on %s: %s. ", snap.City, date, strings.ToLower(snap.Description))
	fmt.Fprintf(&b, "Temperatures between %s°C and %s°C. ", num(d.TempMin), num(d.TempMax))
	fmt.Fprintf(&b, "Wind up to %s km/h. ", num(d.WindMax))
	fmt.Fprintf(&b, "%s %s", mood.Text, mood.Emoji)

	if c := snap.Current; c != nil {
		fmt.Fprintf(&b, " Right now it's %s°C with wind at %s km/h.", num(c.Temp), num(c.Wind))
	}
	if forecast.IsWet(d.WeatherCode) {
		b.WriteString(" " + umbrellaRemark)
	}
	return b.String()
}
