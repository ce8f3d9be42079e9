package compose

import (
	"strings"
	"testing"
	"time"

	"weatherbot/internal/forecast"
)

func snapshot(code int, min, max float64) forecast.Snapshot {
	return forecast.Snapshot{
		City: "Paris",
		Day: forecast.Day{
			Date:        time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC),
			WeatherCode: code,
			TempMin:     min,
			TempMax:     max,
			WindMax:     25.5,
			Sunrise:     "2025-11-24T06:53",
			Sunset:      "2025-11-24T17:05",
		},
		Description: forecast.Describe(code),
	}
}

func TestMoodFor(t *testing.T) {
	tests := []struct {
		min, max float64
		want     string
	}{
		{-10, -2, "🥶❄️"},
		{-1, 1, "🧣🥶"}, // 0 belongs to the second band
		{4, 5.99, "🧣🥶"},
		{5, 5, "🧥🙂"},
		{14, 16, "🌤🙂"},
		{24, 26, "😅🌞"},
		{30, 34, "🥵🔥"},
		{40, 45, "🥵🔥"},
	}
	for _, tt := range tests {
		if got := MoodFor(tt.min, tt.max); got.Emoji != tt.want {
			t.Errorf("MoodFor(%v, %v) = %q, want %q", tt.min, tt.max, got.Emoji, tt.want)
		}
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		aspects []string
		want    string
	}{
		{
			"sunrise",
			[]string{"sunrise"},
			"The sunrise in Paris on 24th of November is at 6:53 AM 🧥🙂",
		},
		{
			"sunset wins by order",
			[]string{"sunset", "wind"},
			"The sunset in Paris on 24th of November is at 5:05 PM 🧥🙂",
		},
		{
			"temperature",
			[]string{"temp"},
			"In Paris on 24th of November, temperatures go from 6.3°C to 11°C. Cool and fresh, perfect hoodie weather. 🧥🙂",
		},
		{
			"wind",
			[]string{"windy", "rain"},
			"On 24th of November in Paris, the maximum wind speed is 25.5 km/h. Better hold your hat! 💨🧢",
		},
		{
			"rain",
			[]string{"rain"},
			"The weather in Paris on 24th of November is slight rain. Maybe keep an umbrella nearby, just in case. we never know... ☔",
		},
	}
	for _, tt := range tests {
		if got := Compose(snapshot(61, 6.3, 11), tt.aspects); got != tt.want {
			t.Errorf("%s:\n got %q\nwant %q", tt.name, got, tt.want)
		}
	}
}

func TestComposeSummary(t *testing.T) {
	got := Compose(snapshot(3, 6.3, 11), nil)
	want := "Here's the weather for Paris on 24th of November: thick cloud cover. " +
		"Temperatures between 6.3°C and 11°C. Wind up to 25.5 km/h. " +
		"Cool and fresh, perfect hoodie weather. 🧥🙂"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestComposeSummaryExtras(t *testing.T) {
	snap := snapshot(63, 20, 24)
	snap.Current = &forecast.Observation{Temp: 21.5, Wind: 9}

	got := Compose(snap, []string{"humidity"})
	if !strings.Contains(got, "moderate rain") {
		t.Errorf("missing description: %q", got)
	}
	if !strings.Contains(got, "Right now it's 21.5°C with wind at 9 km/h.") {
		t.Errorf("missing current observation: %q", got)
	}
	if !strings.HasSuffix(got, umbrellaRemark) {
		t.Errorf("wet day summary should end with the umbrella remark: %q", got)
	}
}

func TestHumanDate(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "1st of March"},
		{2, "2nd of March"},
		{3, "3rd of March"},
		{4, "4th of March"},
		{11, "11th of March"},
		{12, "12th of March"},
		{13, "13th of March"},
		{21, "21st of March"},
		{22, "22nd of March"},
		{23, "23rd of March"},
		{31, "31st of March"},
	}
	for _, tt := range tests {
		d := time.Date(2025, time.March, tt.day, 0, 0, 0, 0, time.UTC)
		if got := HumanDate(d); got != tt.want {
			t.Errorf("HumanDate(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestHumanTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-11-24T06:53", "6:53 AM"},
		{"2025-11-24T00:05", "12:05 AM"},
		{"2025-11-24T12:00", "12:00 PM"},
		{"2025-11-24T17:41", "5:41 PM"},
		{"not a time", "not a time"},
	}
	for _, tt := range tests {
		if got := HumanTime(tt.in); got != tt.want {
			t.Errorf("HumanTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
