package nlu

import "fmt"

// Intent is the category of request an utterance is classified into.
type Intent int

const (
	Unknown Intent = iota
	Greetings
	Feeling
	Goodbye
	Weather
	Time
	Name
	Thanks
	Rude
)

var intentLabels = map[Intent]string{
	Unknown:   "unknown",
	Greetings: "greetings",
	Feeling:   "feeling",
	Goodbye:   "goodbye",
	Weather:   "weather",
	Time:      "time",
	Name:      "name",
	Thanks:    "thanks",
	Rude:      "rude",
}

// String returns the intent label used in replies and logs.
func (i Intent) String() string {
	if l, ok := intentLabels[i]; ok {
		return l
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// ParseIntent maps a label back to its Intent.
func ParseIntent(label string) (Intent, bool) {
	for i, l := range intentLabels {
		if l == label {
			return i, true
		}
	}
	return Unknown, false
}

// Entry is one row of the intent table: the seed keywords that trigger the
// intent and the canned replies for it. Weather has no replies since its
// answer is composed from forecast data.
type Entry struct {
	Intent  Intent
	Seeds   []string
	Replies []string
}

// DefaultTable returns the built-in intent table. Row order is match
// priority: the first row whose pattern matches wins.
func DefaultTable() []Entry {
	return []Entry{
		{
			Intent:  Greetings,
			Seeds:   []string{"hello", "hi", "hey", "howdy", "hullo"},
			Replies: []string{"Hello!", "Hey there!", "Hi! How can I help you?"},
		},
		{
			Intent:  Feeling,
			Seeds:   []string{"how are you", "how is it going", "how do you do"},
			Replies: []string{"I'm just a bot, but thanks for asking!", "Doing great, how about you?"},
		},
		{
			Intent:  Goodbye,
			Seeds:   []string{"bye", "goodbye", "see you", "later"},
			Replies: []string{"Hasta la vista baby!", "Ciao"},
		},
		{
			Intent: Weather,
			Seeds: []string{
				"weather", "rain", "sunny", "forecast", "sunrise", "sunset",
				"temperature", "temp", "wind", "windy", "hot", "cold",
				"freezing", "chilly", "warm", "humid",
			},
		},
		{
			Intent:  Time,
			Seeds:   []string{"time", "hour", "clock"},
			Replies: []string{"We said a weather bot, this is not a time bot, check your watch!", "Time is an illusion."},
		},
		{
			Intent:  Name,
			Seeds:   []string{"your name", "who are you"},
			Replies: []string{"You really want me to be your friend huh ? I am just a robot... Sorry you are so lonely."},
		},
		{
			Intent:  Thanks,
			Seeds:   []string{"thank", "thanks", "thank you", "ty"},
			Replies: []string{"You're welcome!", "No problem!", "Glad I could help!"},
		},
		{
			Intent:  Rude,
			Seeds:   []string{"rude", "mean", "stupid", "idiot", "dumb"},
			Replies: []string{"You are the rude one here"},
		},
		{
			Intent:  Unknown,
			Replies: []string{"wtf are you saying ?"},
		},
	}
}

func validateTable(table []Entry) error {
	seen := make(map[Intent]bool, len(table))
	hasUnknown := false
	for _, e := range table {
		if seen[e.Intent] {
			return fmt.Errorf("intent %s listed twice", e.Intent)
		}
		seen[e.Intent] = true

		if e.Intent == Unknown {
			if len(e.Replies) == 0 {
				return fmt.Errorf("intent %s needs at least one reply", e.Intent)
			}
			hasUnknown = true
			continue
		}
		if len(e.Seeds) == 0 {
			return fmt.Errorf("intent %s has no seed keywords", e.Intent)
		}
		if e.Intent != Weather && len(e.Replies) == 0 {
			return fmt.Errorf("intent %s has no replies", e.Intent)
		}
	}
	if !hasUnknown {
		return fmt.Errorf("table has no %s fallback", Unknown)
	}
	return nil
}
