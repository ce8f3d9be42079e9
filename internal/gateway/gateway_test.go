package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"weatherbot/internal/config"
	"weatherbot/internal/gazetteer"
	"weatherbot/internal/nlu"
)

const forecastBody = `{
  "current_weather": {"temperature": 7.4, "windspeed": 12.1},
  "daily": {
    "time": ["2025-11-24", "2025-11-25"],
    "weathercode": [3, 61],
    "temperature_2m_max": [9.5, 11],
    "temperature_2m_min": [2.1, 6.3],
    "sunrise": ["2025-11-24T08:11", "2025-11-25T08:12"],
    "sunset": ["2025-11-24T16:58", "2025-11-25T16:57"],
    "windspeed_10m_max": [18.4, 25]
  }
}`

func init() {
	color.NoColor = true
}

func testConfig(t *testing.T, forecastHits *atomic.Int32) *config.Config {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Paris" {
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(`{"results":[{"name":"Paris","latitude":48.85341,"longitude":2.3488,"country":"France"}]}`))
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		forecastHits.Add(1)
		w.Write([]byte(forecastBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.GeocodeURL = srv.URL + "/v1/search"
	cfg.ForecastURL = srv.URL + "/v1/forecast"
	cfg.DebugLog = ""
	return cfg
}

func TestBuildAnswersWeatherQuestions(t *testing.T) {
	var hits atomic.Int32
	g := New(testConfig(t, &hits), zerolog.Nop())
	defer g.Close()

	svc, err := g.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := 0; i < 2; i++ {
		reply, intent := svc.Chat(context.Background(), "what's the wether in paris?")
		if intent != nlu.Weather {
			t.Fatalf("intent = %s, want weather", intent)
		}
		if !strings.Contains(reply, "Here's the weather for Paris") {
			t.Fatalf("unexpected reply %q", reply)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("forecast endpoint hit %d times, want 1 with caching on", n)
	}

	reply, _ := svc.Chat(context.Background(), "weather in Atlantis")
	if !strings.Contains(reply, "couldn't find a city") {
		t.Errorf("unknown city reply = %q", reply)
	}
}

func TestBuildKeepsCityNamesOutOfIntentMatching(t *testing.T) {
	var hits atomic.Int32
	g := New(testConfig(t, &hits), zerolog.Nop())
	defer g.Close()

	svc, err := g.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// "Paulo" is two edits from the greeting "hallo", "Lyon" from "you".
	for _, city := range gazetteer.Default() {
		if _, intent := svc.Chat(context.Background(), "weather in "+city); intent != nlu.Weather {
			t.Errorf("weather in %s: intent = %s, want weather", city, intent)
		}
	}
}

func TestCitiesLoadsOnce(t *testing.T) {
	g := New(config.DefaultConfig(), zerolog.Nop())

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cities, err := g.Cities()
			if err != nil {
				t.Errorf("Cities: %v", err)
			}
			results[i] = cities
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if len(r) == 0 || &r[0] != &results[0][0] {
			t.Fatalf("call %d got a different city list", i)
		}
	}

	bad := config.DefaultConfig()
	bad.GazetteerPath = "/nonexistent/cities1000.txt"
	g = New(bad, zerolog.Nop())
	if _, err := g.Cities(); err == nil {
		t.Fatalf("expected error for a missing gazetteer file")
	}
	if _, err := g.Cities(); err == nil {
		t.Fatalf("the load error should be kept")
	}
}

func TestBuildWithoutThesaurusOrCache(t *testing.T) {
	var hits atomic.Int32
	cfg := testConfig(t, &hits)
	cfg.Thesaurus = config.ThesaurusNone
	cfg.CacheTTL = 0

	svc, err := New(cfg, zerolog.Nop()).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svc.Chat(context.Background(), "forecast for Paris")
	svc.Chat(context.Background(), "forecast for Paris")
	if n := hits.Load(); n != 2 {
		t.Errorf("forecast endpoint hit %d times, want 2 with caching off", n)
	}
}

func TestBuildRejectsBadLLMProvider(t *testing.T) {
	var hits atomic.Int32
	cfg := testConfig(t, &hits)
	cfg.Thesaurus = config.ThesaurusLLM
	cfg.LLMProvider = "cohere"

	if _, err := New(cfg, zerolog.Nop()).Build(context.Background()); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

type echoResponder struct{}

func (echoResponder) Chat(_ context.Context, text string) (string, nlu.Intent) {
	return "echo: " + text, nlu.Unknown
}

func TestRun(t *testing.T) {
	g := New(config.DefaultConfig(), zerolog.Nop())
	in := strings.NewReader("hello\n\n/cities pars\nquit\nnever read\n")
	var out bytes.Buffer

	if err := g.Run(context.Background(), echoResponder{}, in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	for _, want := range []string{"echo: hello", "Paris"} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never read") {
		t.Errorf("input after quit was processed:\n%s", got)
	}
}

func TestRunStopsAtEOF(t *testing.T) {
	g := New(config.DefaultConfig(), zerolog.Nop())
	var out bytes.Buffer
	if err := g.Run(context.Background(), echoResponder{}, strings.NewReader("hi"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "echo: hi") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestExecute(t *testing.T) {
	var out bytes.Buffer
	Execute(context.Background(), echoResponder{}, "hi", &out)
	if got := out.String(); got != "[unknown] echo: hi\n" {
		t.Fatalf("Execute wrote %q", got)
	}
}
