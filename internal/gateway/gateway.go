// Package gateway assembles the chat service from configuration and runs the
// line-oriented front-ends on top of it.
package gateway

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"weatherbot/internal/chat"
	"weatherbot/internal/config"
	"weatherbot/internal/entity"
	"weatherbot/internal/forecast"
	"weatherbot/internal/gazetteer"
	"weatherbot/internal/llm"
	"weatherbot/internal/nlu"
	"weatherbot/internal/spell"
	"weatherbot/internal/textnorm"
	"weatherbot/internal/thesaurus"
)

// suggestLimit caps the names printed for a /cities lookup.
const suggestLimit = 5

type Gateway struct {
	cfg *config.Config
	log zerolog.Logger

	citiesOnce sync.Once
	cities     []string
	citiesErr  error

	closers []io.Closer
}

func New(cfg *config.Config, log zerolog.Logger) *Gateway {
	return &Gateway{cfg: cfg, log: log}
}

// Cities loads the gazetteer once and returns it. It is safe to call from
// several goroutines.
func (g *Gateway) Cities() ([]string, error) {
	g.citiesOnce.Do(func() {
		g.cities, g.citiesErr = gazetteer.Load(g.cfg.GazetteerPath, gazetteer.Options{
			Limit:     g.cfg.GazetteerLimit,
			Countries: g.cfg.GazetteerCountries,
			MinLength: g.cfg.GazetteerMinLength,
		})
	})
	return g.cities, g.citiesErr
}

// Build wires the intent engine, the entity extractor and the forecast
// collaborators into a chat service.
func (g *Gateway) Build(ctx context.Context) (*chat.Service, error) {
	cities, err := g.Cities()
	if err != nil {
		return nil, err
	}

	th, err := g.thesaurus()
	if err != nil {
		return nil, err
	}

	freq, err := spell.DefaultFrequencies()
	if err != nil {
		return nil, err
	}
	maxDistance := g.cfg.SpellMaxDistance
	names := cityWords(cities)

	opts := []nlu.Option{
		nlu.WithLogger(g.log),
		nlu.WithSpeller(func(terms []string) nlu.Speller {
			return spell.New(freq,
				spell.WithMaxDistance(maxDistance),
				spell.WithPreferred(terms...),
				spell.WithKnown(names...),
			)
		}),
	}
	if th != nil {
		opts = append(opts, nlu.WithThesaurus(th))
	}
	engine, err := nlu.NewEngine(ctx, nlu.DefaultTable(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build intent engine: %w", err)
	}

	geocoder, provider := g.collaborators(ctx)

	g.log.Info().
		Int("cities", len(cities)).
		Str("thesaurus", string(g.cfg.Thesaurus)).
		Msg("chat service ready")

	return chat.NewService(engine, entity.NewExtractor(cities), geocoder, provider,
		chat.WithTimeout(2*g.cfg.HTTPTimeout),
		chat.WithLogger(g.log),
	), nil
}

// cityWords splits city names into the tokens the intent engine sees, so
// the speller keeps them as typed instead of pulling them toward trigger
// words ("Paulo" to "hallo").
func cityWords(cities []string) []string {
	var out []string
	for _, c := range cities {
		out = append(out, strings.Fields(textnorm.Normalize(c))...)
	}
	return out
}

func (g *Gateway) thesaurus() (nlu.Thesaurus, error) {
	switch g.cfg.Thesaurus {
	case config.ThesaurusNone:
		return nil, nil
	case config.ThesaurusStatic:
		return thesaurus.Default()
	case config.ThesaurusLLM:
		static, err := thesaurus.Default()
		if err != nil {
			return nil, err
		}
		provider, err := llm.ParseProvider(g.cfg.LLMProvider)
		if err != nil {
			return nil, err
		}
		model, err := llm.New(provider, g.cfg.LLMModel, g.cfg.LLMBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize %s model: %w", provider, err)
		}
		return thesaurus.Merged{static, thesaurus.NewLLM(model, 0)}, nil
	default:
		return nil, fmt.Errorf("unknown thesaurus %q", g.cfg.Thesaurus)
	}
}

// collaborators returns the Open-Meteo client, with its forecasts cached in
// Redis when redis_url is set and reachable, in memory otherwise.
func (g *Gateway) collaborators(ctx context.Context) (forecast.Geocoder, forecast.Provider) {
	om := forecast.NewOpenMeteo(g.cfg.HTTPTimeout)
	om.GeocodeURL = g.cfg.GeocodeURL
	om.ForecastURL = g.cfg.ForecastURL
	om.Days = g.cfg.ForecastDays

	if g.cfg.CacheTTL <= 0 {
		return om, om
	}
	if g.cfg.RedisURL != "" {
		client, err := forecast.NewRedisClient(ctx, g.cfg.RedisURL)
		if err == nil {
			g.closers = append(g.closers, client)
			return om, forecast.NewRedisCache(om, client, g.cfg.CacheTTL, g.log)
		}
		g.log.Warn().Err(err).Msg("redis unavailable, caching forecasts in memory")
	}
	return om, forecast.NewCache(om, g.cfg.CacheTTL, forecast.WithFetchTimeout(g.cfg.HTTPTimeout))
}

// Close releases connections opened by Build.
func (g *Gateway) Close() error {
	var errs []error
	for _, c := range g.closers {
		errs = append(errs, c.Close())
	}
	g.closers = nil
	return errors.Join(errs...)
}

var (
	intentColor = color.New(color.FgCyan)
	promptColor = color.New(color.FgGreen, color.Bold)
	noticeColor = color.New(color.FgYellow)
)

// Execute answers a single utterance and prints it.
func Execute(ctx context.Context, r chat.Responder, input string, out io.Writer) {
	reply, intent := r.Chat(ctx, input)
	Print(out, reply, intent)
}

// Print writes a reply as "[intent] reply".
func Print(out io.Writer, reply string, intent nlu.Intent) {
	fmt.Fprintf(out, "%s %s\n", intentColor.Sprintf("[%s]", intent), reply)
}

// Run is the plain line REPL. It ends on EOF, /exit, exit or quit, or when
// ctx is cancelled.
func (g *Gateway) Run(ctx context.Context, r chat.Responder, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "WeatherBot chat")
	fmt.Fprintln(out, "Ask me about the weather in a city. Type /exit to quit, /cities <name> to look up a city.")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		promptColor.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch {
		case input == "/exit" || input == "exit" || input == "quit":
			return nil
		case strings.HasPrefix(input, "/cities"):
			g.printSuggestions(out, strings.TrimSpace(strings.TrimPrefix(input, "/cities")))
			continue
		}

		reply, _ := r.Chat(ctx, input)
		fmt.Fprintln(out, reply)
	}
}

func (g *Gateway) printSuggestions(out io.Writer, query string) {
	cities, err := g.Cities()
	if err != nil {
		noticeColor.Fprintf(out, "city list unavailable: %v\n", err)
		return
	}
	names := gazetteer.Suggest(cities, query, suggestLimit)
	if len(names) == 0 {
		noticeColor.Fprintln(out, "no matching city")
		return
	}
	fmt.Fprintln(out, strings.Join(names, ", "))
}
