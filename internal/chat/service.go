package chat

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"weatherbot/internal/compose"
	"weatherbot/internal/entity"
	"weatherbot/internal/forecast"
	"weatherbot/internal/nlu"
)

// Service answers one utterance at a time. It holds no conversation state
// and is safe for concurrent use.
type Service struct {
	engine    *nlu.Engine
	extractor *entity.Extractor
	geocoder  forecast.Geocoder
	provider  forecast.Provider

	now     func() time.Time
	pick    func(n int) int
	timeout time.Duration
	log     zerolog.Logger
}

type ServiceOption func(*Service)

// WithClock sets the source of "today".
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithRand makes canned reply selection draw from r.
func WithRand(r *rand.Rand) ServiceOption {
	return func(s *Service) {
		var mu sync.Mutex
		s.pick = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return r.IntN(n)
		}
	}
}

// WithTimeout bounds the geocode and forecast calls of one turn.
func WithTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.timeout = d
	}
}

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = l
	}
}

func NewService(engine *nlu.Engine, extractor *entity.Extractor, geocoder forecast.Geocoder, provider forecast.Provider, opts ...ServiceOption) *Service {
	s := &Service{
		engine:    engine,
		extractor: extractor,
		geocoder:  geocoder,
		provider:  provider,
		now:       time.Now,
		pick:      rand.IntN,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat classifies text and returns the reply with the detected intent.
// Every failure ends up as reply text. Log lines of one call share a turn id.
func (s *Service) Chat(ctx context.Context, text string) (reply string, intent nlu.Intent) {
	log := s.log.With().Str("turn", uuid.NewString()).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("text", text).Msg("chat turn panicked")
			reply = apologyReply
		}
	}()

	corrected := s.engine.Correct(text)
	intent = s.engine.MatchCorrected(corrected)
	log.Debug().Str("corrected", corrected).Str("intent", intent.String()).Msg("intent detected")

	if intent != nlu.Weather {
		return s.canned(intent), intent
	}
	return s.weather(ctx, log, text), intent
}

func (s *Service) canned(intent nlu.Intent) string {
	replies := s.engine.Replies(intent)
	if len(replies) == 0 {
		return ""
	}
	return replies[s.pick(len(replies))]
}

func (s *Service) weather(ctx context.Context, log zerolog.Logger, text string) string {
	ents := s.extractor.Extract(text)
	log.Debug().
		Str("city", ents.City).
		Str("date", ents.DateKeyword).
		Strs("aspects", ents.Aspects).
		Msg("entities extracted")

	if !ents.HasCity {
		return missingCityReply
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snap, err := forecast.Lookup(ctx, s.geocoder, s.provider, ents.City, ents.DateKeyword, s.now())
	if err != nil {
		log.Warn().Err(err).Str("city", ents.City).Msg("weather lookup failed")
		return errorReply(ents.City, err)
	}

	log.Debug().
		Str("city", snap.City).
		Str("date", snap.Day.Date.Format(time.DateOnly)).
		Int("code", snap.Day.WeatherCode).
		Msg("forecast resolved")
	return compose.Compose(snap, ents.Aspects)
}
