package scheduler

import (
	"context"
	"io"
	"strings"

	"StockTracker/internal/collector"
	"StockTracker/internal/notifier"
	"StockTracker/internal/strategy"
	"StockTracker/internal/trace"

	"github.com/rs/zerolog/log"
)

// QuitCommand ends the session (case-insensitive).
const QuitCommand = "QUIT"

// Scheduler drives one symbol lookup at a time.
type Scheduler struct {
	Collector *collector.Collector
	Notifier  *notifier.ConsoleNotifier
	Throttle  *Throttle
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, cn *notifier.ConsoleNotifier, th *Throttle) *Scheduler {
	return &Scheduler{
		Collector: col,
		Notifier:  cn,
		Throttle:  th,
	}
}

// Run prints the banner, serves the prompt until quit or end of input, and
// prints the farewell. Only an input failure is returned.
func (s *Scheduler) Run(ctx context.Context, in io.Reader) error {
	s.trySend(notifier.Banner())
	err := s.Notifier.StartPrompt(ctx, in, s.HandleCommand)
	s.trySend(notifier.Farewell)
	return err
}

// HandleCommand processes one input line and reports whether the session should end.
func (s *Scheduler) HandleCommand(ctx context.Context, line string) bool {
	symbol := strings.ToUpper(strings.TrimSpace(line))
	switch symbol {
	case QuitCommand:
		return true
	case "":
		return false
	default:
		s.RunLookup(ctx, symbol)
		return false
	}
}

// RunLookup fetches, evaluates and prints one symbol. Failures are reported
// to the console and never end the session.
func (s *Scheduler) RunLookup(ctx context.Context, symbol string) {
	ctx = trace.WithTraceID(ctx, trace.NewTraceID())
	logger := trace.Logger(ctx)

	if err := s.Throttle.Wait(ctx); err != nil {
		logger.Warn().Err(err).Str("symbol", symbol).Msg("lookup abandoned while throttled")
		return
	}
	defer s.Throttle.Done()

	logger.Info().Str("symbol", symbol).Msg("lookup started")
	snap, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		logger.Error().Err(err).Str("symbol", symbol).Str("kind", collector.Kind(err)).Msg("lookup failed")
		s.trySend(notifier.FormatError(collector.LookupError(err).Error()))
		return
	}

	signal, err := strategy.Evaluate(snap)
	if err != nil {
		logger.Error().Err(err).Str("symbol", symbol).Msg("evaluate failed")
		s.trySend(notifier.FormatError(err.Error()))
		return
	}

	logger.Info().
		Str("symbol", symbol).
		Str("action", string(signal.Recommendation.Action)).
		Msg("lookup done")
	s.trySend(notifier.FormatReport(signal))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(text); err != nil {
		log.Error().Err(err).Msg("send output")
	}
}
