package session

import (
	"log/slog"
	"time"

	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/rules"
)

// DefaultRulesTimeout bounds each call to the rules service.
const DefaultRulesTimeout = 5 * time.Second

type config struct {
	rules        rules.Service
	rulesTimeout time.Duration
	logger       *slog.Logger
	startFEN     string
}

func defaultConfig() config {
	return config{
		rules:        rules.NewNative(),
		rulesTimeout: DefaultRulesTimeout,
		logger:       log,
		startFEN:     engine.InitialFEN,
	}
}

// Option configures a Game or, through NewManager, every game a Manager creates.
type Option func(*config)

// WithRules sets the legal-move service consulted before every move.
func WithRules(svc rules.Service) Option {
	return func(c *config) {
		if svc != nil {
			c.rules = svc
		}
	}
}

// WithRulesTimeout bounds each rules service call. Non-positive values are ignored.
func WithRulesTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.rulesTimeout = d
		}
	}
}

// WithLogger sets the logger a game reports to.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartFEN starts the game from fen instead of the standard position.
func WithStartFEN(fen string) Option {
	return func(c *config) {
		c.startFEN = fen
	}
}
