package scoring

import (
	"context"

	"github.com/phishguard/phishguard/internal/demoscorer"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/model"
)

// LocalScorer runs the demo engine in-process, with no network hop. It serves
// demos and tests where a separate scoring service is not running.
type LocalScorer struct {
	engine *demoscorer.Engine
	logger logging.Logger
}

// NewLocalScorer creates an in-process scorer. cfg.HighRecallThreshold seeds
// the advertised threshold; zero means the demo default.
func NewLocalScorer(cfg Config, logger logging.Logger) *LocalScorer {
	engineCfg := demoscorer.DefaultConfig()
	if cfg.HighRecallThreshold > 0 && cfg.HighRecallThreshold < 1 {
		engineCfg.HighRecallThreshold = cfg.HighRecallThreshold
	}
	return &LocalScorer{
		engine: demoscorer.NewEngine(engineCfg, logger),
		logger: logger.With(logging.Field{Key: "backend", Value: "demo"}),
	}
}

func (ls *LocalScorer) Score(ctx context.Context, text string) (*model.AnalysisResult, error) {
	return ls.engine.Score(ctx, text)
}

func (ls *LocalScorer) Close() error {
	ls.logger.Info("closing demo scorer")
	return nil
}
