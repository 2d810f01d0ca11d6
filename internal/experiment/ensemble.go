package experiment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Ensemble runs independent experiments concurrently. Each run owns its own
// simulation and metrics, so nothing is shared between goroutines.
type Ensemble struct {
	reg     *Registry
	log     *slog.Logger
	metrics func(dynamo.Environment) []dynamo.Metric
}

func NewEnsemble(reg *Registry, logger *slog.Logger) *Ensemble {
	return &Ensemble{reg: reg, log: logger, metrics: reg.DefaultMetrics}
}

// Run returns one result per config in input order. The first setup or run
// error is returned after every run has finished.
func (e *Ensemble) Run(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg Config) {
			defer wg.Done()

			exp := New(cfg)
			env := cfg.Env
			if env == (dynamo.Environment{}) {
				env = dynamo.DefaultEnvironment()
			}
			if err := exp.Setup(e.reg, e.log, e.metrics(env)); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
