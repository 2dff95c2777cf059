package orchestration

import (
	"github.com/agbru/workdist/internal/config"
	"github.com/agbru/workdist/internal/schedule"
)

// GetStrategiesToRun builds the strategies selected by name. config.StrategyAll
// yields every registered strategy in sorted order, so concurrent always runs
// before parallel.
func GetStrategiesToRun(name string, factory *schedule.Factory, opts schedule.Options) ([]schedule.Strategy, error) {
	names := []string{name}
	if name == config.StrategyAll {
		names = factory.List()
	}
	strategies := make([]schedule.Strategy, 0, len(names))
	for _, n := range names {
		s, err := factory.New(n, opts)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, nil
}
