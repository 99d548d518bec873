package service

import (
	"context"
	"log/slog"

	"github.com/statement-ledger/internal/categorize"
	"github.com/statement-ledger/internal/config"
)

// MaintenanceServiceImpl implements the MaintenanceService interface
type MaintenanceServiceImpl struct {
	engine        *categorize.Engine
	recategorizer *categorize.Recategorizer
	rulesCfg      config.RulesConfig
	logger        *slog.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(logger *slog.Logger, engine *categorize.Engine, recategorizer *categorize.Recategorizer, rulesCfg config.RulesConfig) MaintenanceService {
	return &MaintenanceServiceImpl{
		engine:        engine,
		recategorizer: recategorizer,
		rulesCfg:      rulesCfg,
		logger:        logger,
	}
}

// Recategorize re-runs the rule engine over the whole store
func (s *MaintenanceServiceImpl) Recategorize(ctx context.Context) (categorize.Result, error) {
	return s.recategorizer.Run(ctx)
}

// ReloadRules re-reads the configured rule file and swaps it in, returning
// the number of active rules. Without a configured path the built-in
// defaults are re-applied.
func (s *MaintenanceServiceImpl) ReloadRules(ctx context.Context) (int, error) {
	rules := categorize.DefaultRules()
	if s.rulesCfg.Path != "" {
		loaded, err := categorize.LoadRuleFile(s.rulesCfg.Path)
		if err != nil {
			return 0, err
		}
		rules = loaded
	}

	if err := s.engine.Reload(rules); err != nil {
		return 0, err
	}

	s.logger.Info("Rules reloaded", "path", s.rulesCfg.Path, "count", s.engine.RuleCount())
	return s.engine.RuleCount(), nil
}
