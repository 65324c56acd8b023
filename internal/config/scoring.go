package config

import (
	"fmt"

	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/spf13/viper"
)

// NewScoringEngine starts from the default parameters and overlays the keys set under scoring.*
func NewScoringEngine(config *viper.Viper) (*scoring.Engine, error) {
	params := scoring.DefaultParams()
	if config.IsSet("scoring") {
		if err := config.UnmarshalKey("scoring", &params); err != nil {
			return nil, fmt.Errorf("failed to read scoring config: %w", err)
		}
	}

	engine, err := scoring.NewEngine(params)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return engine, nil
}
