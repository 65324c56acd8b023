package config

import (
	"strings"
	"testing"

	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func yamlViper(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(doc)); err != nil {
		t.Fatalf("read yaml: %v", err)
	}
	return v
}

func TestNewScoringEngine(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		check   func(t *testing.T, p scoring.Params)
	}{
		{
			name: "no scoring section keeps defaults",
			doc:  "app:\n  name: test\n",
			check: func(t *testing.T, p scoring.Params) {
				if p != scoring.DefaultParams() {
					t.Errorf("params = %+v", p)
				}
			},
		},
		{
			name: "partial override",
			doc:  "scoring:\n  streak_interval: 5\n  difficulty_multipliers:\n    hard: 3\n",
			check: func(t *testing.T, p scoring.Params) {
				if p.StreakInterval != 5 || p.DifficultyMultipliers.Hard != 3 {
					t.Errorf("override not applied: %+v", p)
				}
				if p.DifficultyMultipliers.Medium != 1.5 || p.CorrectAnswerPoints != 10 {
					t.Errorf("defaults lost: %+v", p)
				}
			},
		},
		{
			name:    "invalid values",
			doc:     "scoring:\n  reward_scale: 0\n",
			wantErr: true,
		},
		{
			name:    "nan value",
			doc:     "scoring:\n  correct_answer_points: .nan\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewScoringEngine(yamlViper(t, tt.doc))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, engine.Params())
		})
	}
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(yamlViper(t, "log:\n  level: debug\n  format: json\n"))
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T", log.Formatter)
	}

	log = NewLogger(yamlViper(t, "log:\n  level: nonsense\n"))
	if log.GetLevel() != logrus.InfoLevel {
		t.Errorf("fallback level = %v", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("fallback formatter = %T", log.Formatter)
	}
}
