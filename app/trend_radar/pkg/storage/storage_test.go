package storage

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/engine"
	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "radar"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=radar sslmode=disable", dsn)

	dsn = DSN(config.DBConfig{Host: "db", Port: 6543, SSLMode: "require"})
	assert.Contains(t, dsn, "port=6543")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestRunFromState(t *testing.T) {
	report := &model.StrategyReport{Insights: model.Insights{PatternEN: "Carousels win"}}

	cases := []struct {
		name    string
		st      engine.State
		err     error
		outcome string
	}{
		{"ok", engine.State{Report: report}, nil, OutcomeOK},
		{"repaired", engine.State{Report: report, Repaired: true}, nil, OutcomeRepaired},
		{"fallback", engine.State{RawAnalysis: "raw", RenderedText: "raw"}, nil, OutcomeFallback},
		{"failed", engine.State{}, errors.New("strategy stage: down"), OutcomeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.st.RunID = "run-1"
			tc.st.UserMessage = "hi"
			run, err := RunFromState(&tc.st, "42", tc.err)
			require.NoError(t, err)

			assert.Equal(t, "run-1", run.RunID)
			assert.Equal(t, "42", run.ChatID)
			assert.Equal(t, "hi", run.Message)
			assert.Equal(t, tc.outcome, run.Outcome)
			if tc.st.Report != nil {
				var back model.StrategyReport
				require.NoError(t, json.Unmarshal(run.Report, &back))
				assert.Equal(t, "Carousels win", back.Insights.PatternEN.String())
			} else {
				assert.Nil(t, run.Report)
			}
			if tc.err != nil {
				assert.Equal(t, tc.err.Error(), run.Error)
			}
		})
	}
}
