package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"trails/experiments/metrics"
)

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestRunExperiment(t *testing.T) {
	root := t.TempDir()
	baseline := orderConfigs[0]
	matchUps := [][2]metrics.AgentConfig{{baseline, baseline}}

	dir, err := runExperiment(root, "baseline", orderConfigs[:1], matchUps, 2, 42)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "baseline"), filepath.Dir(dir))
	require.Equal(t, 2, countRows(t, filepath.Join(dir, "agent_configs.csv")))
	require.Equal(t, 3, countRows(t, filepath.Join(dir, "game_records.csv")))
	require.GreaterOrEqual(t, countRows(t, filepath.Join(dir, "round_records.csv")), 3, "every game has at least one round")
}

func TestOrderMatchUps(t *testing.T) {
	for _, config := range orderConfigs {
		require.Equal(t, config.ID, config.Order, "order experiment agents are identified by their order")
	}
	require.Equal(t, modeConfigs[1].Order, modeConfigs[2].Order)
	require.NotEqual(t, modeConfigs[1].Mode, modeConfigs[2].Mode)
}
