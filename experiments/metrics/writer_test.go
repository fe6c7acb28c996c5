package metrics

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"trails/agent"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "test")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())

	id := uuid.New()
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 0, Order: 2, Mode: agent.ModeOneLocation}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID:     id,
		Seq:    1,
		Agent1: 0,
		Agent2: 1,
		GameMetric: GameMetric{
			Outcome:   "accepted",
			Rounds:    4,
			Locations: [2]int{3, 9},
			Scores:    [2]int{55, -10},
			StartTime: start,
			EndTime:   start.Add(time.Second),
			Duration:  time.Second,
		},
	}}))
	require.NoError(t, w.WriteRoundRecords([]RoundRecord{{
		Game:        id,
		RoundMetric: RoundMetric{Round: 0, Party: 0, Offer: 7, Accuracy: 0.25, Confidence: 1},
	}}))

	configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{{"id", "order", "mode"}, {"0", "2", "one"}}, configs)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{id.String(), "1", "0", "1", "accepted", "4", "3", "9", "55", "-10",
		"2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s"}, games[1])

	rounds := readCSV(t, filepath.Join(w.Dir(), "round_records.csv"))
	require.Equal(t, []string{id.String(), "0", "0", "7", "0.250000", "1.000000"}, rounds[1])
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start([2]int{1, 2})
	c.AddRound(RoundMetric{Round: 0, Party: 0, Offer: 3})
	c.AddRound(RoundMetric{Round: 1, Party: 1, Offer: 0})

	game, rounds := c.Complete("accepted", 2, [2]int{10, 20})

	require.Equal(t, "accepted", game.Outcome)
	require.Equal(t, 2, game.Rounds)
	require.Equal(t, [2]int{1, 2}, game.Locations)
	require.Equal(t, [2]int{10, 20}, game.Scores)
	require.False(t, game.EndTime.Before(game.StartTime))
	require.Len(t, rounds, 2)

	dummy, none := NewDummyCollector().Complete("accepted", 2, [2]int{10, 20})
	require.Empty(t, dummy.Outcome)
	require.Nil(t, none)
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error {
	return f.err
}

func TestWriteCSVReportsClose(t *testing.T) {
	errDisk := errors.New("disk full")
	f := &failingCloser{err: errDisk}

	err := writeCSV(f, "rows.csv", [][]string{{"a", "b"}})

	require.ErrorIs(t, err, errDisk)
	require.Equal(t, "a,b\n", f.String(), "rows are flushed before closing")

	ok := &failingCloser{}
	require.NoError(t, writeCSV(ok, "rows.csv", [][]string{{"a"}}))
}
