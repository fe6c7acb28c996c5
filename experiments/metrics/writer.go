package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"trails/agent"
)

type AgentConfig struct {
	ID    int
	Order int
	Mode  agent.Mode
}

type GameRecord struct {
	ID     uuid.UUID
	Seq    int
	Agent1 int // AgentConfig.ID of the initiator
	Agent2 int // AgentConfig.ID of the responder
	GameMetric
}

type RoundRecord struct {
	Game uuid.UUID // GameRecord.ID
	RoundMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := [][]string{{"id", "order", "mode"}}
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Order),
			config.Mode.String(),
		})
	}
	return w.write("agent_configs.csv", rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := [][]string{{"id", "seq", "agent1", "agent2", "outcome", "rounds", "location1", "location2", "score1", "score2", "start_time", "end_time", "duration"}}
	for _, record := range records {
		rows = append(rows, []string{
			record.ID.String(),
			strconv.Itoa(record.Seq),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			record.Outcome,
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Locations[0]),
			strconv.Itoa(record.Locations[1]),
			strconv.Itoa(record.Scores[0]),
			strconv.Itoa(record.Scores[1]),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.write("game_records.csv", rows)
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	rows := [][]string{{"game", "round", "party", "offer", "accuracy", "confidence"}}
	for _, record := range records {
		rows = append(rows, []string{
			record.Game.String(),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Party),
			strconv.Itoa(record.Offer),
			strconv.FormatFloat(record.Accuracy, 'f', 6, 64),
			strconv.FormatFloat(record.Confidence, 'f', 6, 64),
		})
	}
	return w.write("round_records.csv", rows)
}

func (w *Writer) write(name string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return writeCSV(f, name, rows)
}

// writeCSV writes rows to f and closes it.
func writeCSV(f io.WriteCloser, name string, rows [][]string) error {
	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}
