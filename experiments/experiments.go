package experiments

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"trails/agent"
	"trails/engine"
	"trails/experiments/metrics"
	"trails/game"
)

var orderConfigs = []metrics.AgentConfig{
	{ID: 0, Order: 0, Mode: agent.ModeAllLocations},
	{ID: 1, Order: 1, Mode: agent.ModeAllLocations},
	{ID: 2, Order: 2, Mode: agent.ModeAllLocations},
}

var modeConfigs = []metrics.AgentConfig{
	{ID: 0, Order: 0, Mode: agent.ModeAllLocations},
	{ID: 1, Order: 1, Mode: agent.ModeAllLocations},
	{ID: 2, Order: 1, Mode: agent.ModeOneLocation},
}

// RunOrderExperiment pairs every order against the order-0 baseline, taking
// turns as initiator.
func RunOrderExperiment(root string, games int, seed uint64) (string, error) {
	baseline := orderConfigs[0]
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range orderConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
		if config != baseline {
			matchUps = append(matchUps, [2]metrics.AgentConfig{config, baseline})
		}
	}
	return runExperiment(root, "order", orderConfigs, matchUps, games, seed)
}

// RunModeExperiment compares order-1 agents simulating one versus all
// partner locations against the baseline.
func RunModeExperiment(root string, games int, seed uint64) (string, error) {
	matchUps := [][2]metrics.AgentConfig{
		{modeConfigs[1], modeConfigs[0]},
		{modeConfigs[2], modeConfigs[0]},
	}
	return runExperiment(root, "mode", modeConfigs, matchUps, games, seed)
}

// runExperiment plays games negotiations per match-up, each on a freshly
// generated scenario, and writes the records under root. It returns the
// directory written to.
func runExperiment(root, name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int, seed uint64) (string, error) {
	rng := rand.New(rand.NewSource(seed))
	count := 0
	gameRecords := []metrics.GameRecord{}
	roundRecords := []metrics.RoundRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			s, err := game.Generate(rng)
			if err != nil {
				return "", fmt.Errorf("failed to generate scenario: %w", err)
			}

			result, gameMetric, roundMetrics := runGame(s, matchUp, rng)
			count++
			id := uuid.New()
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Seq:        count,
				Agent1:     matchUp[0].ID,
				Agent2:     matchUp[1].ID,
				GameMetric: gameMetric,
			})
			for _, rm := range roundMetrics {
				roundRecords = append(roundRecords, metrics.RoundRecord{
					Game:        id,
					RoundMetric: rm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d: %s with scores %v", mi+1, len(matchUps), i+1, result.Outcome, result.Scores)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteRoundRecords(roundRecords); err != nil {
		return "", fmt.Errorf("failed to write round records: %w", err)
	}
	log.Info().Msg("stored round records")

	return writer.Dir(), nil
}

// runGame negotiates s between the two configured agents.
func runGame(s *game.Scenario, matchUp [2]metrics.AgentConfig, rng game.Rand) (engine.Result, metrics.GameMetric, []metrics.RoundMetric) {
	players := [2]engine.Negotiator{}
	for party, config := range matchUp {
		players[party] = createAgent(config, party, rng)
	}
	collector := metrics.NewCollector()
	e := engine.New(s, players, engine.WithCollector(collector))

	result, gameMetric := e.Run()
	return result, gameMetric, result.History
}

func createAgent(config metrics.AgentConfig, party int, rng game.Rand) *agent.Agent {
	return agent.New(config.Order, party, agent.WithMode(config.Mode), agent.WithRand(rng))
}
