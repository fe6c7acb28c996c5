package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"trails/agent"
	"trails/engine"
	"trails/experiments"
	"trails/game"
	"trails/meta"
)

var errInvalidFlag = errors.New("invalid flag")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// run parses args and plays one game or one experiment. Every failure is
// returned so deferred cleanup, such as stopping the profiler, still runs.
func run(args []string) error {
	flags := flag.NewFlagSet("trails", flag.ContinueOnError)
	initiatorOrder := flags.Int("initiator", 2, "Theory of mind order of the initiator")
	responderOrder := flags.Int("responder", 2, "Theory of mind order of the responder")
	mode := flags.String("mode", "all", "Locations simulated by agents: all or one")
	seed := flags.Uint64("seed", 0, "Seed for scenario generation and agents (0 picks one at random)")
	scenarioPath := flags.String("scenario", "", "Load the scenario from this YAML file")
	savePath := flags.String("save-scenario", "", "Save the scenario to this YAML file")
	reveal := flags.Bool("reveal", false, "Reveal both goals to both agents after every proposal")
	experiment := flags.String("experiment", "", "Run an experiment instead of a single game: order or mode")
	games := flags.Int("games", meta.NUM_GAMES, "Games per experiment match-up")
	outDir := flags.String("out", "experiments", "Directory for experiment records")
	profileDir := flags.String("profile", "", "Write a CPU profile to this directory")
	verbose := flags.Bool("v", false, "Log every round")
	if err := flags.Parse(args); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet, profile.NoShutdownHook).Stop()
	}
	if *seed == 0 {
		*seed = uint64(rand.Int63())
	}

	if *experiment != "" {
		return runExperiment(*experiment, *outDir, *games, *seed)
	}

	if *initiatorOrder < 0 || *initiatorOrder > meta.MAX_ORDER || *responderOrder < 0 || *responderOrder > meta.MAX_ORDER {
		return fmt.Errorf("%w: orders must be between 0 and %d", errInvalidFlag, meta.MAX_ORDER)
	}
	agentMode, err := parseMode(*mode)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	s, err := loadScenario(*scenarioPath, rng)
	if err != nil {
		return err
	}
	if *savePath != "" {
		if err := game.SaveScenarioFile(*savePath, s); err != nil {
			return fmt.Errorf("failed to save scenario: %w", err)
		}
		log.Info().Msgf("scenario saved to %s", *savePath)
	}

	log.Info().Msgf("seed %d, goals (I,R): %v %v", *seed, s.Goal(s.Location(0)), s.Goal(s.Location(1)))
	log.Info().Msgf("chips per color: %s", formatChips(s.Codec().Capacities()))
	log.Info().Msgf("initiator chips: %s", formatChips(s.Chips(0)))
	log.Info().Msgf("responder chips: %s", formatChips(s.Chips(1)))

	players := [2]engine.Negotiator{
		agent.New(*initiatorOrder, 0, agent.WithMode(agentMode), agent.WithRand(rng), agent.WithLogger(log.Logger)),
		agent.New(*responderOrder, 1, agent.WithMode(agentMode), agent.WithRand(rng), agent.WithLogger(log.Logger)),
	}
	options := []engine.Option{}
	if *reveal {
		options = append(options, engine.WithRevealGoals())
	}
	result, _ := engine.New(s, players, options...).Run()

	log.Info().Msgf("%s after %d rounds", result.Outcome, result.Rounds)
	log.Info().Msgf("initiator keeps %s", formatChips(s.Codec().Decode(result.Allocation)))
	log.Info().Msgf("final scores (I,R): %v", result.Scores)
	return nil
}

func runExperiment(name, outDir string, games int, seed uint64) error {
	var (
		dir string
		err error
	)
	switch name {
	case "order":
		dir, err = experiments.RunOrderExperiment(outDir, games, seed)
	case "mode":
		dir, err = experiments.RunModeExperiment(outDir, games, seed)
	default:
		return fmt.Errorf("%w: unknown experiment %q", errInvalidFlag, name)
	}
	if err != nil {
		return fmt.Errorf("%s experiment failed: %w", name, err)
	}
	log.Info().Msgf("records written to %s", dir)
	return nil
}

func loadScenario(path string, rng game.Rand) (*game.Scenario, error) {
	if path != "" {
		s, err := game.LoadScenarioFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		log.Info().Msgf("loaded scenario from %s", path)
		return s, nil
	}
	s, err := game.Generate(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate scenario: %w", err)
	}
	return s, nil
}

func parseMode(mode string) (agent.Mode, error) {
	switch mode {
	case "all":
		return agent.ModeAllLocations, nil
	case "one":
		return agent.ModeOneLocation, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", errInvalidFlag, mode)
	}
}

func formatChips(counts []int) string {
	parts := make([]string, len(counts))
	for i, n := range counts {
		name := "?"
		if i < len(meta.COLOR_NAMES) {
			name = meta.COLOR_NAMES[i]
		}
		parts[i] = fmt.Sprintf("%s:%d", name, n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
