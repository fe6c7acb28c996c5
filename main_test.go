package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run("profile is written when a run fails", func(t *testing.T) {
		dir := t.TempDir()

		err := run([]string{"-profile", dir, "-mode", "sideways"})

		require.ErrorIs(t, err, errInvalidFlag)
		require.FileExists(t, filepath.Join(dir, "cpu.pprof"))
	})

	t.Run("rejecting orders out of range", func(t *testing.T) {
		err := run([]string{"-initiator", "9"})

		require.ErrorIs(t, err, errInvalidFlag)
	})

	t.Run("rejecting unknown experiments", func(t *testing.T) {
		err := run([]string{"-experiment", "tournament"})

		require.ErrorIs(t, err, errInvalidFlag)
	})

	t.Run("replaying a saved scenario with revealed goals", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")

		require.NoError(t, run([]string{"-initiator", "0", "-responder", "0", "-seed", "3", "-save-scenario", path}))
		require.FileExists(t, path)
		require.NoError(t, run([]string{"-initiator", "1", "-responder", "0", "-seed", "3", "-scenario", path, "-reveal"}))
	})
}
