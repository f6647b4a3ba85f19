package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Panandika/model-routing-benchmark/internal/bench"
	"github.com/Panandika/model-routing-benchmark/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestRunFailsWithoutAPIKey(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")

	_, err := execute(t, "run", "--env-file", filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	require.Contains(t, err.Error(), config.EnvAPIKey)
}

func TestDoctorReportsHealthyEnvironment(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "test-key")

	dir := t.TempDir()
	questions := []bench.Question{{ID: 1, Difficulty: "easy", Question: "q"}}
	data, err := json.Marshal(questions)
	require.NoError(t, err)
	questionsPath := filepath.Join(dir, "questions-benchmark.json")
	require.NoError(t, os.WriteFile(questionsPath, data, 0o644))

	t.Setenv("ROUTEBENCH_BENCHMARK_QUESTIONS_FILE", questionsPath)

	out, err := execute(t, "doctor", "--env-file", filepath.Join(dir, "nope.env"))
	require.NoError(t, err)
	require.Contains(t, out, "Config OK")
	require.Contains(t, out, "1 questions")
}

func TestDoctorFailsOnMissingQuestions(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "test-key")
	t.Setenv("ROUTEBENCH_BENCHMARK_QUESTIONS_FILE", filepath.Join(t.TempDir(), "missing.json"))

	_, err := execute(t, "doctor", "--env-file", filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
}

func TestDoctorWarnsOnIgnoredModels(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "test-key")

	dir := t.TempDir()
	questions := []bench.Question{{ID: 1, Difficulty: "easy", Question: "q"}}
	data, err := json.Marshal(questions)
	require.NoError(t, err)
	questionsPath := filepath.Join(dir, "questions-benchmark.json")
	require.NoError(t, os.WriteFile(questionsPath, data, 0o644))

	cfgPath := filepath.Join(dir, "routebench.yaml")
	configYAML := "routing:\n  models:\n    - openrouter/auto\n    - openai/gpt-4o\nbenchmark:\n  questions_file: " + questionsPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))

	out, err := execute(t, "doctor", "--config", cfgPath, "--env-file", filepath.Join(dir, "nope.env"))
	require.NoError(t, err)
	require.Contains(t, out, "ignored")
	require.Contains(t, out, "openai/gpt-4o")
}
