package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	config := filepath.Join(t.TempDir(), "absent.yaml")
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", config, "--log-level", "error"))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "anbn")
	assert.Contains(t, out, "even-palindrome")
}

func TestAccepts_JSON(t *testing.T) {
	out, err := run(t, "accepts", "anbn", "aabb", "ab", "aab", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	var verdicts []bool
	for _, line := range lines {
		var v struct {
			Input    string `json:"input"`
			Accepted bool   `json:"accepted"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		verdicts = append(verdicts, v.Accepted)
	}
	assert.Equal(t, []bool{true, true, false}, verdicts)
}

func TestAccepts_Errors(t *testing.T) {
	_, err := run(t, "accepts", "div3", "12")
	assert.ErrorContains(t, err, "symbol not in alphabet")

	_, err = run(t, "accepts", "ghost", "1")
	assert.ErrorContains(t, err, "machine not found")
}

func TestGraph(t *testing.T) {
	out, err := run(t, "graph", "abc-dfa", "--input", "ab")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))
	assert.Contains(t, out, "class s3 current;")
}

func TestDescribe_Plain(t *testing.T) {
	out, err := run(t, "describe", "anbn", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "anbn (dpda)")
	assert.Contains(t, out, "→push")
}

func TestGrammarCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("S -> aA | b\nA -> bS | ε\n"), 0644))

	out, err := run(t, "grammar", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "right-linear")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("S -> aA\nA bS\n"), 0644))

	_, err = run(t, "grammar", "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:2:")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "automata version")
}
