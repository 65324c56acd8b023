package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
)

const sessionJSON = `{
  "sessionId": "s-1",
  "studentId": "stu-1",
  "totalTimeSpent": 5400,
  "answers": [
    {"questionId": "q1", "isCorrect": true, "timeSpent": 10, "difficulty": "easy", "subject": "math"},
    {"questionId": "q2", "isCorrect": true, "timeSpent": 10, "difficulty": "easy", "subject": "math"}
  ]
}`

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreFromStdin(t *testing.T) {
	out, err := runRoot(t, sessionJSON, "score")
	if err != nil {
		t.Fatalf("score: %v\n%s", err, out)
	}

	var res scoring.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not a result: %v\n%s", err, out)
	}
	// 20 base, 6 time bonus, 20 retention
	if res.TotalScore != 46 || res.RetentionBonus != 20 {
		t.Errorf("result = %+v", res)
	}
}

func TestScoreWithConfigOverride(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "session.json")
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(sessionPath, []byte(sessionJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("scoring:\n  retention_bonus_points: 0\n  max_time_bonus: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "", "score", "--file", sessionPath, "--config", configPath)
	if err != nil {
		t.Fatalf("score: %v\n%s", err, out)
	}
	var res scoring.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if res.TotalScore != 20 {
		t.Errorf("TotalScore = %d, want 20", res.TotalScore)
	}
}

func TestScoreRejectsBadInput(t *testing.T) {
	if _, err := runRoot(t, "{", "score"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSimilarRequiresQuery(t *testing.T) {
	if _, err := runRoot(t, "", "similar", "--candidate", "a"); err == nil {
		t.Fatal("expected missing flag error")
	}
}
