package sim

import (
	"os"
	"path/filepath"
	"testing"

	"dexsim/internal/model"
)

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	content := `{"kind":"fund","participant":"alice","amount_base":1000,"amount_quote":1000}

{"kind":"add_liquidity","participant":"alice","amount_base":500,"amount_quote":500}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "session" {
		t.Fatalf("unexpected name %q", scenario.Name)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(scenario.Steps))
	}
	if scenario.Steps[0].Kind != model.OpFund || scenario.Steps[0].AmountBase != 1000 {
		t.Fatalf("unexpected first step: %+v", scenario.Steps[0])
	}
}

func TestLoadScenarioMissingKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	if err := os.WriteFile(path, []byte(`{"participant":"alice"}`+"\n"), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("expected error for missing kind")
	}
}

func TestLoadScenarioEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("expected error for empty scenario")
	}
}
