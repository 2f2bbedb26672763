package sim

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dexsim/internal/model"
)

// Scenario is a named sequence of scripted steps applied in order.
type Scenario struct {
	Name  string
	Steps []model.ScenarioStep
}

// DefaultScenario mirrors the canonical session: two providers seed the pool,
// two traders swap in both directions, and the providers withdraw in full.
// Amounts are micro-units.
func DefaultScenario() Scenario {
	return Scenario{
		Name: "default",
		Steps: []model.ScenarioStep{
			{Kind: model.OpFund, Participant: "provider_one", AmountBase: 1_000_000, AmountQuote: 2_000_000},
			{Kind: model.OpFund, Participant: "provider_two", AmountBase: 1_000_000, AmountQuote: 2_000_000},
			{Kind: model.OpFund, Participant: "trader_one", AmountBase: 500_000, AmountQuote: 500_000},
			{Kind: model.OpFund, Participant: "trader_two", AmountBase: 500_000, AmountQuote: 500_000},
			{Kind: model.OpAddLiquidity, Participant: "provider_one", AmountBase: 500_000, AmountQuote: 1_000_000},
			{Kind: model.OpAddLiquidity, Participant: "provider_two", AmountBase: 500_000, AmountQuote: 1_000_000},
			{Kind: model.OpSwap, Participant: "trader_one", AssetIn: model.AssetBase, AmountIn: 100_000},
			{Kind: model.OpSwap, Participant: "trader_two", AssetIn: model.AssetQuote, AmountIn: 200_000},
			{Kind: model.OpRemoveLiquidity, Participant: "provider_one"},
			{Kind: model.OpRemoveLiquidity, Participant: "provider_two"},
		},
	}
}

// LoadScenario reads a scenario from a JSONL file, one step per line.
func LoadScenario(path string) (Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open scenario: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	scenario := Scenario{Name: name}

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var step model.ScenarioStep
		if err := json.Unmarshal(line, &step); err != nil {
			return Scenario{}, fmt.Errorf("parse scenario line %d: %w", lineNo, err)
		}
		if step.Kind == "" {
			return Scenario{}, fmt.Errorf("scenario line %d: missing kind", lineNo)
		}
		if step.Participant == "" {
			return Scenario{}, fmt.Errorf("scenario line %d: missing participant", lineNo)
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return Scenario{}, fmt.Errorf("scenario %s has no steps", path)
	}

	return scenario, nil
}
