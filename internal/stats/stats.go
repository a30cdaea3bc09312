// Package stats aggregates token usage and cost from inference logs.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"relic/internal/logstore"
)

// ModelStats accumulates counters for one model.
type ModelStats struct {
	Requests         int     `json:"requests"`
	OKCount          int     `json:"ok_count"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	PromptCost       float64 `json:"prompt_cost"`
	CompletionCost   float64 `json:"completion_cost"`
	TotalCost        float64 `json:"total_cost"`
}

// Stats is the full usage report over a set of log streams. Every
// well-formed record counts, including retries later superseded by the
// extraction index.
type Stats struct {
	TotalRequests    int                   `json:"total_requests"`
	OKCount          int                   `json:"ok_count"`
	ErrorCount       int                   `json:"error_count"`
	PromptTokens     int                   `json:"prompt_tokens"`
	CompletionTokens int                   `json:"completion_tokens"`
	TotalTokens      int                   `json:"total_tokens"`
	PromptCost       float64               `json:"prompt_cost"`
	CompletionCost   float64               `json:"completion_cost"`
	TotalCost        float64               `json:"total_cost"`
	ByModel          map[string]ModelStats `json:"by_model"`
}

// Compute folds log records into a usage report.
func Compute(records []logstore.Record) Stats {
	stats := Stats{ByModel: make(map[string]ModelStats)}
	for _, record := range records {
		model := record.Model
		if model == "" {
			model = "unknown"
		}
		perModel := stats.ByModel[model]

		stats.TotalRequests++
		perModel.Requests++
		if record.OK() {
			stats.OKCount++
			perModel.OKCount++
		} else {
			stats.ErrorCount++
		}

		usage := record.Usage
		stats.PromptTokens += usage.PromptTokens
		stats.CompletionTokens += usage.CompletionTokens
		stats.TotalTokens += usage.TotalTokens
		stats.PromptCost += usage.CostDetails.PromptCost
		stats.CompletionCost += usage.CostDetails.CompletionCost
		stats.TotalCost += usage.Cost

		perModel.PromptTokens += usage.PromptTokens
		perModel.CompletionTokens += usage.CompletionTokens
		perModel.TotalTokens += usage.TotalTokens
		perModel.PromptCost += usage.CostDetails.PromptCost
		perModel.CompletionCost += usage.CostDetails.CompletionCost
		perModel.TotalCost += usage.Cost

		stats.ByModel[model] = perModel
	}

	stats.PromptCost = roundCost(stats.PromptCost)
	stats.CompletionCost = roundCost(stats.CompletionCost)
	stats.TotalCost = roundCost(stats.TotalCost)
	for model, perModel := range stats.ByModel {
		perModel.PromptCost = roundCost(perModel.PromptCost)
		perModel.CompletionCost = roundCost(perModel.CompletionCost)
		perModel.TotalCost = roundCost(perModel.TotalCost)
		stats.ByModel[model] = perModel
	}
	return stats
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, stats Stats) error {
	payload, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if _, err := w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

// roundCost keeps six decimal places, enough for per-token prices.
func roundCost(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}
