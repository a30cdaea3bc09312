package stats

import (
	"bytes"
	"encoding/json"
	"testing"

	"relic/internal/logstore"
)

func record(model, status string, promptTokens int, cost float64) logstore.Record {
	return logstore.Record{
		UUID:      "u1",
		BookTitle: "b1",
		Model:     model,
		Status:    status,
		Usage: logstore.Usage{
			PromptTokens: promptTokens,
			TotalTokens:  promptTokens,
			Cost:         cost,
			CostDetails:  logstore.CostDetails{PromptCost: cost},
		},
	}
}

// TestCompute verifies global and per-model accumulation, including
// error counting and cost rounding.
func TestCompute(t *testing.T) {
	stats := Compute([]logstore.Record{
		record("gpt", "ok", 100, 0.0000015),
		record("gpt", "ok", 200, 0.0000015),
		record("claude", "error", 0, 0),
	})
	if stats.TotalRequests != 3 || stats.OKCount != 2 || stats.ErrorCount != 1 {
		t.Fatalf("request counts = %+v", stats)
	}
	if stats.PromptTokens != 300 || stats.TotalTokens != 300 {
		t.Fatalf("token counts = %+v", stats)
	}
	if stats.TotalCost != 0.000003 {
		t.Fatalf("total cost = %v", stats.TotalCost)
	}
	gpt := stats.ByModel["gpt"]
	if gpt.Requests != 2 || gpt.OKCount != 2 || gpt.PromptTokens != 300 {
		t.Fatalf("gpt stats = %+v", gpt)
	}
	claude := stats.ByModel["claude"]
	if claude.Requests != 1 || claude.OKCount != 0 {
		t.Fatalf("claude stats = %+v", claude)
	}
}

// TestComputeStatusFallback verifies records without a status field use
// the error field instead.
func TestComputeStatusFallback(t *testing.T) {
	stats := Compute([]logstore.Record{
		{UUID: "u1", BookTitle: "b1", Model: "gpt"},
		{UUID: "u2", BookTitle: "b1", Model: "gpt", Error: "timeout"},
	})
	if stats.OKCount != 1 || stats.ErrorCount != 1 {
		t.Fatalf("fallback counts = %+v", stats)
	}
}

// TestWriteJSON verifies the report round-trips as JSON.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, Compute(nil)); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded Stats
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
}
