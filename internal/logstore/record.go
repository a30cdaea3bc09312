package logstore

// Key identifies the model invocation a log record belongs to. Logs may
// contain several records for the same key (retries, re-runs); the index
// keeps exactly one.
type Key struct {
	UUID      string
	BookTitle string
	Model     string
}

// CostDetails carries upstream provider cost breakdowns as logged.
type CostDetails struct {
	PromptCost     float64 `json:"upstream_inference_prompt_cost"`
	CompletionCost float64 `json:"upstream_inference_completions_cost"`
}

// Usage carries token and cost counters for one invocation.
type Usage struct {
	PromptTokens     int         `json:"prompt_tokens"`
	CompletionTokens int         `json:"completion_tokens"`
	TotalTokens      int         `json:"total_tokens"`
	Cost             float64     `json:"cost"`
	CostDetails      CostDetails `json:"cost_details"`
}

// Record is one model invocation result parsed from a JSONL log line.
type Record struct {
	UUID        string `json:"uuid"`
	BookTitle   string `json:"book_title"`
	Model       string `json:"model"`
	Status      string `json:"status"`
	ResponseRaw string `json:"response_raw"`
	Response    string `json:"response"`
	Text        string `json:"text"`
	Error       string `json:"error"`
	Usage       Usage  `json:"usage"`
}

// Key returns the identity triple for the record.
func (r Record) Key() Key {
	return Key{UUID: r.UUID, BookTitle: r.BookTitle, Model: r.Model}
}

// ResponseText returns the free-text response under whichever field name
// the log used. Older logs wrote response_raw; response and text are the
// accepted alternatives.
func (r Record) ResponseText() string {
	if r.ResponseRaw != "" {
		return r.ResponseRaw
	}
	if r.Response != "" {
		return r.Response
	}
	return r.Text
}

// OK reports whether the invocation completed. Records without an
// explicit status fall back to the presence of an error.
func (r Record) OK() bool {
	if r.Status != "" {
		return r.Status == "ok"
	}
	return r.Error == ""
}
