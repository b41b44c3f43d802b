package domain

// ToolCall is a single planned invocation of a catalog tool.
type ToolCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// IntentResult is the outcome of analyzing one user message.
type IntentResult struct {
	Intent    string     `json:"intent"`
	NeedsData bool       `json:"needs_data"`
	Calls     []ToolCall `json:"functions"`
}

// ToolResult pairs an executed tool with its structured output.
type ToolResult struct {
	Tool string `json:"function"`
	Data any    `json:"data"`
}
