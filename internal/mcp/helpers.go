package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mdnotes/internal/domain"
)

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// resultError turns a failed operation result into a tool error.
func resultError(op string, r domain.Result) error {
	if r.Details != nil && r.Details.ErrorName != "" {
		return fmt.Errorf("%s: %s (%s)", op, r.Error, r.Details.ErrorName)
	}
	return fmt.Errorf("%s: %s", op, r.Error)
}

// stringArg returns a string argument, or "" if absent.
func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// noteSummary is the list view of a note, without its body.
type noteSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

func summarize(notes []domain.Note) []noteSummary {
	out := make([]noteSummary, len(notes))
	for i, n := range notes {
		out[i] = noteSummary{ID: n.ID, Title: n.Title, Date: n.Date}
	}
	return out
}
