package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("summarize_notes",
		mcp.WithPromptDescription("Summarize the notes collection and suggest how to organize it"),
	), s.handleSummarizePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("draft_note",
		mcp.WithPromptDescription("Draft a new markdown note on a topic and save it"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the note is about"),
			mcp.RequiredArgument(),
		),
	), s.handleDraftPrompt)
}

func (s *Server) handleSummarizePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Summarize all notes",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: `Review my notes. Follow these steps:

1. Use list_notes to see every note
2. Use read_note on each one that looks relevant
3. Write a short summary grouped by theme, and point out duplicates or notes that could be merged

Do not change or delete anything.`,
				},
			},
		},
	}, nil
}

func (s *Server) handleDraftPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draft a note about: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Write a markdown note about "%s". Follow these steps:

1. Use list_notes to check whether a note on this topic already exists
2. If one does, read it with read_note and extend it, keeping its id
3. Otherwise use save_note without an id, titled "%s", starting the body with "# %s"

Keep it concise and well structured.`, topic, topic, topic),
				},
			},
		},
	}, nil
}
