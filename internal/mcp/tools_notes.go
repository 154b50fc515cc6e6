package mcpserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"mdnotes/internal/domain"
)

func (s *Server) registerNoteTools() {
	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List every note with its id, title and date, newest first"),
	), s.handleListNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full markdown content of a note"),
		mcp.WithString("id", mcp.Description("Note ID"), mcp.Required()),
	), s.handleReadNote)

	s.mcp.AddTool(mcp.NewTool("save_note",
		mcp.WithDescription("Create a note, or overwrite an existing one"),
		mcp.WithString("id", mcp.Description("Note ID (optional, a new one is generated if omitted)")),
		mcp.WithString("title", mcp.Description("Note title"), mcp.Required()),
		mcp.WithString("content", mcp.Description("Markdown body")),
	), s.handleSaveNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note permanently"),
		mcp.WithString("id", mcp.Description("Note ID"), mcp.Required()),
		mcp.WithDestructiveHintAnnotation(true),
	), s.handleDeleteNote)

	s.mcp.AddTool(mcp.NewTool("get_notes_dir",
		mcp.WithDescription("Return the directory the notes are stored in"),
	), s.handleGetNotesDir)
}

func (s *Server) handleListNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.client.LoadAllMarkdown(ctx)
	if !res.Success {
		return nil, resultError("list notes", res.Result)
	}
	return jsonResult(summarize(res.Notes))
}

func (s *Server) handleReadNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req.GetArguments(), "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	note, err := s.findNote(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(note)
}

func (s *Server) handleSaveNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	title := stringArg(args, "title")
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	id := stringArg(args, "id")
	if id == "" {
		id = uuid.NewString()
	}

	res := s.client.SaveMarkdown(ctx, id, title, stringArg(args, "content"))
	if !res.Success {
		return nil, resultError("save note", res.Result)
	}
	s.emitNotesChanged(ctx)
	return jsonResult(map[string]string{"id": id, "filePath": res.FilePath})
}

func (s *Server) handleDeleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(req.GetArguments(), "id")
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	res := s.client.DeleteMarkdown(ctx, id)
	if !res.Success {
		return nil, resultError("delete note", res)
	}
	s.emitNotesChanged(ctx)
	return textResult(fmt.Sprintf("Note %s deleted", id)), nil
}

func (s *Server) handleGetNotesDir(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res := s.client.GetMarkdownDir(ctx)
	if !res.Success {
		return nil, resultError("get notes dir", res.Result)
	}
	return textResult(res.Path), nil
}

// findNote loads all notes and returns the one with id.
func (s *Server) findNote(ctx context.Context, id string) (domain.Note, error) {
	res := s.client.LoadAllMarkdown(ctx)
	if !res.Success {
		return domain.Note{}, resultError("read note", res.Result)
	}
	for _, n := range res.Notes {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Note{}, fmt.Errorf("note %s not found", id)
}
