package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	notesURI      = "notes://notes"
	notePrefixURI = "notes://note/"
)

func (s *Server) registerResources() {
	// ── notes://notes ──────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		notesURI,
		"All Notes",
		mcp.WithResourceDescription("Every note with its id, title and date"),
		mcp.WithMIMEType("application/json"),
	), s.handleNotesResource)

	// ── notes://note/{id} ──────────────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			notePrefixURI+"{id}",
			"Note Content",
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleNoteResource,
	)
}

func (s *Server) handleNotesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	res := s.client.LoadAllMarkdown(ctx)
	if !res.Success {
		return nil, resultError("list notes", res.Result)
	}
	data, err := json.MarshalIndent(summarize(res.Notes), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal notes: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      notesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleNoteResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := noteIDFromURI(uri)
	if id == "" {
		return nil, fmt.Errorf("could not extract note id from URI: %s", uri)
	}
	note, err := s.findNote(ctx, id)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     note.Content,
		},
	}, nil
}

// noteIDFromURI extracts the id from "notes://note/{id}".
func noteIDFromURI(uri string) string {
	id, ok := strings.CutPrefix(uri, notePrefixURI)
	if !ok || strings.Contains(id, "/") {
		return ""
	}
	return id
}
