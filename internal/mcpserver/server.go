// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Quill note tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/notestore"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

// maxSearchHits caps search_notes output.
const maxSearchHits = 20

// Server wraps the MCP server with Quill tools.
type Server struct {
	mcp   *server.MCPServer
	store *notestore.Store
}

// New creates a new MCP server with all Quill tools registered.
func New(store *notestore.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"Quill",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note. The body is Markdown; the id is minted "+
			"automatically and returned. Read the format contract first via the "+
			"get_note_contract tool or the quill://note-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title (plain text)")),
		mcp.WithString("body", mcp.Description("Markdown body")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags, e.g. \"todo, project-x\"")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note in its canonical file format (header block, ---, body)."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("area", mcp.Description("Where to look: active (default), trash or archive")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("append_note",
		mcp.WithDescription("Append a line of text to the end of an active note's body."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to append")),
	), s.appendNote)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes as \"id  title  tags\" lines, oldest first."),
		mcp.WithString("area", mcp.Description("Area to list: active (default), trash or archive")),
		mcp.WithString("tags", mcp.Description("Only notes carrying every one of these comma-separated tags")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Case-insensitive substring search over titles and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithString("area", mcp.Description("Area to search: active (default), trash or archive")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Move an active note to the trash. Trash is swept after the "+
			"configured retention period."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical Quill note format contract. "+
			"Call this before creating notes to ensure correct structure."),
	), s.getNoteContract)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("quill://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical note file format used by Quill."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body := ""
	if b, bErr := req.RequireString("body"); bErr == nil {
		body = b
	}
	var rawTags []string
	if t, tErr := req.RequireString("tags"); tErr == nil && t != "" {
		rawTags = strings.Split(t, ",")
	}

	n, err := s.store.Create(title, body, rawTags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (%s)", n.ID, n.Title)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	area, areaErr := toolArea(req)
	if areaErr != nil {
		return mcp.NewToolResultError(areaErr.Error()), nil
	}
	n, err := s.store.LoadFrom(area, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	return mcp.NewToolResultText(string(note.Encode(n))), nil
}

func (s *Server) appendNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.store.Append(id, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("appended: %s", n.ID)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	area, areaErr := toolArea(req)
	if areaErr != nil {
		return mcp.NewToolResultError(areaErr.Error()), nil
	}
	var filter []tag.Tag
	if t, tErr := req.RequireString("tags"); tErr == nil {
		filter = tag.ParseList(t)
	}

	notes, err := s.store.Collect(area, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, n := range notes {
		line := n.ID + "  " + n.Title
		if len(n.Tags) > 0 {
			line += "  " + tag.Join(n.Tags)
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

type searchHit struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	area, areaErr := toolArea(req)
	if areaErr != nil {
		return mcp.NewToolResultError(areaErr.Error()), nil
	}

	notes, err := s.store.Collect(area, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var hits []searchHit
	for _, n := range notes {
		if !n.Matches(query) {
			continue
		}
		hits = append(hits, searchHit{
			ID:      n.ID,
			Title:   n.Title,
			Snippet: listing.SearchPreview(n, query),
		})
		if len(hits) == maxSearchHits {
			break
		}
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	finalID, err := s.store.Relocate(id, storage.AreaActive, storage.AreaTrash)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("moved to trash: %s", finalID)), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "quill://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}

// toolArea reads the optional area argument, defaulting to active.
func toolArea(req mcp.CallToolRequest) (storage.Area, error) {
	name := ""
	if a, err := req.RequireString("area"); err == nil {
		name = a
	}
	return storage.ParseArea(name)
}
