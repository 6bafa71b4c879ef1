// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the content catalog to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/maqam/internal/apperr"
	"github.com/starford/maqam/internal/catalog"
	"github.com/starford/maqam/internal/classifier"
	"github.com/starford/maqam/internal/models"
)

const rulesURI = "maqam://catalog-rules"

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp *server.MCPServer
	svc *catalog.Service
}

// New creates a new MCP server with all catalog tools registered.
func New(svc *catalog.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Maqam",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("get_bio",
		mcp.WithDescription("Return the musician's biography, education, roles, achievements and discography."),
	), s.getBio)

	s.mcp.AddTool(mcp.NewTool("list_events",
		mcp.WithDescription("List concerts and other events. See the maqam://catalog-rules resource for ordering."),
		mcp.WithString("status",
			mcp.Description("Which events to return"),
			mcp.Enum(string(catalog.StatusUpcoming), string(catalog.StatusPast), string(catalog.StatusAll))),
	), s.listEvents)

	s.mcp.AddTool(mcp.NewTool("list_videos",
		mcp.WithDescription("List visible videos, optionally by category or featured flag."),
		mcp.WithString("category", mcp.Description("Category such as concert, performance or collaboration")),
		mcp.WithBoolean("featured", mcp.Description("Only featured (true) or only non-featured (false) videos")),
		mcp.WithNumber("limit", mcp.Description("Page size, default 20, max 100")),
		mcp.WithNumber("offset", mcp.Description("Number of videos to skip")),
	), s.listVideos)

	s.mcp.AddTool(mcp.NewTool("list_videos_by_event",
		mcp.WithDescription("List visible videos recorded at one event."),
		mcp.WithNumber("event_id", mcp.Required(), mcp.Description("Event id")),
	), s.listVideosByEvent)

	s.mcp.AddTool(mcp.NewTool("list_playlists",
		mcp.WithDescription("List visible YouTube playlists."),
		mcp.WithBoolean("featured", mcp.Description("Only featured (true) or only non-featured (false) playlists")),
		mcp.WithNumber("limit", mcp.Description("Page size, default 20, max 100")),
		mcp.WithNumber("offset", mcp.Description("Number of playlists to skip")),
	), s.listPlaylists)

	s.mcp.AddTool(mcp.NewTool("reclassify_events",
		mcp.WithDescription("Mark events before the reference date as past and the rest as upcoming. "+
			"Returns how many events moved in each direction."),
		mcp.WithString("date", mcp.Description("Reference date YYYY-MM-DD, defaults to today")),
	), s.reclassifyEvents)

	s.mcp.AddResource(
		mcp.NewResource(rulesURI, "Catalog Rules",
			mcp.WithResourceDescription("Filtering, ordering and pagination rules of the catalog tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCatalogRules,
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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func errorResult(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError("not found")
	}
	return mcp.NewToolResultError(err.Error())
}

// optionalBool returns nil when key is absent.
func optionalBool(req mcp.CallToolRequest, key string) *bool {
	if _, ok := req.GetArguments()[key]; !ok {
		return nil
	}
	b := req.GetBool(key, false)
	return &b
}

func (s *Server) getBio(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bio, err := s.svc.GetBio(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(bio)
}

func (s *Server) listEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := catalog.ParseEventStatus(req.GetString("status", ""))
	if err != nil {
		return errorResult(err), nil
	}
	events, err := s.svc.ListEvents(ctx, status)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(events)
}

func (s *Server) listVideos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videos, err := s.svc.ListVideos(ctx, catalog.VideoQuery{
		Category: req.GetString("category", ""),
		Featured: optionalBool(req, "featured"),
		Page:     catalog.Page{Limit: req.GetInt("limit", 0), Offset: req.GetInt("offset", 0)},
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(videos)
}

func (s *Server) listVideosByEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID, err := req.RequireInt("event_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	videos, err := s.svc.VideosByEvent(ctx, int64(eventID))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(videos)
}

func (s *Server) listPlaylists(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playlists, err := s.svc.ListPlaylists(ctx, catalog.PlaylistQuery{
		Featured: optionalBool(req, "featured"),
		Page:     catalog.Page{Limit: req.GetInt("limit", 0), Offset: req.GetInt("offset", 0)},
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(playlists)
}

func (s *Server) reclassifyEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var date models.Date
	if raw := req.GetString("date", ""); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("date must be YYYY-MM-DD: %v", err)), nil
		}
		date = d
	}
	res, err := s.svc.ReclassifyEvents(ctx, date, classifier.TriggerAdmin)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(res)
}

func (s *Server) readCatalogRules(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      rulesURI,
			MIMEType: "text/markdown",
			Text:     CatalogRules,
		},
	}, nil
}
