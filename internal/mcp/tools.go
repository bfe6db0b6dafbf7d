// ABOUTME: MCP tool implementations for the training log.
// ABOUTME: Session logging, statistics, progression, load and athlete context.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GiovanniJ17/tracker-velocista/internal/engine"
	"github.com/GiovanniJ17/tracker-velocista/internal/load"
	"github.com/GiovanniJ17/tracker-velocista/internal/models"
	"github.com/GiovanniJ17/tracker-velocista/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Save a structured training session with workout groups, sets, claimed personal bests and injuries",
	}, s.handleLogSession)

	// list_sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List training sessions, optionally limited to a date range",
	}, s.handleListSessions)

	// get_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a training session with all its groups and sets",
	}, s.handleGetSession)

	// delete_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and the records derived from it",
	}, s.handleDeleteSession)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the KPI summary: session count, average RPE, PB count, streak, volume",
	}, s.handleGetStats)

	// get_progression
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progression",
		Description: "Get per-distance progression rows, sprint indices and target bands",
	}, s.handleGetProgression)

	// get_load
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_load",
		Description: "Get the training load series (ATL/CTL/TSB) and the current form",
	}, s.handleGetLoad)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List performance records, optionally filtered by category or current PBs only",
	}, s.handleListRecords)

	// get_athlete_context
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_athlete_context",
		Description: "Get a compact athlete summary: KPIs, current PBs, load status and active injuries",
	}, s.handleGetAthleteContext)
}

// Tool input/output types

type logSessionOutput struct {
	SessionID string   `json:"session_id"`
	NewPBs    []string `json:"new_pbs,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Message   string   `json:"message"`
}

type listSessionsInput struct {
	Start string `json:"start,omitempty" jsonschema:"description=Start date (YYYY-MM-DD)"`
	End   string `json:"end,omitempty" jsonschema:"description=End date (YYYY-MM-DD)"`
}

type getSessionInput struct {
	ID string `json:"id" jsonschema:"description=Session ID or prefix,required"`
}

type deleteSessionInput struct {
	ID string `json:"id" jsonschema:"description=Session ID or prefix,required"`
}

type listRecordsInput struct {
	Category string `json:"category,omitempty" jsonschema:"description=Filter by category (race, strength, training)"`
	BestOnly bool   `json:"best_only,omitempty" jsonschema:"description=Only current personal bests"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input engine.Candidate) (*mcp.CallToolResult, logSessionOutput, error) {
	result, err := s.engine.SaveSession(ctx, input)
	if err != nil {
		var partial *engine.PartialSaveError
		if !errors.As(err, &partial) {
			return nil, logSessionOutput{}, fmt.Errorf("failed to save session: %w", err)
		}
		// The session persisted; report what failed alongside what did not.
		out := buildLogOutput(result)
		out.Message = fmt.Sprintf("Session %s saved, but some records failed: %v",
			partial.SessionID[:8], partial)
		return nil, out, nil
	}

	out := buildLogOutput(result)
	out.Message = fmt.Sprintf("Saved %s session on %s (ID: %s)",
		result.Session.Type, result.Session.Date.Format("2006-01-02"), out.SessionID)
	if len(out.NewPBs) > 0 {
		out.Message += fmt.Sprintf(", %d new PB(s)", len(out.NewPBs))
	}
	return nil, out, nil
}

func buildLogOutput(result *engine.SaveResult) logSessionOutput {
	out := logSessionOutput{
		SessionID: result.Session.ID.String()[:8],
		NewPBs:    result.NewPBs,
	}
	for _, w := range result.Warnings {
		out.Warnings = append(out.Warnings, w.Message)
	}
	return out
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	var start, end time.Time
	if input.Start != "" {
		t, err := time.Parse("2006-01-02", input.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date: %s", input.Start)
		}
		start = t
	}
	if input.End != "" {
		t, err := time.Parse("2006-01-02", input.End)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date: %s", input.End)
		}
		end = t
	}

	sessions, err := s.db.ListSessions(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input getSessionInput) (*mcp.CallToolResult, any, error) {
	session, err := s.db.GetSession(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s", input.ID)
	}
	return nil, session, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, req *mcp.CallToolRequest, input deleteSessionInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.db.DeleteSession(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete session: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted session: %s", input.ID),
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	stats, err := s.engine.Stats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return nil, stats, nil
}

func (s *Server) handleGetProgression(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	report, err := s.engine.Progression(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute progression: %w", err)
	}
	if len(report.Rows) == 0 {
		return nil, map[string]interface{}{"message": "No race performances recorded yet."}, nil
	}
	return nil, report, nil
}

func (s *Server) handleGetLoad(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.LoadModel(ctx)
	if err != nil {
		if errors.Is(err, load.ErrInsufficientData) {
			return nil, map[string]interface{}{"message": "Not enough training history for the load model (needs 7+ days)."}, nil
		}
		return nil, nil, fmt.Errorf("failed to compute load: %w", err)
	}
	return nil, result, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, any, error) {
	filter := storage.RecordFilter{BestOnly: input.BestOnly}
	if input.Category != "" {
		if !models.IsValidRecordCategory(input.Category) {
			return nil, nil, fmt.Errorf("unknown record category: %s", input.Category)
		}
		filter.Category = models.RecordCategory(input.Category)
	}

	records, err := s.db.ListRecords(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}
	if len(records) == 0 {
		return nil, map[string]interface{}{"message": "No records found."}, nil
	}
	return nil, records, nil
}

func (s *Server) handleGetAthleteContext(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	athleteCtx, err := s.engine.Context(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build athlete context: %w", err)
	}
	return nil, athleteCtx, nil
}
