// ABOUTME: MCP tool implementations for the workout assistant.
// ABOUTME: send_message runs the full pipeline; the rest are direct read views.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/repbot/internal/llm"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// send_message
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "send_message",
		Description: "Send a natural-language message to the workout assistant (log, repeat, undo, stats, coaching)",
	}, s.handleSendMessage)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workout batches with their batch ids",
	}, s.handleListWorkouts)

	// get_prs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_prs",
		Description: "Get the heaviest set ever logged per exercise",
	}, s.handleGetPRs)

	// undo_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "undo_workout",
		Description: "Delete a workout batch by id, or the most recent one",
	}, s.handleUndoWorkout)
}

// Tool input/output types

type sendMessageInput struct {
	Message string `json:"message" jsonschema:"description=Natural-language message for the assistant,required"`
}

type textOutput struct {
	Text string `json:"text"`
}

type undoWorkoutInput struct {
	BatchID int64 `json:"batch_id,omitempty" jsonschema:"description=Batch id to delete; 0 means most recent"`
}

// Tool handlers

func (s *Server) handleSendMessage(ctx context.Context, req *mcp.CallToolRequest, input sendMessageInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Message == "" {
		return nil, textOutput{}, fmt.Errorf("message is required")
	}
	reply, err := s.assistant.Process(ctx, s.userID, input.Message)
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("handle message: %w", err)
	}
	return nil, textOutput{Text: reply}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, textOutput, error) {
	reply, err := s.assistant.Stats(s.userID, llm.Intent{Kind: llm.IntentViewStats, StatsKind: llm.StatsList})
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("list workouts: %w", err)
	}
	return nil, textOutput{Text: reply}, nil
}

func (s *Server) handleGetPRs(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, textOutput, error) {
	reply, err := s.assistant.Stats(s.userID, llm.Intent{Kind: llm.IntentViewStats, StatsKind: llm.StatsPRs})
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("get prs: %w", err)
	}
	return nil, textOutput{Text: reply}, nil
}

func (s *Server) handleUndoWorkout(ctx context.Context, req *mcp.CallToolRequest, input undoWorkoutInput) (*mcp.CallToolResult, textOutput, error) {
	message := "undo"
	if input.BatchID > 0 {
		message = fmt.Sprintf("delete #%d", input.BatchID)
	}
	reply, err := s.assistant.DeleteWorkout(s.userID, message)
	if err != nil {
		return nil, textOutput{}, fmt.Errorf("undo workout: %w", err)
	}
	return nil, textOutput{Text: reply}, nil
}
