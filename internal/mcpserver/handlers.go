package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/apperr"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/ideablock"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// Analyzer produces the raw idea analysis for a video URL.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analysis.Result, error)
}

// Handlers holds dependencies for the tool handlers.
type Handlers struct {
	ideas    *service.IdeaService
	analyzer Analyzer
}

func NewHandlers(ideas *service.IdeaService, analyzer Analyzer) *Handlers {
	return &Handlers{ideas: ideas, analyzer: analyzer}
}

type AnalyzeRequest struct {
	URL string `json:"url"`
}

type AnalyzeResponse struct {
	Video *analysis.Result  `json:"video"`
	Ideas []ideablock.Block `json:"ideas"`
}

type CreateRequest struct {
	UserID      string               `json:"user_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Tags        []string             `json:"tags,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Metadata    *domain.IdeaMetadata `json:"metadata,omitempty"`
}

type ListRequest struct {
	UserID string `json:"user_id"`
}

type IDRequest struct {
	ID string `json:"id"`
}

type UpdateRequest struct {
	ID          string         `json:"id"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Status      *domain.Status `json:"status,omitempty"`
}

func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.analyzer == nil {
		return errorResult(apperr.Unavailable("video analysis is not configured on this server")), nil
	}
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}
	if input.URL == "" {
		return errorResult(apperr.InvalidInput("url is required")), nil
	}

	res, err := h.analyzer.Analyze(ctx, input.URL)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(AnalyzeResponse{Video: res, Ideas: ideablock.Parse(res.Analysis)})
}

func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	idea, err := h.ideas.Create(ctx, service.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Tags:        tags,
		Category:    input.Category,
		UserID:      input.UserID,
		Metadata:    input.Metadata,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(idea)
}

func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}

	ideas, err := h.ideas.List(ctx, input.UserID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"ideas": ideas, "count": len(ideas)})
}

func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}

	idea, ok, err := h.ideas.GetByID(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	if !ok {
		return errorResult(apperr.NotFound("Idea", input.ID)), nil
	}
	return successResult(idea)
}

func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}

	idea, err := h.ideas.Update(ctx, input.ID, service.UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		Category:    input.Category,
		Status:      input.Status,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(idea)
}

func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}

	if err := h.ideas.Delete(ctx, input.ID); err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"id": input.ID, "deleted": true})
}

func (h *Handlers) HandleLike(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IDRequest](req)
	if err != nil {
		return errorResult(apperr.InvalidInput(err.Error())), nil
	}

	idea, err := h.ideas.Like(ctx, input.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(idea)
}

// errorResult reports err as a tool error. Internal and storage failures
// never carry details.
func errorResult(err error) *mcp.CallToolResult {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError {
		slog.Error("tool call failed", slog.String("code", string(e.Code)), slog.Any("error", err))
	}
	errorObj := map[string]any{
		"code":    e.Code,
		"message": e.Message,
		"status":  e.Status,
	}
	switch e.Code {
	case apperr.CodeInternal, apperr.CodeStorage:
		errorObj["message"] = "an internal error occurred"
	default:
		if e.Details != nil {
			errorObj["details"] = e.Details
		}
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
