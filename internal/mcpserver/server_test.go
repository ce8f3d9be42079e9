package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"weatherbot/internal/nlu"
)

type fakeResponder struct{}

func (fakeResponder) Chat(_ context.Context, text string) (string, nlu.Intent) {
	return "Clear sky in " + text, nlu.Weather
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	if len(r.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(r.Content))
	}
	tc, ok := r.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", r.Content[0])
	}
	return tc.Text
}

func TestHandleChat(t *testing.T) {
	srv := NewServer(fakeResponder{}, nil)
	ctx := context.Background()

	t.Run("reply", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"message": "Paris"}

		result, err := srv.handleChat(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if got := resultText(t, result); got != "[weather] Clear sky in Paris" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("missing message", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleChat(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing message")
		}
	})
}

func TestHandleFindCity(t *testing.T) {
	srv := NewServer(fakeResponder{}, []string{"Paris", "Lyon", "Parma"})
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"query": "pars", "limit": 3}
	result, err := srv.handleFindCity(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resultText(t, result); got != "Paris" {
		t.Fatalf("got %q", got)
	}

	req.Params.Arguments = map[string]any{"query": "zzz"}
	result, _ = srv.handleFindCity(ctx, req)
	if got := resultText(t, result); got != "No matching city." {
		t.Fatalf("got %q", got)
	}

	req.Params.Arguments = map[string]any{}
	result, _ = srv.handleFindCity(ctx, req)
	if !result.IsError {
		t.Fatalf("expected error for missing query")
	}
}
