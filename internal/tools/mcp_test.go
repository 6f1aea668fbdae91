package tools

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestReportReaderMCPTool(t *testing.T) {
	r := newReader(t, &fakePages{}, "")
	tool := ReportReaderMCPTool(r)

	if tool.Name != ReportReaderName {
		t.Errorf("Name = %q", tool.Name)
	}
	if tool.InputSchema == nil {
		t.Fatal("expected an input schema")
	}
}

func TestRegisterMCPCallTool(t *testing.T) {
	ctx := context.Background()
	path := touch(t, t.TempDir(), "report.pdf")
	r := newReader(t, &fakePages{pages: []string{"LDL:  130\n\n\nHDL: 45"}}, "")

	server := mcp.NewServer(&mcp.Implementation{Name: "report-reader", Version: "v0.0.1"}, nil)
	RegisterMCP(server, r)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer clientSession.Close()

	res, err := clientSession.CallTool(ctx, &mcp.CallToolParams{
		Name:      ReportReaderName,
		Arguments: map[string]any{"path": path},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool reported error: %+v", res.Content)
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected 1 content item, got %d", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	if text.Text != "LDL: 130\nHDL: 45" {
		t.Errorf("text = %q", text.Text)
	}
}
