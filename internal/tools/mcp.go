package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReportReadQuery struct {
	Path string `json:"path,omitempty" jsonschema:"Path to the blood-test PDF; the server default is used when empty"`
}

type ReportReadResponse struct {
	Text string `json:"text"`
}

func ReportReaderMCPTool(r *ReportReader) *mcp.Tool {
	inputSchema, err := jsonschema.For[ReportReadQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        r.Name(),
		Description: r.Description(),
		InputSchema: inputSchema,
	}
}

// RegisterMCP exposes the report reader as an MCP tool on server.
func RegisterMCP(server *mcp.Server, r *ReportReader) {
	mcp.AddTool(server, ReportReaderMCPTool(r), func(ctx context.Context, req *mcp.CallToolRequest, query ReportReadQuery) (*mcp.CallToolResult, *ReportReadResponse, error) {
		text, err := r.Run(ctx, query.Path)
		if err != nil {
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, &ReportReadResponse{Text: text}, nil
	})
}
