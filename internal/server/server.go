// Package server exposes the stays provider over the Model Context Protocol.
package server

import (
	"context"
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/stayscout/stayscout/internal/logging"
	"github.com/stayscout/stayscout/internal/providers/stays"
	"github.com/stayscout/stayscout/internal/types"
)

// Version is the server version reported to clients.
const Version = "1.0.0"

// Server bridges tool invocations from an MCP transport to the provider.
type Server struct {
	mcp      *mcp.Server
	provider *stays.Provider
	log      *logging.Logger
}

// New registers every provider tool on a fresh MCP server.
func New(provider *stays.Provider, log *logging.Logger) *Server {
	if log == nil {
		log = logging.NewNop()
	}

	svc := provider.Definition()
	m := mcp.NewServer(&mcp.Implementation{
		Name:    svc.ID,
		Version: Version,
	}, nil)

	s := &Server{mcp: m, provider: provider, log: log}
	for _, tool := range svc.Tools {
		m.AddTool(&mcp.Tool{
			Name:        tool.ID,
			Description: tool.Description,
			Annotations: &mcp.ToolAnnotations{Title: tool.Name},
			InputSchema: inputSchema(tool),
		}, s.handler(tool.ID))
	}
	return s
}

// Run serves tool calls over stdio until the context is canceled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("serving tools over stdio", zap.String("version", Version))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// handler adapts one provider tool to the MCP envelope. A tool failure maps
// to isError on the envelope, never to a transport error: the server keeps
// serving after any single failed call.
func (s *Server) handler(toolID string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := s.provider.Execute(ctx, toolID, decodeArgs(req.Params.Arguments))
		if err != nil {
			s.log.Error("tool execution failed", zap.String("tool", toolID), zap.Error(err))
			msg := err.Error()
			result = &types.Result{Success: false, Error: &msg}
		}
		return envelope(result), nil
	}
}

// decodeArgs accepts the raw argument forms the transport may hand over.
func decodeArgs(v interface{}) map[string]interface{} {
	switch args := v.(type) {
	case map[string]interface{}:
		return args
	case json.RawMessage:
		out := map[string]interface{}{}
		if err := sonic.Unmarshal(args, &out); err != nil {
			return map[string]interface{}{}
		}
		return out
	case []byte:
		out := map[string]interface{}{}
		if err := sonic.Unmarshal(args, &out); err != nil {
			return map[string]interface{}{}
		}
		return out
	default:
		return map[string]interface{}{}
	}
}

// envelope renders a provider result as a single JSON text block.
func envelope(result *types.Result) *mcp.CallToolResult {
	payload := map[string]interface{}{}
	for k, v := range result.Data {
		payload[k] = v
	}
	if result.Error != nil {
		payload["error"] = *result.Error
	}

	text, err := sonic.MarshalString(payload)
	if err != nil {
		text = `{"error":"failed to encode tool result"}`
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
			IsError: true,
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: !result.Success,
	}
}

// inputSchema renders a tool's parameter list as a JSON schema object.
func inputSchema(tool types.Tool) map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}

	for _, param := range tool.Parameters {
		prop := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if param.Type == "array" {
			prop["items"] = map[string]interface{}{"type": "object"}
		}
		properties[param.Name] = prop
		if param.Required {
			required = append(required, param.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
