package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/image-picker/internal/imaging"
	"github.com/ironsheep/image-picker/internal/picker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_pick", "image_encode").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_pick":
		return s.handleImagePick(ctx, args)
	case "image_encode":
		return s.handleImageEncode(ctx, args)
	case "image_inspect":
		return s.handleImageInspect(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// PickResult is returned by image_pick and image_encode.
type PickResult struct {
	// DataURL is the picked image as a base64 data URL.
	DataURL string `json:"data_url"`

	// Info describes DataURL. It is omitted when the payload cannot be
	// decoded, which only happens for unresized files.
	Info *imaging.ImageInfo `json:"info,omitempty"`
}

// requestArgs are the request fields shared by image_pick and image_encode.
// Pointer fields distinguish "not given" from zero.
type requestArgs struct {
	Size          *int     `json:"size"`
	Accept        []string `json:"accept"`
	MaxFileSizeMB *float64 `json:"max_file_size_mb"`
	Anchor        string   `json:"anchor"`
	Filter        string   `json:"filter"`
}

// request merges the arguments over the server defaults. Anchor and filter
// names are matched case-insensitively.
func (a requestArgs) request(defaults picker.Request) picker.Request {
	req := defaults
	req.Accept = append([]string(nil), defaults.Accept...)
	if a.Size != nil {
		req.Size = *a.Size
	}
	if len(a.Accept) > 0 {
		req.Accept = a.Accept
	}
	if a.MaxFileSizeMB != nil {
		req.MaxFileSizeMB = *a.MaxFileSizeMB
	}
	if a.Anchor != "" {
		// Unknown names pass through so validation reports them.
		anchor, err := imaging.ParseAnchor(a.Anchor)
		if err != nil {
			anchor = imaging.Anchor(a.Anchor)
		}
		req.Anchor = anchor
	}
	if a.Filter != "" {
		req.Filter = strings.ToLower(strings.TrimSpace(a.Filter))
	}
	return req
}

func (s *Server) handleImagePick(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a requestArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if s.picker == nil {
		return nil, fmt.Errorf("no file dialog available")
	}

	dataURL, err := s.picker.Pick(ctx, a.request(s.defaults))
	if err != nil {
		return nil, err
	}
	return s.pickResult(ctx, dataURL), nil
}

type imageEncodeArgs struct {
	requestArgs
	Path string `json:"path"`
}

func (s *Server) handleImageEncode(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	p := s.newPathPicker(a.Path)
	defer p.Close()

	dataURL, err := p.Pick(ctx, a.request(s.defaults))
	if err != nil {
		return nil, err
	}
	return s.pickResult(ctx, dataURL), nil
}

type imageInspectArgs struct {
	DataURL string `json:"data_url"`
}

func (s *Server) handleImageInspect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageInspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.Inspect(ctx, a.DataURL)
}

func (s *Server) pickResult(ctx context.Context, dataURL string) *PickResult {
	info, err := imaging.Inspect(ctx, dataURL)
	if err != nil {
		s.log.Debugf("Picked image not inspectable: %v", err)
		info = nil
	}
	return &PickResult{DataURL: dataURL, Info: info}
}
