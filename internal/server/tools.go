package server

import "github.com/ironsheep/image-picker/internal/picker"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// requestProperties describes the arguments shared by image_pick and image_encode.
func requestProperties() map[string]interface{} {
	return map[string]interface{}{
		"size": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     picker.MaxSize,
			"description": "Edge of the square thumbnail in pixels. 0 returns the file unresized in its original format. Default 256",
		},
		"accept": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "MIME types offered by the file chooser. Default image/png, image/jpeg, image/bmp",
		},
		"max_file_size_mb": map[string]interface{}{
			"type":        "number",
			"description": "Largest accepted file in megabytes (1 MB = 1048576 bytes). Default 5",
		},
		"anchor": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"top-left", "center"},
			"description": "Where the square crop sits in a non-square image. Default top-left",
		},
		"filter": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"nearest", "linear", "catmullrom", "lanczos"},
			"description": "Resampling filter used when scaling. Default linear",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	encodeProps := requestProperties()
	encodeProps["path"] = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}

	return []Tool{
		{
			Name:        "image_pick",
			Description: "Open the native file chooser, let the user pick one image and return it as a base64 data URL, cropped to a square thumbnail unless size is 0.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": requestProperties(),
			},
		},
		{
			Name:        "image_encode",
			Description: "Validate an image file on disk and return it as a base64 data URL, cropped to a square thumbnail unless size is 0. Same checks as image_pick without showing a dialog.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": encodeProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_inspect",
			Description: "Decode an image data URL and report its dimensions, format and whether it has transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"data_url": map[string]interface{}{
						"type":        "string",
						"description": "Image as a data: URL",
					},
				},
				"required": []string{"data_url"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
