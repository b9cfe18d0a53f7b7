package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_average",
			Description: "Average a collection of same-size images in linear light and save the result. Mid-tones are preserved instead of darkening as they do with a plain per-pixel mean. Returns the stored image name and its dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"images": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"minItems":    1,
						"description": "Image names in the store, or absolute file paths. All images must have the same width and height.",
					},
					"gamma": map[string]interface{}{
						"type":             "number",
						"exclusiveMinimum": 0,
						"description":      "Gamma exponent used to linearize the images. 1.0 gives a plain arithmetic mean. Default 2.2",
						"default":          2.2,
					},
					"curve": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"gamma", "srgb"},
						"description": "Transfer curve: 'gamma' uses the power law with the given exponent, 'srgb' uses the piecewise sRGB curve and ignores gamma",
						"default":     "gamma",
					},
					"board_id": map[string]interface{}{
						"type":        "string",
						"description": "Optional board the result belongs to",
					},
					"is_intermediate": map[string]interface{}{
						"type":        "boolean",
						"description": "Mark the result as an intermediate image",
						"default":     false,
					},
					"metadata": map[string]interface{}{
						"type":        "object",
						"description": "Optional metadata stored unmodified with the result",
					},
					"workflow": map[string]interface{}{
						"type":        "object",
						"description": "Optional workflow stored unmodified with the result",
					},
				},
				"required": []string{"images"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions, format and stored record of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": map[string]interface{}{
						"type":        "string",
						"description": "Image name in the store, or absolute file path",
					},
				},
				"required": []string{"image"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel coordinate. Returns hex, RGB, RGBA and HSL values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image": map[string]interface{}{
						"type":        "string",
						"description": "Image name in the store, or absolute file path",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"image", "x", "y"},
			},
		},
		{
			Name:        "node_info",
			Description: "Describe the average_images node: type, version, tags and inputs.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
