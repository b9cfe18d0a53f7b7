package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/image-average-mcp/internal/imaging"
	"github.com/ironsheep/image-average-mcp/internal/node"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_average", "image_info").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start), err)
	}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_average":
		return s.handleImageAverage(args)
	case "image_info":
		return s.handleImageInfo(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "node_info":
		return node.Describe(), nil
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

type imageAverageArgs struct {
	Images         []string        `json:"images"`
	Gamma          *float64        `json:"gamma"`
	Curve          string          `json:"curve"`
	BoardID        string          `json:"board_id"`
	IsIntermediate bool            `json:"is_intermediate"`
	Metadata       json.RawMessage `json:"metadata"`
	Workflow       json.RawMessage `json:"workflow"`
}

func (s *Server) handleImageAverage(args json.RawMessage) (interface{}, error) {
	var a imageAverageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Gamma == nil {
		g := s.defaultGamma
		a.Gamma = &g
	}

	n := &node.AverageImages{
		ID:             uuid.NewString(),
		Images:         a.Images,
		Gamma:          a.Gamma,
		Curve:          a.Curve,
		BoardID:        a.BoardID,
		IsIntermediate: a.IsIntermediate,
		Metadata:       a.Metadata,
		Workflow:       a.Workflow,
	}
	return n.Invoke(s.store, s.sessionID)
}

type imageInfoArgs struct {
	Image string `json:"image"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.Info(a.Image)
}

type imageSampleColorArgs struct {
	Image string `json:"image"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.store.Load(a.Image)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
