// Package node implements the "average_images" invocation: it pulls images
// from an image service, averages them in linear light and saves the result
// back through the same service.
package node

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/image-average-mcp/internal/average"
	"github.com/ironsheep/image-average-mcp/internal/imaging"
)

// Registration details of the node.
const (
	Type    = "average_images"
	Title   = "Average Images"
	Version = "1.1.0"
)

// Tags lists the node's categories.
var Tags = []string{"image"}

// ImageService loads input images and persists the result.
// *imaging.Store satisfies it.
type ImageService interface {
	Load(name string) (image.Image, error)
	Save(img image.Image, opts imaging.SaveOptions) (*imaging.ImageDTO, error)
}

// AverageImages is one invocation of the node.
type AverageImages struct {
	// ID identifies the node instance within its graph.
	ID string `json:"id,omitempty"`

	// Images is the collection to average, in order.
	Images []string `json:"images"`

	// Gamma is the power-curve exponent. Nil selects average.DefaultGamma;
	// zero and negative values are rejected.
	Gamma *float64 `json:"gamma,omitempty"`

	// Curve selects the transfer curve: "gamma" (default) or "srgb".
	Curve string `json:"curve,omitempty"`

	IsIntermediate bool            `json:"is_intermediate,omitempty"`
	BoardID        string          `json:"board_id,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	Workflow       json.RawMessage `json:"workflow,omitempty"`
}

// ImageField references a stored image.
type ImageField struct {
	ImageName string `json:"image_name"`
}

// ImageOutput is what the node hands to downstream consumers.
type ImageOutput struct {
	Image  ImageField `json:"image"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
}

// Invoke runs the node. Nothing is saved unless averaging succeeds.
func (n *AverageImages) Invoke(svc ImageService, sessionID string) (*ImageOutput, error) {
	if len(n.Images) == 0 {
		return nil, average.ErrInvalidInput
	}

	gamma := average.DefaultGamma
	if n.Gamma != nil {
		gamma = *n.Gamma
	}
	if !(gamma > 0) {
		return nil, fmt.Errorf("%w: gamma must be positive, got %v", average.ErrInvalidConfiguration, gamma)
	}
	curve, err := average.ParseCurve(n.Curve, gamma)
	if err != nil {
		return nil, err
	}

	img, err := average.FromSource(svc, n.Images, curve)
	if err != nil {
		return nil, err
	}

	dto, err := svc.Save(img, imaging.SaveOptions{
		NodeID:         n.ID,
		SessionID:      sessionID,
		IsIntermediate: n.IsIntermediate,
		BoardID:        n.BoardID,
		Origin:         imaging.OriginInternal,
		Category:       imaging.CategoryGeneral,
		Metadata:       n.Metadata,
		Workflow:       n.Workflow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save averaged image: %w", err)
	}

	return &ImageOutput{
		Image:  ImageField{ImageName: dto.ImageName},
		Width:  dto.Width,
		Height: dto.Height,
	}, nil
}

// Field describes one input of the node.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// Descriptor is the node's registration record.
type Descriptor struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Version string   `json:"version"`
	Tags    []string `json:"tags"`
	Inputs  []Field  `json:"inputs"`
	Output  string   `json:"output"`
}

// Describe returns the node's registration record.
func Describe() Descriptor {
	return Descriptor{
		Type:    Type,
		Title:   Title,
		Version: Version,
		Tags:    Tags,
		Inputs: []Field{
			{Name: "images", Type: "list[image]", Description: "The collection of images to average"},
			{Name: "gamma", Type: "float", Description: "Gamma exponent used to linearize the images", Default: average.DefaultGamma},
			{Name: "curve", Type: "string", Description: "Transfer curve: gamma or srgb", Default: "gamma"},
			{Name: "board_id", Type: "string", Description: "Board to add the result to"},
			{Name: "is_intermediate", Type: "bool", Description: "Whether the result is an intermediate image", Default: false},
			{Name: "metadata", Type: "object", Description: "Metadata stored with the result"},
			{Name: "workflow", Type: "object", Description: "Workflow stored with the result"},
		},
		Output: "image_output",
	}
}
