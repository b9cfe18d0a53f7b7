package imaging

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Store is a directory of images that acts as both the image source and the
// image sink for averaging runs.
//
// Images written by Save are PNG files named "<uuid>.png", each with a JSON
// sidecar "<uuid>.png.json" that records the host context passed to Save.
//
// Store keeps no decoded images in memory; every Load decodes from disk. It is
// safe for concurrent use because each Save writes to a freshly generated name.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves an image name to a file path.
//
// Absolute paths are returned unchanged so callers can average files that live
// outside the store. Any other name is reduced to its base name and looked up
// inside the store directory.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, filepath.Base(name))
}

// Load decodes the named image.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG EXIF
// orientation is applied so the pixels match what a viewer shows.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func (s *Store) Load(name string) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("empty image name")
	}
	img, err := imaging.Open(s.Path(name), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", name, err)
	}
	return img, nil
}

// Image origin and category values recorded by Save, matching the host's
// image records.
const (
	OriginInternal  = "internal"
	CategoryGeneral = "general"
)

// SaveOptions is the host context attached to a saved image. Metadata and
// Workflow are stored exactly as given.
type SaveOptions struct {
	NodeID         string          `json:"node_id,omitempty"`
	SessionID      string          `json:"session_id,omitempty"`
	IsIntermediate bool            `json:"is_intermediate"`
	BoardID        string          `json:"board_id,omitempty"`
	Origin         string          `json:"image_origin,omitempty"`
	Category       string          `json:"image_category,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	Workflow       json.RawMessage `json:"workflow,omitempty"`
}

// ImageDTO describes a persisted image.
type ImageDTO struct {
	ImageName string    `json:"image_name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`
	SaveOptions
}

// Save writes img as a new PNG in the store together with its sidecar record.
//
// The returned ImageDTO carries the stable name that Load accepts. If the
// sidecar cannot be written the image file is removed again, so a failed Save
// leaves nothing behind.
func (s *Store) Save(img image.Image, opts SaveOptions) (*ImageDTO, error) {
	name := uuid.NewString() + ".png"
	path := filepath.Join(s.dir, name)

	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	bounds := img.Bounds()
	dto := &ImageDTO{
		ImageName:   name,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		CreatedAt:   time.Now().UTC(),
		SaveOptions: opts,
	}

	b, err := json.Marshal(dto)
	if err == nil {
		err = os.WriteFile(sidecarPath(path), b, 0o644)
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write image record: %w", err)
	}

	return dto, nil
}

func sidecarPath(imagePath string) string {
	return imagePath + ".json"
}

// ImageInfo contains metadata about a stored image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format from the file extension: "png",
	// "jpeg", "gif", "bmp", "tiff", "webp" or "unknown".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// Record is the sidecar written by Save, nil for images not created by
	// this store.
	Record *ImageDTO `json:"record,omitempty"`
}

// Info loads the named image and describes it.
func (s *Store) Info(name string) (*ImageInfo, error) {
	img, err := s.Load(name)
	if err != nil {
		return nil, err
	}

	path := s.Path(name)
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Decoders return RGBA types for opaque files too, so ask the pixels.
	hasAlpha := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}

	bounds := img.Bounds()
	info := &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatFromExt(path),
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}

	if b, err := os.ReadFile(sidecarPath(path)); err == nil {
		var rec ImageDTO
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("failed to read image record: %w", err)
		}
		info.Record = &rec
	}

	return info, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
