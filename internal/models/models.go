package models

// -- Algorithm listing --
type Algorithm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HexLength   int    `json:"hex_length,omitempty"`
}

// --- Response Structs ---
type HashResponse struct {
	Filename  string `json:"filename"`
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
	Size      int64  `json:"size"`
}

type QRRequest struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ImageResult is what the image pages render after a successful run.
type ImageResult struct {
	// Base64 holds the encoded image, ready for a data: URI.
	Base64   string
	MIMEType string
	Format   string
	Filename string
	Width    int
	Height   int
	Size     int
}

// CompressionStats describes the effect of a compression run.
type CompressionStats struct {
	OriginalSize   int     `json:"original_size"`
	CompressedSize int     `json:"compressed_size"`
	SavedPercent   float64 `json:"saved_percent"`
}

// --- Page models ---

// Page carries the values shared by every rendered tool page.
type Page struct {
	Title        string
	Active       string
	ErrorMessage string
}

type HomePage struct {
	Page
	Formats []string
}

type QRPage struct {
	Page
	URLValue string
	QRImage  string
}

type ConvertPage struct {
	Page
	Formats []string
	Target  string
	Result  *ImageResult
}

type CompressPage struct {
	Page
	Quality int
	Result  *ImageResult
	Stats   *CompressionStats
}

type FiltersPage struct {
	Page
	Filters  []Algorithm
	Filter   string
	Strength int
	Result   *ImageResult
}

type ResizePage struct {
	Page
	Width      string
	Height     string
	KeepAspect bool
	Result     *ImageResult
}

type WatermarkPage struct {
	Page
	Algorithms []Algorithm
	Algorithm  string
	Positions  []string
	Position   string
	Text       string
	Opacity    int
	Result     *ImageResult
}

type HashPage struct {
	Page
	Algorithms []Algorithm
	Algorithm  string
	Filename   string
	Digest     string
	Size       int64
}
