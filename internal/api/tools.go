package api

import (
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"toolbox/internal/audit"
	"toolbox/internal/filters"
	"toolbox/internal/hashing"
	"toolbox/internal/imageops"
	"toolbox/internal/models"
	"toolbox/internal/qr"
	"toolbox/internal/watermarking"
)

// imageArtifact is an encoded image produced by one of the image tools.
type imageArtifact struct {
	data        []byte
	format      imageops.Format
	width       int
	height      int
	filename    string
	compression *imageops.Compressed
}

func (a *imageArtifact) result() *models.ImageResult {
	return &models.ImageResult{
		Base64:   encodeBase64(a.data),
		MIMEType: a.format.MIMEType(),
		Format:   a.format.String(),
		Filename: a.filename,
		Width:    a.width,
		Height:   a.height,
		Size:     len(a.data),
	}
}

func (a *imageArtifact) stats() *models.CompressionStats {
	if a.compression == nil {
		return nil
	}
	return &models.CompressionStats{
		OriginalSize:   a.compression.OriginalSize,
		CompressedSize: a.compression.CompressedSize,
		SavedPercent:   a.compression.SavedPercent(),
	}
}

// hashArtifact is the digest of one upload.
type hashArtifact struct {
	digest   hashing.Digest
	filename string
}

// encode writes img in the source format when possible and PNG otherwise.
func encode(img image.Image, source imageops.Format, name, suffix string, ev *audit.Event) (*imageArtifact, *failure) {
	format := source
	if !format.Encodable() {
		format = imageops.PNG
	}
	data, err := imageops.Save(img, format, imageops.SaveOptions{Quality: 95})
	if err != nil {
		return nil, classify(err)
	}
	ev.OutputBytes = int64(len(data))

	b := img.Bounds()
	return &imageArtifact{
		data:     data,
		format:   format,
		width:    b.Dx(),
		height:   b.Dy(),
		filename: outputName(name, suffix, format),
	}, nil
}

// optionalInt parses a form number; empty means zero.
func optionalInt(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// optionalPercent parses a 1..100 form value; empty means zero, which the
// tools read as "use the default".
func optionalPercent(v string) (int, bool) {
	n, ok := optionalInt(v)
	if !ok || n > 100 || (n < 1 && strings.TrimSpace(v) != "") {
		return 0, false
	}
	return n, true
}

func (h *Handlers) runQR(content string, ev *audit.Event) ([]byte, *failure) {
	ev.InputBytes = int64(len(content))
	png, err := qr.Generate(content, qr.DefaultOptions())
	if err != nil {
		return nil, classify(err)
	}
	ev.OutputBytes = int64(len(png))
	return png, nil
}

func (h *Handlers) runConvert(r *http.Request, ev *audit.Event) (*imageArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}
	target, err := imageops.ParseFormat(r.FormValue("format"))
	if err != nil || !target.Encodable() {
		return nil, invalid("Please choose one of the available output formats.", err)
	}

	img, name, f := h.readImage(r, ev)
	if f != nil {
		return nil, f
	}

	data, err := imageops.Convert(img, target)
	if err != nil {
		return nil, classify(err)
	}
	ev.OutputBytes = int64(len(data))
	return &imageArtifact{
		data:     data,
		format:   target,
		width:    img.Width(),
		height:   img.Height(),
		filename: outputName(name, "converted", target),
	}, nil
}

func (h *Handlers) runCompress(r *http.Request, ev *audit.Event) (*imageArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}
	quality, ok := optionalPercent(r.FormValue("quality"))
	if !ok {
		return nil, invalid("Quality must be between 1 and 100.", nil)
	}

	img, name, f := h.readImage(r, ev)
	if f != nil {
		return nil, f
	}

	c, err := imageops.Compress(img, quality)
	if err != nil {
		return nil, classify(err)
	}
	ev.OutputBytes = int64(len(c.Data))
	return &imageArtifact{
		data:        c.Data,
		format:      c.Format,
		width:       img.Width(),
		height:      img.Height(),
		filename:    outputName(name, "compressed", c.Format),
		compression: c,
	}, nil
}

func (h *Handlers) runFilter(r *http.Request, ev *audit.Event) (*imageArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}
	filter, err := filters.Get(r.FormValue("filter"))
	if err != nil {
		return nil, classify(err)
	}
	strength, ok := optionalInt(r.FormValue("strength"))
	if !ok {
		return nil, invalid("Strength must be a whole number between 0 and 100.", nil)
	}
	if strings.TrimSpace(r.FormValue("strength")) == "" {
		strength = filters.DefaultStrength
	}

	img, name, f := h.readImage(r, ev)
	if f != nil {
		return nil, f
	}

	return encode(filter.Apply(img.Image, strength), img.Format, name, filter.Name(), ev)
}

func (h *Handlers) runResize(r *http.Request, ev *audit.Event) (*imageArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}
	width, okW := optionalInt(r.FormValue("width"))
	height, okH := optionalInt(r.FormValue("height"))
	if !okW || !okH {
		return nil, classify(imageops.ErrInvalidDimensions)
	}
	keepAspect := r.FormValue("keep_aspect") != ""

	if err := imageops.ValidateDimensions(width, height); err != nil {
		return nil, classify(err)
	}

	img, name, f := h.readImage(r, ev)
	if f != nil {
		return nil, f
	}

	out, err := imageops.Resize(img.Image, width, height, keepAspect)
	if err != nil {
		return nil, classify(err)
	}
	return encode(out, img.Format, name, "resized", ev)
}

func (h *Handlers) runWatermark(r *http.Request, ev *audit.Event) (*imageArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}

	algorithm := r.FormValue("algorithm")
	if algorithm == "" {
		algorithm = "text"
	}
	wm, err := watermarking.GetWatermarker(algorithm)
	if err != nil {
		return nil, classify(err)
	}

	opacity, ok := optionalPercent(r.FormValue("opacity"))
	if !ok {
		return nil, classify(watermarking.ErrInvalidOpacity)
	}
	mark, err := watermarking.Mark{
		Text:     r.FormValue("text"),
		Position: watermarking.Position(r.FormValue("position")),
		Opacity:  float64(opacity) / 100,
	}.Normalize()
	if err != nil {
		return nil, classify(err)
	}

	img, name, f := h.readImage(r, ev)
	if f != nil {
		return nil, f
	}

	out, err := wm.Embed(img.Image, mark)
	if err != nil {
		return nil, classify(err)
	}
	return encode(out, img.Format, name, "watermarked", ev)
}

// runHash hashes the "file" upload. The algorithm is validated before any
// byte of the file is read.
func (h *Handlers) runHash(r *http.Request, ev *audit.Event) (*hashArtifact, *failure) {
	if f := h.parseUpload(r); f != nil {
		return nil, f
	}
	hasher, err := hashing.New(algorithmOrDefault(r.FormValue("algorithm")), h.HashChunkSize)
	if err != nil {
		return nil, classify(err)
	}

	file, header, f := formFile(r, "file", "Please choose a file to hash.")
	if f != nil {
		return nil, f
	}
	defer file.Close()

	return h.sum(hasher, file, header.Filename, ev)
}

// runHashBody hashes the raw request body.
func (h *Handlers) runHashBody(r *http.Request, ev *audit.Event) (*hashArtifact, *failure) {
	hasher, err := hashing.New(algorithmOrDefault(r.URL.Query().Get("algorithm")), h.HashChunkSize)
	if err != nil {
		return nil, classify(err)
	}
	return h.sum(hasher, r.Body, r.URL.Query().Get("filename"), ev)
}

func (h *Handlers) sum(hasher *hashing.Hasher, src io.Reader, filename string, ev *audit.Event) (*hashArtifact, *failure) {
	d, err := hasher.Sum(src)
	if err != nil {
		return nil, classify(err)
	}
	ev.InputBytes = d.Size
	ev.OutputBytes = int64(len(d.Hex))
	if filename != "" {
		filename = filepath.Base(filename)
	}
	return &hashArtifact{digest: d, filename: filename}, nil
}

func algorithmOrDefault(name string) string {
	if name == "" {
		return hashing.SHA256.String()
	}
	return name
}
