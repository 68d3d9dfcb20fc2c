package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"toolbox/internal/audit"
	"toolbox/internal/filters"
	"toolbox/internal/hashing"
	"toolbox/internal/imageops"
	"toolbox/internal/qr"
	"toolbox/internal/watermarking"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

const genericFailureMessage = "Something went wrong while processing your request. Please try again."

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Templates      Templates
	Recorder       audit.Recorder
	MaxUploadBytes int64
	HashChunkSize  int
}

// Options configure NewHandlers.
type Options struct {
	Recorder       audit.Recorder
	MaxUploadBytes int64
	HashChunkSize  int
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(opts Options) (*Handlers, error) {
	templates, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	if opts.Recorder == nil {
		opts.Recorder = audit.Nop{}
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	return &Handlers{
		Templates:      templates,
		Recorder:       opts.Recorder,
		MaxUploadBytes: opts.MaxUploadBytes,
		HashChunkSize:  opts.HashChunkSize,
	}, nil
}

// --- Helper Functions ---

// respondWithJSON is a helper to send a JSON response.
func (h *Handlers) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("[ERROR] Failed to encode response: %v", err)
		}
	}
}

// respondWithError is a helper to send a JSON error message.
func (h *Handlers) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, map[string]string{"error": message})
}

// failure is the unsuccessful half of a tool outcome: a message that is safe
// to show and the cause that is only logged.
type failure struct {
	status   int
	message  string
	cause    error
	internal bool
}

func (f *failure) Error() string { return f.message }

func invalid(message string, cause error) *failure {
	return &failure{status: http.StatusBadRequest, message: message, cause: cause}
}

func internal(cause error) *failure {
	return &failure{
		status:   http.StatusInternalServerError,
		message:  genericFailureMessage,
		cause:    errors.WithStack(cause),
		internal: true,
	}
}

func (f *failure) outcome() audit.Outcome {
	if f.internal {
		return audit.OutcomeFailed
	}
	return audit.OutcomeInvalid
}

// track runs one tool invocation and records its event. Caller errors are
// logged at INFO, internal faults at ERROR with their stack.
func (h *Handlers) track(r *http.Request, tool string, run func(ev *audit.Event) *failure) *failure {
	ev := audit.NewEvent(tool, requestIDFrom(r.Context()))
	f := run(&ev)

	outcome := audit.OutcomeOK
	if f != nil {
		outcome = f.outcome()
		if f.internal {
			log.Printf("[ERROR] [%s] %s failed: %+v", ev.RequestID, tool, f.cause)
		} else {
			log.Printf("[INFO] [%s] %s rejected: %s (%v)", ev.RequestID, tool, f.message, f.cause)
		}
	}

	if err := h.Recorder.Record(r.Context(), ev.Finish(outcome)); err != nil {
		log.Printf("[ERROR] [%s] Failed to record %s event: %v", ev.RequestID, tool, err)
	}
	return f
}

// parseUpload parses a multipart body, mapping size and encoding problems to
// user messages.
func (h *Handlers) parseUpload(r *http.Request) *failure {
	if r.ContentLength > h.MaxUploadBytes {
		return invalid(h.tooLargeMessage(), fmt.Errorf("content length %d", r.ContentLength))
	}

	err := r.ParseMultipartForm(multipartMemory)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return invalid(h.tooLargeMessage(), err)
	case errors.Is(err, http.ErrNotMultipart):
		return invalid("Please submit the form with a file attached.", err)
	default:
		return invalid("The upload could not be read.", err)
	}
}

func (h *Handlers) tooLargeMessage() string {
	return fmt.Sprintf("The upload is larger than the %s limit.", humanBytes(h.MaxUploadBytes))
}

// formFile opens an uploaded file; the caller closes it.
func formFile(r *http.Request, field, missing string) (multipart.File, *multipart.FileHeader, *failure) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, invalid(missing, err)
		}
		return nil, nil, invalid("The upload could not be read.", err)
	}
	return file, header, nil
}

// readImage decodes the "image" upload.
func (h *Handlers) readImage(r *http.Request, ev *audit.Event) (*imageops.Image, string, *failure) {
	file, header, f := formFile(r, "image", "Please choose an image to upload.")
	if f != nil {
		return nil, "", f
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", internal(err)
	}
	ev.InputBytes = int64(len(data))

	img, err := imageops.Open(data)
	if err != nil {
		return nil, "", classify(err)
	}
	return img, header.Filename, nil
}

// classify maps a library error onto a failure.
func classify(err error) *failure {
	switch {
	case errors.Is(err, imageops.ErrMissingInput):
		return invalid("Please choose an image to upload.", err)
	case errors.Is(err, imageops.ErrUnsupportedFormat):
		return invalid("Unsupported image format.", err)
	case errors.Is(err, imageops.ErrInvalidDimensions):
		return invalid(fmt.Sprintf("Width and height must be whole numbers between 1 and %d.", imageops.MaxDimension), err)
	case errors.Is(err, imageops.ErrInvalidQuality):
		return invalid("Quality must be between 1 and 100.", err)
	case errors.Is(err, imageops.ErrImageTooLarge):
		return invalid("The image is too large to process.", err)
	case errors.Is(err, filters.ErrUnknownFilter):
		return invalid("Please choose one of the available filters.", err)
	case errors.Is(err, watermarking.ErrUnknownAlgorithm):
		return invalid("Please choose one of the available watermark styles.", err)
	case errors.Is(err, watermarking.ErrEmptyText):
		return invalid("Please enter the watermark text.", err)
	case errors.Is(err, watermarking.ErrTextTooLong):
		return invalid(fmt.Sprintf("Watermark text must be at most %d characters.", watermarking.MaxTextLength), err)
	case errors.Is(err, watermarking.ErrInvalidOpacity):
		return invalid("Opacity must be between 1 and 100.", err)
	case errors.Is(err, watermarking.ErrUnknownPosition):
		return invalid("Please choose one of the available positions.", err)
	case errors.Is(err, qr.ErrEmptyContent):
		return invalid("Please enter a URL before generating a QR code.", err)
	case errors.Is(err, qr.ErrContentTooLarge):
		return invalid(fmt.Sprintf("The URL is too long for a QR code (at most %d bytes).", qr.MaxContentLength), err)
	case errors.Is(err, hashing.ErrUnsupportedAlgorithm):
		return invalid(capitalize(err.Error()), err)
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return invalid("The upload is too large.", err)
	}
	return internal(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// outputName derives the download name, e.g. photo.jpg -> photo_resized.png.
func outputName(original, suffix string, format imageops.Format) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		stem = "image"
	}
	return fmt.Sprintf("%s_%s.%s", stem, suffix, format.Extension())
}
