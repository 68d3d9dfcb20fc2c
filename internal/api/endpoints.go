package api

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"toolbox/internal/audit"
	"toolbox/internal/filters"
	"toolbox/internal/hashing"
	"toolbox/internal/imageops"
	"toolbox/internal/models"
	"toolbox/internal/watermarking"
)

// respondWithImage sends an image artifact as a download.
func (h *Handlers) respondWithImage(w http.ResponseWriter, art *imageArtifact) {
	w.Header().Set("Content-Type", art.format.MIMEType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": art.filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(art.data)))
	w.Header().Set("X-Image-Width", strconv.Itoa(art.width))
	w.Header().Set("X-Image-Height", strconv.Itoa(art.height))
	if art.compression != nil {
		w.Header().Set("X-Original-Size", strconv.Itoa(art.compression.OriginalSize))
		w.Header().Set("X-Compressed-Size", strconv.Itoa(art.compression.CompressedSize))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.data)
}

// imageEndpoint adapts one image tool to a JSON-error, binary-result endpoint.
func (h *Handlers) imageEndpoint(tool string, run func(*http.Request, *audit.Event) (*imageArtifact, *failure)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var art *imageArtifact
		f := h.track(r, tool, func(ev *audit.Event) (f *failure) {
			art, f = run(r, ev)
			return f
		})
		if f != nil {
			h.respondWithError(w, f.status, f.message)
			return
		}
		h.respondWithImage(w, art)
	}
}

// HandleCreateHash hashes a multipart "file" upload, or the raw body when the
// request is not multipart.
func (h *Handlers) HandleCreateHash(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var art *hashArtifact
	f := h.track(r, "hash", func(ev *audit.Event) (f *failure) {
		if mediaType == "multipart/form-data" {
			art, f = h.runHash(r, ev)
		} else {
			art, f = h.runHashBody(r, ev)
		}
		return f
	})
	if f != nil {
		h.respondWithError(w, f.status, f.message)
		return
	}

	h.respondWithJSON(w, http.StatusOK, models.HashResponse{
		Filename:  art.filename,
		Algorithm: art.digest.Algorithm.String(),
		Digest:    art.digest.Hex,
		Size:      art.digest.Size,
	})
}

// HandleCreateQR returns a PNG QR code for a JSON {"url": ...} body or a
// "url" form field.
func (h *Handlers) HandleCreateQR(w http.ResponseWriter, r *http.Request) {
	var content string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req models.QRRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		content = req.URL
	} else {
		content = r.FormValue("url")
	}

	var png []byte
	f := h.track(r, "qr", func(ev *audit.Event) (f *failure) {
		png, f = h.runQR(content, ev)
		return f
	})
	if f != nil {
		h.respondWithError(w, f.status, f.message)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// HandleHashAlgorithmListing returns a list of supported hash algorithms.
func (h *Handlers) HandleHashAlgorithmListing(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"algorithms": hashing.ListSupportedAlgorithms()})
}

// HandleWatermarkAlgorithmListing returns a list of supported watermarking algorithms.
func (h *Handlers) HandleWatermarkAlgorithmListing(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"algorithms": watermarking.ListSupportedAlgorithms(),
		"positions":  positionNames(),
	})
}

// HandleFilterListing returns the available image filters.
func (h *Handlers) HandleFilterListing(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"filters": filters.ListSupportedFilters()})
}

// HandleFormatListing returns the output formats the converter can write.
func (h *Handlers) HandleFormatListing(w http.ResponseWriter, r *http.Request) {
	formats := make([]map[string]string, 0)
	for _, f := range imageops.EncodableFormats() {
		formats = append(formats, map[string]string{"name": f.String(), "mime_type": f.MIMEType()})
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"formats": formats})
}
