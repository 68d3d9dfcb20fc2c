package api

import (
	"encoding/base64"
	"net/http"

	"toolbox/internal/audit"
	"toolbox/internal/filters"
	"toolbox/internal/hashing"
	"toolbox/internal/imageops"
	"toolbox/internal/models"
	"toolbox/internal/watermarking"
)

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func formatNames() []string {
	formats := imageops.EncodableFormats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.String())
	}
	return names
}

func positionNames() []string {
	positions := watermarking.Positions()
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, string(p))
	}
	return names
}

// HandleHome renders the landing page.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, "home.html", models.HomePage{
		Page:    models.Page{Title: "Toolbox", Active: "home"},
		Formats: formatNames(),
	})
}

// HandleQRPage renders the QR form and, on POST, the generated code.
func (h *Handlers) HandleQRPage(w http.ResponseWriter, r *http.Request) {
	page := models.QRPage{Page: models.Page{Title: "QR code generator", Active: "qr"}}

	if r.Method == http.MethodPost {
		page.URLValue = r.FormValue("url")
		var png []byte
		f := h.track(r, "qr", func(ev *audit.Event) (f *failure) {
			png, f = h.runQR(page.URLValue, ev)
			return f
		})
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.QRImage = encodeBase64(png)
		}
	}

	h.render(w, "qr.html", page)
}

func (h *Handlers) HandleConvertPage(w http.ResponseWriter, r *http.Request) {
	page := models.ConvertPage{
		Page:    models.Page{Title: "Image converter", Active: "convert"},
		Formats: formatNames(),
		Target:  imageops.PNG.String(),
	}

	if r.Method == http.MethodPost {
		var art *imageArtifact
		f := h.track(r, "convert", func(ev *audit.Event) (f *failure) {
			art, f = h.runConvert(r, ev)
			return f
		})
		if v := r.FormValue("format"); v != "" {
			page.Target = v
		}
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Result = art.result()
		}
	}

	h.render(w, "convert.html", page)
}

func (h *Handlers) HandleCompressPage(w http.ResponseWriter, r *http.Request) {
	page := models.CompressPage{
		Page:    models.Page{Title: "Image compressor", Active: "compress"},
		Quality: imageops.DefaultQuality,
	}

	if r.Method == http.MethodPost {
		var art *imageArtifact
		f := h.track(r, "compress", func(ev *audit.Event) (f *failure) {
			art, f = h.runCompress(r, ev)
			return f
		})
		if q, ok := optionalInt(r.FormValue("quality")); ok && q > 0 {
			page.Quality = q
		}
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Result = art.result()
			page.Stats = art.stats()
		}
	}

	h.render(w, "compress.html", page)
}

func (h *Handlers) HandleFiltersPage(w http.ResponseWriter, r *http.Request) {
	page := models.FiltersPage{
		Page:     models.Page{Title: "Image filters", Active: "filters"},
		Filters:  filters.ListSupportedFilters(),
		Filter:   "grayscale",
		Strength: filters.DefaultStrength,
	}

	if r.Method == http.MethodPost {
		var art *imageArtifact
		f := h.track(r, "filter", func(ev *audit.Event) (f *failure) {
			art, f = h.runFilter(r, ev)
			return f
		})
		if v := r.FormValue("filter"); v != "" {
			page.Filter = v
		}
		if s, ok := optionalInt(r.FormValue("strength")); ok && r.FormValue("strength") != "" {
			page.Strength = filters.ClampStrength(s)
		}
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Result = art.result()
		}
	}

	h.render(w, "filters.html", page)
}

func (h *Handlers) HandleResizePage(w http.ResponseWriter, r *http.Request) {
	page := models.ResizePage{
		Page:       models.Page{Title: "Image resize", Active: "resize"},
		KeepAspect: true,
	}

	if r.Method == http.MethodPost {
		var art *imageArtifact
		f := h.track(r, "resize", func(ev *audit.Event) (f *failure) {
			art, f = h.runResize(r, ev)
			return f
		})
		page.Width = r.FormValue("width")
		page.Height = r.FormValue("height")
		page.KeepAspect = r.FormValue("keep_aspect") != ""
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Result = art.result()
		}
	}

	h.render(w, "resize.html", page)
}

func (h *Handlers) HandleWatermarkPage(w http.ResponseWriter, r *http.Request) {
	page := models.WatermarkPage{
		Page:       models.Page{Title: "Watermark", Active: "watermark"},
		Algorithms: watermarking.ListSupportedAlgorithms(),
		Algorithm:  "text",
		Positions:  positionNames(),
		Position:   string(watermarking.BottomRight),
		Opacity:    int(watermarking.DefaultOpacity * 100),
	}

	if r.Method == http.MethodPost {
		var art *imageArtifact
		f := h.track(r, "watermark", func(ev *audit.Event) (f *failure) {
			art, f = h.runWatermark(r, ev)
			return f
		})
		page.Text = r.FormValue("text")
		if v := r.FormValue("algorithm"); v != "" {
			page.Algorithm = v
		}
		if v := r.FormValue("position"); v != "" {
			page.Position = v
		}
		if o, ok := optionalInt(r.FormValue("opacity")); ok && o > 0 {
			page.Opacity = o
		}
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Result = art.result()
		}
	}

	h.render(w, "watermark.html", page)
}

func (h *Handlers) HandleHashPage(w http.ResponseWriter, r *http.Request) {
	page := models.HashPage{
		Page:       models.Page{Title: "File hash", Active: "hash"},
		Algorithms: hashing.ListSupportedAlgorithms(),
		Algorithm:  hashing.SHA256.String(),
	}

	if r.Method == http.MethodPost {
		var art *hashArtifact
		f := h.track(r, "hash", func(ev *audit.Event) (f *failure) {
			art, f = h.runHash(r, ev)
			return f
		})
		if v := r.FormValue("algorithm"); v != "" {
			page.Algorithm = v
		}
		if f != nil {
			page.ErrorMessage = f.message
		} else {
			page.Digest = art.digest.Hex
			page.Filename = art.filename
			page.Size = art.digest.Size
		}
	}

	h.render(w, "hash.html", page)
}
