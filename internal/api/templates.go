package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFiles = []string{
	"home.html",
	"qr.html",
	"convert.html",
	"compress.html",
	"filters.html",
	"resize.html",
	"watermark.html",
	"hash.html",
}

// Casers keep state between calls, so each call gets a fresh one.
func upper(s string) string { return cases.Upper(language.English).String(s) }
func title(s string) string { return cases.Title(language.English).String(s) }

var templateFuncs = template.FuncMap{
	"upper": upper,
	"title": title,
	// label turns identifiers like "bottom-right" into "Bottom Right".
	"label": func(s string) string { return title(strings.ReplaceAll(s, "-", " ")) },
	"bytes": humanBytes,
	"dataURI": func(mime, b64 string) template.URL {
		return template.URL("data:" + mime + ";base64," + b64)
	},
}

// Templates holds one parsed template set per page.
type Templates map[string]*template.Template

// ParseTemplates parses every page together with the shared layout.
func ParseTemplates() (Templates, error) {
	set := make(Templates, len(pageFiles))
	for _, page := range pageFiles {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		set[page] = t
	}
	return set, nil
}

// render executes the page into a buffer first so a failing template never
// leaves a half written response.
func (h *Handlers) render(w http.ResponseWriter, page string, data interface{}) {
	t, ok := h.Templates[page]
	if !ok {
		log.Printf("[ERROR] Unknown template %s", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("[ERROR] Failed to render %s: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func humanBytes(v interface{}) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	default:
		return fmt.Sprint(v)
	}

	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
