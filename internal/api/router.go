package api

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type contextKey string

const requestIDKey contextKey = "request-id"

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// corsMiddleware adds CORS headers to each response
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags each request with an id, reusing X-Request-ID
// when the client sent one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[INFO] [%s] %s %s %d %s", requestIDFrom(r.Context()), r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// recoveryMiddleware turns a panic into a plain 500 so no internal detail
// reaches the client.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				log.Printf("[ERROR] [%s] panic serving %s: %v\n%s", requestIDFrom(r.Context()), r.URL.Path, p, debug.Stack())
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// limitUploads caps request bodies at max bytes.
func limitUploads(max int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRouter creates and configures a new application router.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(recoveryMiddleware)
	router.Use(corsMiddleware)
	router.Use(limitUploads(h.MaxUploadBytes))

	// HTML tool pages
	pageMethods := []string{http.MethodGet, http.MethodPost}
	router.HandleFunc("/", h.HandleHome).Methods(http.MethodGet)
	router.HandleFunc("/qr/", h.HandleQRPage).Methods(pageMethods...)
	router.HandleFunc("/image-converter/", h.HandleConvertPage).Methods(pageMethods...)
	router.HandleFunc("/image-compressor/", h.HandleCompressPage).Methods(pageMethods...)
	router.HandleFunc("/image-filters/", h.HandleFiltersPage).Methods(pageMethods...)
	router.HandleFunc("/image-resize/", h.HandleResizePage).Methods(pageMethods...)
	router.HandleFunc("/watermark/", h.HandleWatermarkPage).Methods(pageMethods...)
	router.HandleFunc("/hash/", h.HandleHashPage).Methods(pageMethods...)

	// Create a subrouter for API versioning
	apiV1 := router.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/hashes", h.HandleCreateHash).Methods(http.MethodPost)
	apiV1.HandleFunc("/hashes/algorithms", h.HandleHashAlgorithmListing).Methods(http.MethodGet)

	apiV1.HandleFunc("/qr", h.HandleCreateQR).Methods(http.MethodPost)

	apiV1.HandleFunc("/images/convert", h.imageEndpoint("convert", h.runConvert)).Methods(http.MethodPost)
	apiV1.HandleFunc("/images/compress", h.imageEndpoint("compress", h.runCompress)).Methods(http.MethodPost)
	apiV1.HandleFunc("/images/filter", h.imageEndpoint("filter", h.runFilter)).Methods(http.MethodPost)
	apiV1.HandleFunc("/images/resize", h.imageEndpoint("resize", h.runResize)).Methods(http.MethodPost)
	apiV1.HandleFunc("/images/watermark", h.imageEndpoint("watermark", h.runWatermark)).Methods(http.MethodPost)
	apiV1.HandleFunc("/images/filters", h.HandleFilterListing).Methods(http.MethodGet)
	apiV1.HandleFunc("/images/formats", h.HandleFormatListing).Methods(http.MethodGet)

	apiV1.HandleFunc("/watermarks/algorithms", h.HandleWatermarkAlgorithmListing).Methods(http.MethodGet)

	// Add a simple health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	return router
}
