package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/offerte-app/offerte/internal/handlers"
	"github.com/offerte-app/offerte/internal/httpx"
	"github.com/offerte-app/offerte/internal/logger"
	"github.com/offerte-app/offerte/internal/services"
)

//go:embed web
var webFS embed.FS

// New constructs the root http.Handler with all routes applied.
func New(docs *services.DocumentService, quotes *services.QuoteService, exporter *services.ExportService, dispatch *services.DispatchService) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoint ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	dh := handlers.NewDocumentHandler(docs, quotes)
	mux.HandleFunc("/api/document", requireMethod(http.MethodGet, dh.Get))
	mux.HandleFunc("/api/company", requireMethod(http.MethodPut, dh.UpdateCompany))
	mux.HandleFunc("/api/customer", requireMethod(http.MethodPut, dh.UpdateCustomer))
	mux.HandleFunc("/api/quote", requireMethod(http.MethodPut, dh.UpdateQuote))
	mux.HandleFunc("/api/settings", requireMethod(http.MethodPut, dh.UpdateSettings))

	// Item rows. Add via /api/items; update/delete via /api/items/update &
	// /api/items/delete for simplicity.
	mux.HandleFunc("/api/items", requireMethod(http.MethodPost, dh.AddItem))
	mux.HandleFunc("/api/items/update", requireMethod(http.MethodPost, dh.UpdateItem))
	mux.HandleFunc("/api/items/delete", requireMethod(http.MethodPost, dh.DeleteItem))

	ph := handlers.NewPhotoHandler(docs, quotes)
	mux.HandleFunc("/api/photos", requireMethod(http.MethodPost, ph.Upload))
	mux.HandleFunc("/api/photos/delete", requireMethod(http.MethodPost, ph.Delete))
	mux.HandleFunc("/photos/", requireMethod(http.MethodGet, ph.Serve))

	ah := handlers.NewActionHandler(docs, exporter, dispatch)
	mux.HandleFunc("/api/pdf", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			ah.GeneratePDF(w, r)
		case http.MethodGet:
			ah.DownloadPDF(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/api/send", requireMethod(http.MethodPost, ah.Send))
	mux.HandleFunc("/api/reset", requireMethod(http.MethodPost, ah.Reset))
	mux.HandleFunc("/api/status", requireMethod(http.MethodGet, ah.Status))
	mux.HandleFunc("/api/selftests", requireMethod(http.MethodGet, ah.SelfTests))

	pg := handlers.NewPageHandler(docs, quotes)
	mux.HandleFunc("/preview", requireMethod(http.MethodGet, pg.Preview))

	// Form UI and its assets.
	staticFS, _ := fs.Sub(webFS, "web/static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page, err := webFS.ReadFile("web/index.html")
		if err != nil {
			http.Error(w, "ui unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(page); err != nil {
			_ = err
		}
	})

	return withRecover(mux)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}
