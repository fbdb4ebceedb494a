package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"sharefm/config"
	"sharefm/core/draw"
	"sharefm/core/library"
	"sharefm/core/session"
	"sharefm/logger"
	"sharefm/model"
	"sharefm/repository"

	"github.com/gorilla/mux"
)

// APIHandler handles all API requests.
type APIHandler struct {
	cfg        *config.Config
	entries    repository.EntryRepository
	sessions   *session.Manager
	selector   *draw.Selector
	reconciler *library.Reconciler
	gate       *library.Gate
	startedAt  time.Time
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	cfg *config.Config,
	entries repository.EntryRepository,
	sessions *session.Manager,
	selector *draw.Selector,
	reconciler *library.Reconciler,
	gate *library.Gate,
) *APIHandler {
	return &APIHandler{
		cfg:        cfg,
		entries:    entries,
		sessions:   sessions,
		selector:   selector,
		reconciler: reconciler,
		gate:       gate,
		startedAt:  time.Now(),
	}
}

// Routes builds the router. Token-gated endpoints require the shared
// secret; session-gated endpoints require a valid access session; serving
// endpoints fail fast while the maintenance gate is held.
func (h *APIHandler) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/draw", h.RequireToken(h.CheckPause(h.DrawHandler))).Methods(http.MethodGet)
	router.HandleFunc("/get", h.CheckPause(h.WithSession(h.GetFileHandler))).Methods(http.MethodGet)
	router.HandleFunc("/image", h.CheckPause(h.WithSession(h.ImageHandler))).Methods(http.MethodGet)
	router.HandleFunc("/lyrics", h.CheckPause(h.WithSession(h.LyricsHandler))).Methods(http.MethodGet)
	router.HandleFunc("/metadata", h.CheckPause(h.WithSession(h.MetadataHandler))).Methods(http.MethodGet)
	router.HandleFunc("/status", h.RequireToken(h.StatusHandler)).Methods(http.MethodGet)
	router.HandleFunc("/scan", h.RequireToken(h.ScanHandler)).Methods(http.MethodGet)
	router.HandleFunc("/pause", h.RequireToken(h.PauseHandler)).Methods(http.MethodGet)
	router.HandleFunc("/resume", h.RequireToken(h.ResumeHandler)).Methods(http.MethodGet)
	router.HandleFunc("/teapot", h.TeapotHandler).Methods(http.MethodGet)

	return router
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("failed to encode response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: kind, Message: message})
}

// RequireToken gates a handler behind the shared secret, accepted either as
// an Authorization header ("Bearer <token>" or the bare token) or a token
// query parameter. The sources are checked independently, so a stray header
// injected by a proxy cannot reject a request carrying a valid query token.
func (h *APIHandler) RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var header string
		if fields := strings.Fields(r.Header.Get("Authorization")); len(fields) > 0 {
			header = fields[len(fields)-1]
		}
		query := r.URL.Query().Get("token")
		if h.cfg.AccessToken == "" || (header != h.cfg.AccessToken && query != h.cfg.AccessToken) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid access token")
			return
		}
		next(w, r)
	}
}

// CheckPause rejects requests while the maintenance gate is held.
func (h *APIHandler) CheckPause(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.gate.IsPaused() {
			writeError(w, http.StatusServiceUnavailable, "paused", "service temporarily unavailable during maintenance")
			return
		}
		next(w, r)
	}
}

// WithSession resolves the session query parameter to its catalog entry.
// Expired and unknown sessions produce distinct error kinds.
func (h *APIHandler) WithSession(next func(http.ResponseWriter, *http.Request, *model.CatalogEntry)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("session")
		if token == "" {
			writeError(w, http.StatusForbidden, "not_found", "missing session")
			return
		}
		entry, err := h.sessions.Validate(token)
		switch {
		case errors.Is(err, model.ErrExpired):
			writeError(w, http.StatusForbidden, "expired", "session expired")
			return
		case errors.Is(err, model.ErrNotFound):
			writeError(w, http.StatusForbidden, "not_found", "session or entry not found")
			return
		case err != nil:
			logger.Error("session validation failed", logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, "internal", "session validation failed")
			return
		}
		next(w, r, entry)
	}
}

// DrawHandler issues a new share: a random (optionally filtered) entry
// bound to a fresh expiring session.
func (h *APIHandler) DrawHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := model.Filters{
		Title:  q.Get("title"),
		Album:  q.Get("album"),
		Artist: q.Get("artist"),
	}

	expires := h.cfg.DefaultExpires
	if v := q.Get("expires"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "expires must be an integer number of seconds")
			return
		}
		expires = n
	}
	expires = h.cfg.ClampExpires(expires)

	sess, entry, err := h.selector.Draw(filters, time.Duration(expires)*time.Second)
	if err != nil {
		if errors.Is(err, model.ErrNoMatch) {
			writeError(w, http.StatusNotFound, "no_match", "no entry in the library matches the filters")
			return
		}
		logger.Error("draw failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "internal", "draw failed")
		return
	}

	writeJSON(w, http.StatusOK, model.DrawResponse{
		ID:           entry.ID,
		Title:        entry.Title,
		Album:        entry.Album,
		Artists:      entry.Artists,
		AlbumArtists: entry.AlbumArtists,
		Duration:     entry.Duration,
		Filename:     path.Base(entry.Path),
		Session:      sess.ID,
		ExpiresAt:    sess.ExpiresAt.Unix(),
		Href:         "/get?session=" + sess.ID,
		ImageURL:     "/image?session=" + sess.ID,
		LyricsURL:    "/lyrics?session=" + sess.ID,
		MetadataURL:  "/metadata?session=" + sess.ID,
	})
}

// GetFileHandler streams the audio file bound to a valid session. Range
// requests are honored by http.ServeFile.
func (h *APIHandler) GetFileHandler(w http.ResponseWriter, r *http.Request, entry *model.CatalogEntry) {
	if _, err := os.Stat(entry.Path); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "the session is valid but the file is gone")
		return
	}
	w.Header().Set("Content-Disposition", "inline; filename=\""+path.Base(entry.Path)+"\"")
	http.ServeFile(w, r, entry.Path)
}

// ImageHandler serves the entry's embedded cover art.
func (h *APIHandler) ImageHandler(w http.ResponseWriter, r *http.Request, entry *model.CatalogEntry) {
	data, mime, err := library.ReadCover(entry.Path)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no cover image available")
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("failed to write cover image", logger.ErrorField(err))
	}
}

// LyricsHandler serves the entry's lyrics sidecar file.
func (h *APIHandler) LyricsHandler(w http.ResponseWriter, r *http.Request, entry *model.CatalogEntry) {
	lyricsPath := library.LyricsPath(entry.Path)
	if _, err := os.Stat(lyricsPath); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "no lyrics available")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, lyricsPath)
}

// MetadataHandler returns the entry's metadata for a valid session.
func (h *APIHandler) MetadataHandler(w http.ResponseWriter, r *http.Request, entry *model.CatalogEntry) {
	writeJSON(w, http.StatusOK, entry)
}

// StatusHandler reports catalog size, uptime, and pause state.
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.entries.Count()
	if err != nil {
		logger.Error("failed to count entries", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "internal", "failed to count entries")
		return
	}
	status := "running"
	if h.gate.IsPaused() {
		status = "paused"
	}
	writeJSON(w, http.StatusOK, model.StatusResponse{
		Status: status,
		Count:  count,
		Online: time.Since(h.startedAt).Seconds(),
		Time:   float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

// ScanHandler triggers an on-demand reconciliation. The pass runs on its
// own goroutine so request workers stay free; only this request awaits it.
func (h *APIHandler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	type outcome struct {
		res library.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := h.reconciler.Reconcile()
		done <- outcome{res: res, err: err}
	}()
	out := <-done
	if out.err != nil {
		logger.Error("scan failed", logger.ErrorField(out.err))
		writeError(w, http.StatusInternalServerError, "internal", "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, model.ScanResponse{
		Added:   out.res.Added,
		Updated: out.res.Updated,
		Deleted: out.res.Deleted,
	})
}

// PauseHandler holds the maintenance gate.
func (h *APIHandler) PauseHandler(w http.ResponseWriter, r *http.Request) {
	h.gate.Pause()
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

// ResumeHandler releases the maintenance gate.
func (h *APIHandler) ResumeHandler(w http.ResponseWriter, r *http.Request) {
	h.gate.Resume()
	writeJSON(w, http.StatusOK, map[string]string{"status": "running"})
}

// TeapotHandler is a liveness wink.
func (h *APIHandler) TeapotHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}
