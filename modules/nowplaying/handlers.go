package nowplaying

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/zachfi/nowplaying/pkg/presets"
	"github.com/zachfi/nowplaying/pkg/schema"
)

const maxSchemaSize = 1 << 20

// RegisterHandlers adds the HTTP API to router.
func (n *NowPlaying) RegisterHandlers(router *mux.Router) {
	router.HandleFunc("/api/v1/presets", n.presetsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/nowplaying", n.schemaHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/nowplaying/{station}", n.stationHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/icy", n.icyHandler).Methods(http.MethodGet)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (n *NowPlaying) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		n.logger.Error("error writing response", "err", err)
	}
}

func (n *NowPlaying) writeError(w http.ResponseWriter, status int, err error) {
	n.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (n *NowPlaying) presetsHandler(w http.ResponseWriter, _ *http.Request) {
	n.writeJSON(w, http.StatusOK, n.registry.Names())
}

func (n *NowPlaying) stationHandler(w http.ResponseWriter, r *http.Request) {
	station := mux.Vars(r)["station"]
	n.serveFetch(w, r, presets.ByName(station))
}

func (n *NowPlaying) schemaHandler(w http.ResponseWriter, r *http.Request) {
	if !n.cfg.AllowCustomSources {
		n.writeError(w, http.StatusForbidden, errors.New("custom schemas are disabled"))
		return
	}

	var s schema.RadioSchema
	dec := json.NewDecoder(io.LimitReader(r.Body, maxSchemaSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		n.writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid schema"))
		return
	}

	n.serveFetch(w, r, presets.BySchema(s))
}

func (n *NowPlaying) serveFetch(w http.ResponseWriter, r *http.Request, src presets.Source) {
	records, err := n.client.Get(r.Context(), src)
	switch {
	case err == nil:
		n.writeJSON(w, http.StatusOK, records)
	case errors.Is(err, presets.ErrUnknownPreset):
		n.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		n.writeError(w, http.StatusGatewayTimeout, err)
	default:
		n.writeError(w, http.StatusInternalServerError, err)
	}
}

func (n *NowPlaying) icyHandler(w http.ResponseWriter, r *http.Request) {
	if !n.cfg.AllowCustomSources {
		n.writeError(w, http.StatusForbidden, errors.New("icy probes are disabled"))
		return
	}

	streamURL := r.URL.Query().Get("url")
	if streamURL == "" {
		n.writeError(w, http.StatusBadRequest, errors.New("missing url parameter"))
		return
	}

	n.writeJSON(w, http.StatusOK, n.icy.FetchMetadata(r.Context(), streamURL))
}
