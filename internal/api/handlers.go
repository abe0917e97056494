package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adofai-tools/tilebeat/pkg/buildinfo"
	"github.com/adofai-tools/tilebeat/pkg/errors"
	pkgio "github.com/adofai-tools/tilebeat/pkg/io"
	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/store"
)

// maxBodyBytes caps request bodies. Matches the pipeline's remote level cap.
const maxBodyBytes = 64 << 20

// createLevelRequest archives a level under an optional display name.
type createLevelRequest struct {
	Name    string `json:"name,omitempty"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

type listResponse struct {
	Entries []*store.Entry `json:"entries"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleTimings(w http.ResponseWriter, r *http.Request) {
	opts, err := s.timingsOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Path != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "path sources are not accepted over the API"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pkgio.NewReport(result))
}

// timingsOptions reads the request into pipeline options. An application/json
// request carries the {"content"/"url"} envelope; any other content type is
// taken as raw level text. Levels are themselves JSON-shaped, so the envelope
// is keyed on the content type rather than sniffed from the payload.
func (s *Server) timingsOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := s.decodeJSON(w, r, &opts)
		return opts, err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	opts.Content = string(body)
	return opts, nil
}

func (s *Server) handleCreateLevel(w http.ResponseWriter, r *http.Request) {
	var req createLevelRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name != "" {
		if err := errors.ValidateLevelName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	opts := pipeline.Options{URL: req.URL, Content: req.Content, Refresh: req.Refresh}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := store.NewEntry(uuid.NewString(), req.Name, result)
	entry.Source = opts.SourceName()
	if err := s.store.Put(r.Context(), entry); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "archive level"))
		return
	}
	s.writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", q))
			return
		}
		limit = n
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "list levels"))
		return
	}
	if entries == nil {
		entries = []*store.Entry{}
	}
	s.writeJSON(w, http.StatusOK, listResponse{Entries: entries})
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.New(errors.ErrCodeLevelNotFound, "no archived level with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "get level %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, errors.New(errors.ErrCodeLevelNotFound, "no archived level with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "delete level %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON reads a JSON request body into v with a size cap.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError maps an error to a status code and writes the JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusForCode(code)

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"status", status,
			"error", err,
			"request_id", RequestID(r.Context()))
	} else {
		s.logger.Warn("request rejected",
			"path", r.URL.Path,
			"status", status,
			"code", code,
			"request_id", RequestID(r.Context()))
	}

	s.writeJSON(w, status, errorResponse{
		Error: errorBody{Code: string(code), Message: errors.UserMessage(err)},
	})
}

// statusForCode maps structured error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLevel,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeLevelNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
