package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/lcoh-model/internal/config"
	"go.uber.org/zap"
)

// runRequest is the JSON body accepted by the evaluate, optimize and sweep
// endpoints. Every field is optional.
type runRequest struct {
	Parameters         map[string]config.ParameterOverride `json:"parameters,omitempty"`
	EnforceFeasibility *bool                               `json:"enforceFeasibility,omitempty"`
	Samples            int                                 `json:"samples,omitempty"`
	Optimizer          *config.OptimizerConfig             `json:"optimizer,omitempty"`
}

// requestError carries the HTTP status for a rejected request.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...interface{}) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

// loadConfiguration builds the run configuration from either a JSON body or a
// multipart upload of a YAML config file in the "file" field.
func (h *handler) loadConfiguration(w http.ResponseWriter, r *http.Request) (*config.Configuration, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		cfg *config.Configuration
		err error
	)
	if mediaType == "multipart/form-data" {
		cfg, err = h.configurationFromUpload(r)
	} else {
		cfg, err = configurationFromJSON(r.Body)
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize),
			}
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, badRequest("%v", err)
	}
	return cfg, nil
}

func configurationFromJSON(body io.Reader) (*config.Configuration, error) {
	var req runRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, badRequest("failed to decode request: %v", err)
	}

	cfg, err := config.DefaultConfiguration()
	if err != nil {
		return nil, err
	}
	cfg.Parameters = req.Parameters
	if req.Optimizer != nil {
		cfg.Optimizer = *req.Optimizer
		cfg.Optimizer.Normalize()
	}
	if req.EnforceFeasibility != nil {
		cfg.Optimizer.EnforceFeasibility = *req.EnforceFeasibility
	}
	if req.Samples != 0 {
		cfg.Sensitivity.Samples = req.Samples
	}
	return cfg, nil
}

func (h *handler) configurationFromUpload(r *http.Request) (*config.Configuration, error) {
	if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, badRequest("failed to parse upload: %v", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, badRequest("missing configuration file")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file", zap.Error(closeErr))
		}
	}()

	cfg, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		return nil, badRequest("%v", err)
	}

	if v := r.FormValue("enforceFeasibility"); v != "" {
		cfg.Optimizer.EnforceFeasibility = coerceBool(v)
	}
	if v := strings.TrimSpace(r.FormValue("samples")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, badRequest("invalid samples %q", v)
		}
		cfg.Sensitivity.Samples = n
	}
	return cfg, nil
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		h.respondErrorWithOp(w, reqErr.status, reqErr.msg, op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	case json.Number:
		if parsed, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return parsed != 0
		}
	}
	return false
}
