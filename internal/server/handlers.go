package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/iwvelando/lcoh-model/internal/config"
	"github.com/iwvelando/lcoh-model/internal/optimizer"
	"github.com/iwvelando/lcoh-model/internal/sensitivity"
	"github.com/iwvelando/lcoh-model/internal/session"
	"github.com/iwvelando/lcoh-model/internal/valuation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type parametersResponse struct {
	Parameters []session.Row `json:"parameters"`
}

type evaluateResponse struct {
	Parameters []session.Row    `json:"parameters"`
	Result     valuation.Result `json:"result"`
	MoneyCheck string           `json:"moneyCheck"`
	Warnings   []string         `json:"warnings,omitempty"`
	Duration   string           `json:"duration"`
}

type optimizeResponse struct {
	Parameters []session.Row      `json:"parameters"`
	Outcome    *optimizer.Outcome `json:"optimization"`
	MoneyCheck string             `json:"moneyCheck"`
	Warnings   []string           `json:"warnings,omitempty"`
	Duration   string             `json:"duration"`
}

type sweepResponse struct {
	Series      []sensitivity.Series  `json:"series"`
	Sensitivity []sensitivity.Summary `json:"sensitivity,omitempty"`
	Message     string                `json:"message,omitempty"`
	Warnings    []string              `json:"warnings,omitempty"`
	Duration    string                `json:"duration"`
}

func (h *handler) handleParameters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, parametersResponse{Parameters: session.New().Rows()})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// prepare loads the request configuration and builds its session.
func (h *handler) prepare(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, *session.Session, bool) {
	cfg, err := h.loadConfiguration(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return nil, nil, false
	}
	s, err := cfg.NewSession()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, nil, false
	}
	return cfg, s, true
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"
	start := time.Now()

	cfg, s, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	result, err := valuation.Evaluate(s.Assignment())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to evaluate: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("valuation computed",
		zap.String("op", op),
		zap.Float64("lcoh", result.LCOH),
		zap.Float64("npv", result.NPV),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, evaluateResponse{
		Parameters: s.Rows(),
		Result:     result,
		MoneyCheck: result.MoneyCheck(),
		Warnings:   cfg.ValidateConfiguration(),
		Duration:   elapsed.String(),
	})
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"
	start := time.Now()

	cfg, s, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	runner := optimizer.NewRunner(h.logger, cfg.Optimizer)
	enforce := cfg.Optimizer.EnforceFeasibility
	outcome, err := runner.Optimize(s.Assignment(), s.DecisionSet(), enforce)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("optimizer execution failed: %v", err), op)
		return
	}
	h.metrics.observeOptimization(outcome.Converged, enforce)

	// Only a converged run updates the session values.
	if outcome.Converged {
		if err := s.Apply(outcome.Values); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
	}

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Parameters: s.Rows(),
		Outcome:    outcome,
		MoneyCheck: outcome.Result.MoneyCheck(),
		Warnings:   cfg.ValidateConfiguration(),
		Duration:   time.Since(start).String(),
	})
}

func (h *handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSweep"
	start := time.Now()

	cfg, s, ok := h.prepare(w, r, op)
	if !ok {
		return
	}

	set := s.DecisionSet()
	series, err := sensitivity.Sweep(s.Assignment(), set, cfg.Sensitivity.Samples)
	switch {
	case errors.Is(err, sensitivity.ErrNoDecisionVariables):
		h.writeJSON(w, http.StatusOK, sweepResponse{
			Series:   []sensitivity.Series{},
			Message:  err.Error(),
			Warnings: cfg.ValidateConfiguration(),
			Duration: time.Since(start).String(),
		})
		return
	case errors.Is(err, sensitivity.ErrInvalidSampleCount):
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	case err != nil:
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to sweep: %v", err), op)
		return
	}
	h.metrics.observeSweep(len(set) * cfg.Sensitivity.Samples)

	summaries, err := sensitivity.Summarize(series)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to summarize sweep: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, sweepResponse{
		Series:      sensitivity.Ordered(set, series),
		Sensitivity: summaries,
		Warnings:    cfg.ValidateConfiguration(),
		Duration:    time.Since(start).String(),
	})
}

// handleConfigExport converts an editor payload into a config.yaml document.
func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	// Round-trip through the loader so only usable files are handed out.
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(yamlBytes))
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil {
		_, err = cfg.NewSession()
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

var configKeyOrder = []string{"logging", "output", "optimizer", "sensitivity", "parameters"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}
