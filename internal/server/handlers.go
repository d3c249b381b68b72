package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/buisihung11/langchain-basic/internal/llm"
	vlog "github.com/buisihung11/langchain-basic/internal/log"
	"github.com/buisihung11/langchain-basic/internal/pipeline"
)

//go:embed web/index.html
var indexHTML []byte

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		vlog.Error("encoding response", "err", err)
	}
}

// errorBody renders an error as JSON, with the stable error kind and a
// user-facing hint when the failure came from the completion client.
func errorBody(err error) map[string]string {
	body := map[string]string{"error": err.Error()}
	var lerr *llm.Error
	if errors.As(err, &lerr) {
		body["kind"] = string(lerr.Kind)
		body["hint"] = lerr.Hint()
	}
	return body
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.client.Models(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

type chatAPIRequest struct {
	Messages []llm.Message `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "messages must not be empty"})
		return
	}

	messages := req.Messages
	if messages[0].Role != llm.RoleSystem && s.cfg.SystemMessage != "" {
		messages = append([]llm.Message{{Role: llm.RoleSystem, Content: s.cfg.SystemMessage}}, messages...)
	}

	reply, err := s.client.Complete(r.Context(), messages, llm.Params{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": reply})
}

type pipelineAPIRequest struct {
	Topic  string `json:"topic"`
	Tone   string `json:"tone"`
	Length string `json:"length"`
}

type pipelineStepResult struct {
	OutputKey  string `json:"output_key"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req pipelineAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "topic is required"})
		return
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}
	if req.Length == "" {
		req.Length = "medium (500-800 words)"
	}

	var steps []pipelineStepResult
	started := make(map[int]time.Time)
	sink := func(i int, key string, st pipeline.Status, _ string, err error) {
		switch st {
		case pipeline.StatusStarted:
			started[i] = time.Now()
		case pipeline.StatusCompleted, pipeline.StatusFailed:
			sr := pipelineStepResult{
				OutputKey:  key,
				Status:     string(st),
				DurationMS: time.Since(started[i]).Milliseconds(),
			}
			if err != nil {
				sr.Error = err.Error()
			}
			steps = append(steps, sr)
		}
	}

	outputs, err := s.content.Run(r.Context(), s.client, llm.Params{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
	}, map[string]string{
		"topic":  req.Topic,
		"tone":   req.Tone,
		"length": req.Length,
	}, sink)
	if err != nil {
		body := map[string]any{"steps": steps}
		for k, v := range errorBody(err) {
			body[k] = v
		}
		var serr *pipeline.StepError
		if errors.As(err, &serr) {
			body["failed_step"] = serr.Index
			body["failed_output_key"] = serr.OutputKey
		}
		writeJSON(w, http.StatusBadGateway, body)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"outputs": outputs,
		"steps":   steps,
		"package": pipeline.ContentPackage(req.Topic, outputs),
	})
}
