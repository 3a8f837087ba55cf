// Package web exposes the analyses over HTTP with JSON bodies.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/panbanda/augur/pkg/parser"
	"github.com/panbanda/augur/pkg/spaces"
	"github.com/panbanda/augur/pkg/tools"
)

// AstPayload is the body of an AST request.
type AstPayload struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Code     string `json:"code"`
	Comment  bool   `json:"comment"`
	Span     bool   `json:"span"`
}

// AstResponse is the body of an AST response.
type AstResponse struct {
	ID   string         `json:"id"`
	Root *tools.AstNode `json:"root"`
}

// MetricsPayload is the body of a metrics request.
type MetricsPayload struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Code     string `json:"code"`
	Unit     bool   `json:"unit"`
}

// MetricsResponse is the body of a metrics response.
type MetricsResponse struct {
	ID       string           `json:"id"`
	Language string           `json:"language"`
	Metrics  *spaces.FuncSpace `json:"metrics"`
}

// CommentPayload is the body of a comment-removal request.
type CommentPayload struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Code     string `json:"code"`
}

// CommentResponse carries the stripped code; null when there was nothing
// to strip.
type CommentResponse struct {
	ID   string  `json:"id"`
	Code *string `json:"code"`
}

// FunctionPayload is the body of a function-span request.
type FunctionPayload struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Code     string `json:"code"`
}

// FunctionResponse lists the function spans of the file.
type FunctionResponse struct {
	ID    string               `json:"id"`
	Spans []tools.FunctionSpan `json:"spans"`
}

// Server wires the handlers onto a mux.
type Server struct {
	mux *http.ServeMux
}

// New builds the HTTP surface.
func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /ping", s.ping)
	s.mux.HandleFunc("POST /ast", s.ast)
	s.mux.HandleFunc("POST /metrics", s.metrics)
	s.mux.HandleFunc("POST /comment", s.comment)
	s.mux.HandleFunc("POST /function", s.function)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("serving on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func readPayload(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid payload: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// parseBody guesses the language and parses the submitted code. A nil
// result means the response has already been written.
func parseBody(w http.ResponseWriter, fileName, code string) *parser.ParseResult {
	source, ok := parser.NormalizeSource([]byte(code))
	if !ok {
		http.Error(w, "binary content", http.StatusBadRequest)
		return nil
	}
	language, _ := parser.GuessLanguage(source, fileName)
	if language == parser.LangUnknown {
		http.Error(w, "unknown language", http.StatusNotFound)
		return nil
	}
	psr := parser.New()
	defer psr.Close()
	result, err := psr.Parse(source, language, fileName, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil
	}
	return result
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (s *Server) ast(w http.ResponseWriter, r *http.Request) {
	var payload AstPayload
	if !readPayload(w, r, &payload) {
		return
	}
	result := parseBody(w, payload.FileName, payload.Code)
	if result == nil {
		return
	}
	root := tools.BuildAst(result, payload.Span, payload.Comment)
	writeJSON(w, http.StatusOK, AstResponse{ID: payload.ID, Root: root})
}

func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	var payload MetricsPayload
	if !readPayload(w, r, &payload) {
		return
	}
	result := parseBody(w, payload.FileName, payload.Code)
	if result == nil {
		return
	}
	space := spaces.Metrics(result)
	if space == nil {
		http.Error(w, "unknown language", http.StatusNotFound)
		return
	}
	if payload.Unit {
		space.Spaces = nil
	}
	writeJSON(w, http.StatusOK, MetricsResponse{
		ID:       payload.ID,
		Language: result.Language.Name(),
		Metrics:  space,
	})
}

func (s *Server) comment(w http.ResponseWriter, r *http.Request) {
	var payload CommentPayload
	if !readPayload(w, r, &payload) {
		return
	}
	result := parseBody(w, payload.FileName, payload.Code)
	if result == nil {
		return
	}
	var code *string
	if stripped := tools.RmComments(result); stripped != nil {
		text := string(stripped)
		code = &text
	}
	writeJSON(w, http.StatusOK, CommentResponse{ID: payload.ID, Code: code})
}

func (s *Server) function(w http.ResponseWriter, r *http.Request) {
	var payload FunctionPayload
	if !readPayload(w, r, &payload) {
		return
	}
	result := parseBody(w, payload.FileName, payload.Code)
	if result == nil {
		return
	}
	writeJSON(w, http.StatusOK, FunctionResponse{
		ID:    payload.ID,
		Spans: tools.FunctionSpans(result),
	})
}
