// Package preview serves freshly generated artifacts from memory so the
// output of a description can be inspected without touching disk.
package preview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/schema"

	"github.com/zodgen/zodgen/zodgen"
	"github.com/zodgen/zodgen/zodgen/sink"
)

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// Options are the per-request generation options, decoded from the query
// string (e.g. ?strict=true&noHooks=true).
type Options struct {
	Strict      bool `schema:"strict"`
	NoHooks     bool `schema:"noHooks"`
	NoCacheKeys bool `schema:"noKeys"`
}

// Server regenerates artifacts on demand for a single description path.
type Server struct {
	input string
}

// New creates a preview server for the description at input.
func New(input string) *Server {
	return &Server{input: input}
}

// Handler returns the HTTP handler: / lists artifacts as JSON,
// /artifacts/<name> serves one artifact's content.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/artifacts/", s.handleArtifact)
	return mux
}

// ListenAndServe runs the preview server on the given port.
func (s *Server) ListenAndServe(port int) error {
	fmt.Printf("zodgen preview listening on http://localhost:%d (input: %s)\n", port, s.input)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.Handler())
}

// generate runs the pipeline into a memory sink with the request's options.
func (s *Server) generate(r *http.Request) (*sink.Memory, error) {
	var opts Options
	if err := queryDecoder.Decode(&opts, r.URL.Query()); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}

	mem := sink.NewMemory()
	_, err := zodgen.Generate(r.Context(), &zodgen.Config{
		Input:       s.input,
		Sink:        mem,
		Strict:      opts.Strict,
		NoHooks:     opts.NoHooks,
		NoCacheKeys: opts.NoCacheKeys,
	})
	if err != nil {
		return nil, err
	}
	return mem, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	mem, err := s.generate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	files := mem.Files()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	type artifact struct {
		Name string `json:"name"`
		Size int    `json:"size"`
		URL  string `json:"url"`
	}
	artifacts := make([]artifact, len(names))
	for i, name := range names {
		artifacts[i] = artifact{Name: name, Size: len(files[name]), URL: "/artifacts/" + name}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"input":     s.input,
		"artifacts": artifacts,
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if name == "" {
		http.NotFound(w, r)
		return
	}
	mem, err := s.generate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	content := mem.Get(name)
	if content == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(content)
}
