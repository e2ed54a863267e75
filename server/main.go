//go:build !js
// +build !js

package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// newMux wires the page, the static bundle directory and the API endpoints.
func newMux(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	files := http.FileServer(http.Dir(staticDir))

	// Serve embedded index.html at root path
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(indexHTML)
			return
		}
		// Compiled bundle and anything else from disk
		files.ServeHTTP(w, r)
	})

	// Headless simulation streamed as Server-Sent Events
	mux.HandleFunc("/api/metrics", handleMetrics)

	// Health check
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return mux
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory holding the compiled lattice.js bundle")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Coherence lattice server starting on http://localhost%s", addr)
	log.Printf("Serving static files from: %s", *staticDir)
	log.Printf("Metrics stream endpoint: /api/metrics?gain=0.5&latent=1&frames=600")

	if err := http.ListenAndServe(addr, newMux(*staticDir)); err != nil {
		log.Fatal(err)
	}
}
