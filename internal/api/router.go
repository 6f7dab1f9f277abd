package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP surface onto a Server.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.HandleFunc("/", s.IndexHandler).Methods("GET")
	r.HandleFunc("/api/current_element", s.CurrentElementHandler).Methods("GET")
	r.HandleFunc("/api/element/{symbol}", s.ElementHandler).Methods("GET")
	r.HandleFunc("/api/serial/ports", s.SerialPortsHandler).Methods("GET")
	r.HandleFunc("/api/serial/start", s.SerialStartHandler).Methods("POST")
	r.HandleFunc("/api/serial/stop", s.SerialStopHandler).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}
