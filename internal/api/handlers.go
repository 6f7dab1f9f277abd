package api

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"quimiview/internal/config"
	"quimiview/internal/elements"
	"quimiview/internal/serialio"
	"quimiview/internal/state"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// Server holds the handler dependencies; the composition root builds it
// and hands it to NewRouter.
type Server struct {
	Config config.Config
	DB     *elements.Dataset
	State  *state.Holder
	Serial *serialio.Manager
	Logger *slog.Logger
}

type indexData struct {
	Elements   []*elements.Record
	SerialPort string
	Listening  bool
}

// IndexHandler renders the viewer page.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	port, listening := s.Serial.Active()
	data := indexData{
		Elements:   s.DB.All(),
		SerialPort: port,
		Listening:  listening,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.Logger.Error("render index", "error", err)
	}
}

// CurrentElementHandler returns the most recently resolved element.
func (s *Server) CurrentElementHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.State.Get()
	if !ok {
		writeError(w, http.StatusNotFound, "no element loaded")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ElementHandler looks an element up by symbol.
func (s *Server) ElementHandler(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	rec, ok := s.DB.FindBySymbol(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "element not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// SerialPortsHandler lists the serial devices visible to the transport.
func (s *Server) SerialPortsHandler(w http.ResponseWriter, r *http.Request) {
	ports, err := s.Serial.ListPorts()
	if err != nil {
		s.Logger.Error("list serial ports", "error", err)
		ports = nil
	}
	if ports == nil {
		ports = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ports": ports})
}

type serialStartRequest struct {
	Port     string `json:"port"`
	Baudrate int    `json:"baudrate"`
}

type serialStartResponse struct {
	Success   bool   `json:"success"`
	Port      string `json:"port"`
	RequestID string `json:"request_id"`
	Error     string `json:"error,omitempty"`
}

// SerialStartHandler starts listening on the requested port, stopping
// any active listener first. Absent body keys fall back to the
// configured defaults. An open failure is reported as success:false,
// not a server error; the process keeps running without a connection.
func (s *Server) SerialStartHandler(w http.ResponseWriter, r *http.Request) {
	req := serialStartRequest{
		Port:     s.Config.SerialPort,
		Baudrate: s.Config.Baudrate,
	}
	if r.Body != nil {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if raw, ok := body["port"]; ok {
				json.Unmarshal(raw, &req.Port)
			}
			if raw, ok := body["baudrate"]; ok {
				json.Unmarshal(raw, &req.Baudrate)
			}
		}
	}

	resp := serialStartResponse{Port: req.Port, RequestID: uuid.NewString()}
	if err := s.Serial.Start(req.Port, req.Baudrate); err != nil {
		s.Logger.Error("start serial listener", "port", req.Port, "error", err, "request_id", resp.RequestID)
		resp.Error = err.Error()
	} else {
		resp.Success = true
	}
	writeJSON(w, http.StatusOK, resp)
}

// SerialStopHandler stops the active listener, if any.
func (s *Server) SerialStopHandler(w http.ResponseWriter, r *http.Request) {
	s.Serial.Stop()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
