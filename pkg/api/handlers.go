package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfdata/zunload/pkg/parse"
)

// defaultPageSize caps a table page when the request gives no limit.
const defaultPageSize = 100

// Server holds the API server state
type Server struct {
	engine  Engine
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(engine Engine, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		engine:  engine,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth reports liveness; it answers even while parsing.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleStatus returns the engine's status snapshot. Safe to poll while
// the scan is running.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, s.engine.Status())
}

// handleListTables lists the output tables with their row counts, or
// 409 while the engine is not Ready.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Result()
	if err != nil {
		sendEngineError(w, err)
		return
	}
	infos := make([]TableInfo, 0, res.Registry().Len())
	for _, rt := range res.Registry().Types() {
		infos = append(infos, TableInfo{
			Name:  rt.Name,
			Table: rt.Table,
			Rows:  res.Table(rt.Name).Len(),
		})
	}
	sendSuccess(w, infos)
}

// handleTable returns one page of rows from a table. The name may be a
// record name like USBD or an output-table identifier like users.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Result()
	if err != nil {
		sendEngineError(w, err)
		return
	}

	name := chi.URLParam(r, "name")
	t := res.Table(name)
	if t == nil {
		t = res.TableByID(name)
	}
	if t == nil {
		sendError(w, "Unknown table: "+name, http.StatusNotFound)
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultPageSize)
	if offset < 0 || limit <= 0 {
		sendError(w, "Invalid paging parameters", http.StatusBadRequest)
		return
	}

	page := TablePage{
		Name:   t.Name,
		Fields: t.Fields,
		Total:  t.Len(),
		Offset: offset,
		Limit:  limit,
	}
	for i := offset; i < t.Len() && i < offset+limit; i++ {
		cells := make(map[string]string, len(t.Fields))
		for _, f := range t.Fields {
			cells[f] = t.Rows[i].Get(f).Format()
		}
		page.Rows = append(page.Rows, cells)
	}
	sendSuccess(w, page)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

func sendEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, parse.ErrNotReady) {
		sendError(w, err.Error(), http.StatusConflict)
		return
	}
	sendError(w, err.Error(), http.StatusInternalServerError)
}

func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(APIResponse{Success: false, Error: message})
}
