package api

import "github.com/mfdata/zunload/pkg/parse"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind string
	Port int
}

// Engine is the parse engine the API serves; both the text and the
// binary parsers satisfy it.
type Engine interface {
	Status() parse.Status
	Result() (*parse.Result, error)
}

// TableInfo describes one output table in the listing endpoint.
type TableInfo struct {
	Name  string `json:"name"`
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// TablePage is one page of rows from a single table. Cells are rendered
// to strings; dates format as YYYY-MM-DD, unset dates as "".
type TablePage struct {
	Name   string              `json:"name"`
	Fields []string            `json:"fields"`
	Total  int                 `json:"total"`
	Offset int                 `json:"offset"`
	Limit  int                 `json:"limit"`
	Rows   []map[string]string `json:"rows"`
}
