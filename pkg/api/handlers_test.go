package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/layout"
	"github.com/mfdata/zunload/pkg/parse"
	"github.com/mfdata/zunload/pkg/table"
)

func readyServer(t *testing.T) *Server {
	t.Helper()

	users := table.New("USBD", []string{"USBD_NAME", "USBD_SPECIAL"})
	users.Append(table.Row{"USBD_NAME": table.String("IBMUSER"), "USBD_SPECIAL": table.String("YES")})
	users.Append(table.Row{"USBD_NAME": table.String("JOE"), "USBD_SPECIAL": table.String("NO")})

	reg, err := layout.NewRegistry()
	require.NoError(t, err)
	engine := parse.RestoreRACF(reg, map[string]*table.Table{"USBD": users})

	return NewServer(engine, ServerConfig{Bind: "127.0.0.1", Port: 8080}, nil)
}

func initServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "unload.irrdbu00")
	require.NoError(t, os.WriteFile(path, []byte("0100 SYS1\n"), 0600))

	reg, err := layout.NewRegistry()
	require.NoError(t, err)
	engine, err := parse.NewRACF(reg, path)
	require.NoError(t, err)

	return NewServer(engine, ServerConfig{Bind: "127.0.0.1", Port: 8080}, nil)
}

// get runs a handler through a request with an optional chi URL param.
func get(handler http.HandlerFunc, target, paramKey, paramValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if paramKey != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(paramKey, paramValue)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if data != nil && resp.Data != nil {
		raw, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return resp
}

func TestHandleHealth(t *testing.T) {
	rec := get(readyServer(t).handleHealth, "/api/v1/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var data map[string]string
	resp := decodeResponse(t, rec, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", data["status"])
}

func TestHandleStatus(t *testing.T) {
	rec := get(readyServer(t).handleStatus, "/api/v1/status", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var st parse.Status
	resp := decodeResponse(t, rec, &st)
	assert.True(t, resp.Success)
	assert.Equal(t, "Ready", st.Status)
	assert.Equal(t, 2, st.RecordsParsed)
}

func TestHandleStatusWhileParsing(t *testing.T) {
	// The status endpoint answers before the engine ever starts.
	rec := get(initServer(t).handleStatus, "/api/v1/status", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var st parse.Status
	decodeResponse(t, rec, &st)
	assert.Equal(t, "Initial Object", st.Status)
}

func TestHandleListTables(t *testing.T) {
	rec := get(readyServer(t).handleListTables, "/api/v1/tables", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var infos []TableInfo
	resp := decodeResponse(t, rec, &infos)
	assert.True(t, resp.Success)
	require.NotEmpty(t, infos)

	byName := make(map[string]TableInfo, len(infos))
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, 2, byName["USBD"].Rows)
	assert.Equal(t, "users", byName["USBD"].Table)
	assert.Equal(t, 0, byName["GPBD"].Rows)
}

func TestHandleListTablesNotReady(t *testing.T) {
	rec := get(initServer(t).handleListTables, "/api/v1/tables", "", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec, nil)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHandleTable(t *testing.T) {
	rec := get(readyServer(t).handleTable, "/api/v1/tables/USBD", "name", "USBD")

	assert.Equal(t, http.StatusOK, rec.Code)
	var page TablePage
	decodeResponse(t, rec, &page)
	assert.Equal(t, "USBD", page.Name)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, "IBMUSER", page.Rows[0]["USBD_NAME"])
	assert.Equal(t, "YES", page.Rows[0]["USBD_SPECIAL"])
}

func TestHandleTableByIdentifier(t *testing.T) {
	rec := get(readyServer(t).handleTable, "/api/v1/tables/users", "name", "users")

	assert.Equal(t, http.StatusOK, rec.Code)
	var page TablePage
	decodeResponse(t, rec, &page)
	assert.Equal(t, "USBD", page.Name)
}

func TestHandleTablePaging(t *testing.T) {
	s := readyServer(t)

	rec := get(s.handleTable, "/api/v1/tables/USBD?offset=1&limit=1", "name", "USBD")
	require.Equal(t, http.StatusOK, rec.Code)
	var page TablePage
	decodeResponse(t, rec, &page)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "JOE", page.Rows[0]["USBD_NAME"])

	// Paging past the end returns an empty page, not an error.
	rec = get(s.handleTable, "/api/v1/tables/USBD?offset=10", "name", "USBD")
	require.Equal(t, http.StatusOK, rec.Code)
	page = TablePage{}
	decodeResponse(t, rec, &page)
	assert.Empty(t, page.Rows)
}

func TestHandleTableBadPaging(t *testing.T) {
	rec := get(readyServer(t).handleTable, "/api/v1/tables/USBD?limit=bogus", "name", "USBD")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTableUnknown(t *testing.T) {
	rec := get(readyServer(t).handleTable, "/api/v1/tables/NOPE", "name", "NOPE")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec, nil)
	assert.False(t, resp.Success)
}

func TestHandleTableNotReady(t *testing.T) {
	rec := get(initServer(t).handleTable, "/api/v1/tables/USBD", "name", "USBD")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
