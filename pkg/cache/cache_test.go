package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfdata/zunload/pkg/table"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTables() map[string]*table.Table {
	users := table.New("USBD", []string{"USBD_NAME", "USBD_SPECIAL"})
	users.Append(table.Row{"USBD_NAME": table.String("IBMUSER"), "USBD_SPECIAL": table.String("YES")})
	users.Append(table.Row{"USBD_NAME": table.String("JOE"), "USBD_SPECIAL": table.String("NO")})

	groups := table.New("GPBD", []string{"GPBD_NAME"})
	groups.Append(table.Row{"GPBD_NAME": table.String("SYS1")})

	empty := table.New("GRBD", []string{"GRBD_NAME"})

	return map[string]*table.Table{"USBD": users, "GPBD": groups, "GRBD": empty}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)
	tables := sampleTables()

	require.NoError(t, s.Save("run1-", tables))

	loaded, err := s.Load("run1-")
	require.NoError(t, err)

	// Empty tables are not persisted; the rest round-trip intact.
	require.Len(t, loaded, 2)
	assert.True(t, tables["USBD"].Equal(loaded["USBD"]))
	assert.True(t, tables["GPBD"].Equal(loaded["GPBD"]))
	_, ok := loaded["GRBD"]
	assert.False(t, ok)
}

func TestLoadEmptyPrefix(t *testing.T) {
	s := openStore(t)

	loaded, err := s.Load("nothing-")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestPrefixIsolation(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("lpar1-", sampleTables()))

	other := table.New("USBD", []string{"USBD_NAME"})
	other.Append(table.Row{"USBD_NAME": table.String("OTHER")})
	require.NoError(t, s.Save("lpar2-", map[string]*table.Table{"USBD": other}))

	one, err := s.Load("lpar1-")
	require.NoError(t, err)
	two, err := s.Load("lpar2-")
	require.NoError(t, err)

	assert.Len(t, one, 2)
	require.Len(t, two, 1)
	assert.Equal(t, "OTHER", two["USBD"].Rows[0].Str("USBD_NAME"))
}

func TestSaveOverwrites(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("run-", sampleTables()))

	updated := table.New("USBD", []string{"USBD_NAME"})
	updated.Append(table.Row{"USBD_NAME": table.String("NEWUSER")})
	require.NoError(t, s.Save("run-", map[string]*table.Table{"USBD": updated}))

	loaded, err := s.Load("run-")
	require.NoError(t, err)
	assert.True(t, updated.Equal(loaded["USBD"]))
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("gone-", sampleTables()))
	require.NoError(t, s.Save("kept-", sampleTables()))

	require.NoError(t, s.Delete("gone-"))

	gone, err := s.Load("gone-")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := s.Load("kept-")
	require.NoError(t, err)
	assert.Len(t, kept, 2)
}

func TestReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save("run-", sampleTables()))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load("run-")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}
