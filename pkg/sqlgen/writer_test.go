package sqlgen

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenevan/sde2sql/pkg/metrics"
	"github.com/zenevan/sde2sql/pkg/schema"
	"github.com/zenevan/sde2sql/pkg/testutil"
)

var agentSpec = schema.TableSpec{
	Table:   "eve_agents",
	Columns: []string{"agent_id", "level"},
}

func makeRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{i + 1, i % 5}
	}
	return rows
}

func TestWriteSingleBatch(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(1000, testutil.TestLogger(t), nil)

	path := filepath.Join(dir, "eve_agents.sql")
	require.NoError(t, w.Write(path, agentSpec, makeRows(3), WriteOptions{Replace: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	script := string(data)

	assert.Contains(t, script, "-- Generated by sde2sql on ")
	assert.Contains(t, script, "START TRANSACTION;")
	assert.Contains(t, script, "DELETE FROM eve_agents;")
	assert.Contains(t, script, "INSERT INTO eve_agents (agent_id, level)")
	assert.Contains(t, script, "(1, 0),")
	assert.Contains(t, script, "(3, 2);")
	assert.Contains(t, script, "COMMIT;")

	// Single batch keeps the plain file name.
	_, err = os.Stat(filepath.Join(dir, "eve_agents_1.sql"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteEmptyRowsWritesNothing(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(1000, testutil.TestLogger(t), nil)

	path := filepath.Join(dir, "eve_agents.sql")
	require.NoError(t, w.Write(path, agentSpec, nil, WriteOptions{Replace: true}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteSplitsBatches(t *testing.T) {
	dir := t.TempDir()
	collector := metrics.NewCollector()
	w := NewWriter(1000, testutil.TestLogger(t), collector)

	path := filepath.Join(dir, "eve_agents.sql")
	require.NoError(t, w.Write(path, agentSpec, makeRows(2500), WriteOptions{Replace: true}))

	// 2500 rows at a 1000-row limit yield exactly three numbered files.
	wantRows := []int{1000, 1000, 500}
	for part := 1; part <= 3; part++ {
		data, err := os.ReadFile(filepath.Join(dir, "eve_agents_"+strconv.Itoa(part)+".sql"))
		require.NoError(t, err, "part %d", part)
		script := string(data)

		assert.Equal(t, wantRows[part-1], strings.Count(script, "\n("),
			"row count in part %d", part)

		if part == 1 {
			assert.Contains(t, script, "DELETE FROM eve_agents;")
		} else {
			assert.NotContains(t, script, "DELETE FROM")
		}
		assert.Contains(t, script, "-- Insert data part "+strconv.Itoa(part)+" of 3")
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "unnumbered file must not exist for multi-batch writes")

	s := collector.Summary()
	assert.Equal(t, int64(2500), s.TableRows["eve_agents"])
	assert.Equal(t, int64(3), s.FilesWritten)
}

func TestWriteBatchesReassembleOriginalOrder(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(100, testutil.TestLogger(t), nil)

	rows := makeRows(250)
	path := filepath.Join(dir, "eve_agents.sql")
	require.NoError(t, w.Write(path, agentSpec, rows, WriteOptions{}))

	var ids []string
	for part := 1; part <= 3; part++ {
		data, err := os.ReadFile(filepath.Join(dir, "eve_agents_"+strconv.Itoa(part)+".sql"))
		require.NoError(t, err)
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "(") {
				ids = append(ids, line[1:strings.Index(line, ",")])
			}
		}
	}

	require.Len(t, ids, 250)
	for i, id := range ids {
		assert.Equal(t, strconv.Itoa(i+1), id, "row %d out of order", i)
	}
}

func TestWriteWithoutReplaceSkipsDelete(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(1000, testutil.TestLogger(t), nil)

	path := filepath.Join(dir, "eve_solar_systems_The_Forge.sql")
	spec := schema.TableSpec{Table: "eve_solar_systems", Columns: []string{"system_id"}}
	require.NoError(t, w.Write(path, spec, []Row{{30000142}}, WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "DELETE FROM")
}

func TestWriteSanitizesValues(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(1000, testutil.TestLogger(t), nil)

	spec := schema.TableSpec{Table: "eve_corporations", Columns: []string{"corporation_id", "corporation_name", "tax_rate", "description"}}
	rows := []Row{{1000035, "O'Brien & Sons", 0.05, nil}}

	path := filepath.Join(dir, "eve_corporations.sql")
	require.NoError(t, w.Write(path, spec, rows, WriteOptions{Replace: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(1000035, 'O''Brien & Sons', 0.05, NULL);")
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(1000, testutil.TestLogger(t), nil)

	path := filepath.Join(dir, "eve_agents.sql")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, w.Write(path, agentSpec, makeRows(1), WriteOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}
