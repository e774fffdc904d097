package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

func TestMarshalUnmarshal(t *testing.T) {
	in := sample{Table: "eve_agents", Rows: 2500}

	data, err := Marshal(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestEncodeDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	in := sample{Table: "eve_item_types", Rows: 42}

	require.NoError(t, EncodeFile(path, in))

	var out sample
	require.NoError(t, DecodeFile(path, &out))
	assert.Equal(t, in, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "eve_item_types")
}

func TestDecodeFileMissing(t *testing.T) {
	var out sample
	err := DecodeFile(filepath.Join(t.TempDir(), "nope.json"), &out)
	assert.Error(t, err)
}
