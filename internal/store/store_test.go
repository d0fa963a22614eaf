package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchors.yaml")
	doc := `anchors:
  - match: "Esprit Dr,"
    field: start_address
  - match: "N Downwater St,"
    field: end_address
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	rules, err := NewAnchorStore(path).Load()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, AnchorRule{Match: "Esprit Dr,", Field: FieldStartAddress}, rules[0])
	assert.Equal(t, AnchorRule{Match: "N Downwater St,", Field: FieldEndAddress}, rules[1])
}

func TestLoadMissingFileYieldsNoRules(t *testing.T) {
	rules, err := NewAnchorStore(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadEmptyPathYieldsNoRules(t *testing.T) {
	rules, err := NewAnchorStore("").Load()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestLoadRejectsEmptyMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchors.yaml")
	doc := `anchors:
  - match: ""
    field: start_address
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := NewAnchorStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match must not be empty")
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchors.yaml")
	doc := `anchors:
  - match: "Main St,"
    field: middle_address
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := NewAnchorStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("anchors: [not: closed"), 0644))

	_, err := NewAnchorStore(path).Load()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "anchors.yaml")
	store := NewAnchorStore(path)

	rules := []AnchorRule{
		{Match: "Esprit Dr,", Field: FieldStartAddress},
		{Match: "N Downwater St,", Field: FieldEndAddress},
	}
	require.NoError(t, store.Save(rules))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rules, loaded)
}

func TestSaveWithoutPath(t *testing.T) {
	assert.Error(t, NewAnchorStore("").Save(nil))
}
