package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestOrderedMap_Delete(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("c", "3")

	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestOrderedMap_NilIsEmpty(t *testing.T) {
	var m *OrderedMap[string]

	_, ok := m.Get("x")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
	assert.Nil(t, m.Keys())
	for range m.All() {
		t.Fatal("nil map should not yield")
	}
}

func TestOrderedMap_JSON(t *testing.T) {
	var m OrderedMap[int]
	require.NoError(t, json.Unmarshal([]byte(`{"z": 1, "a": 2, "m": 3}`), &m))

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2,"m":3}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Zero(t, m.Len())

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &m))
}

func TestOrderedMap_YAML(t *testing.T) {
	var m OrderedMap[string]
	require.NoError(t, yaml.Unmarshal([]byte("z: one\na: two\n"), &m))
	assert.Equal(t, []string{"z", "a"}, m.Keys())

	out, err := yaml.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, "z: one\na: two\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &m))
}
