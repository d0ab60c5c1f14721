package services

import (
	"strings"

	"github.com/mqmweb/catalog/internal/core/ports/driven"
)

// mockConfigStore implements driven.ConfigStore over a flat map.
type mockConfigStore struct {
	data    map[string]any
	setErr  error
	setKeys []string
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)

func newMockConfigStore(data map[string]any) *mockConfigStore {
	if data == nil {
		data = map[string]any{}
	}
	return &mockConfigStore{data: data}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	s, _ := m.data[key].(string)
	return s
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	b, _ := m.data[key].(bool)
	return b
}

func (m *mockConfigStore) GetStringSlice(key string) []string {
	s, _ := m.data[key].([]string)
	return s
}

func (m *mockConfigStore) GetMap(prefix string) map[string]any {
	out := map[string]any{}
	for k, v := range m.data {
		rest, ok := strings.CutPrefix(k, prefix+".")
		if !ok {
			continue
		}
		name, field, ok := strings.Cut(rest, ".")
		if !ok {
			continue
		}
		entry, _ := out[name].(map[string]any)
		if entry == nil {
			entry = map[string]any{}
			out[name] = entry
		}
		entry[field] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/mock/config.toml" }
