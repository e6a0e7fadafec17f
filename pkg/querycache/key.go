package querycache

import (
	"encoding/json"
	"reflect"
)

// Key identifies a cached query by procedure path and input object.
type Key struct {
	Path  string
	Input map[string]any
}

// NewKey builds a key from any JSON-encodable input. Inputs that are nil or
// do not encode to a JSON object produce an empty input, which matches every
// entry of path.
func NewKey(path string, input any) Key {
	return Key{Path: path, Input: normalize(input)}
}

// String returns the canonical form of the key. Object fields are emitted in
// sorted order, so equal keys produce equal strings.
func (k Key) String() string {
	input := k.Input
	if input == nil {
		input = map[string]any{}
	}
	data, err := json.Marshal(input)
	if err != nil {
		return k.Path
	}
	return k.Path + string(data)
}

// Matches reports whether entry falls under k: same path and every field of
// k.Input present in entry.Input with an equal value. Fields of entry not
// named by k are ignored.
func (k Key) Matches(entry Key) bool {
	if k.Path != entry.Path {
		return false
	}
	for field, want := range k.Input {
		got, ok := entry.Input[field]
		if !ok || !reflect.DeepEqual(want, got) {
			return false
		}
	}
	return true
}

func normalize(input any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	data, err := json.Marshal(input)
	if err != nil {
		return map[string]any{}
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return map[string]any{}
	}
	return obj
}
