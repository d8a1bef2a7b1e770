package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Reserved config keys.
const (
	KeyToken   = "auth.token"
	KeyBaseURL = "auth.baseUrl"
)

// ErrNotFound is returned when a config path does not exist.
var ErrNotFound = errors.New("path not found")

// Store is a dotted-path view over the JSON config file. The file is read on
// Open and written back wholesale on Save.
type Store struct {
	path string
	data map[string]any
}

// Open reads the config file at path, treating a missing file as empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]any{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if s.data == nil {
		s.data = map[string]any{}
	}
	return s, nil
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the config back to disk, creating the directory if needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Get returns the value at a dotted path.
func (s *Store) Get(path string) (any, error) {
	tokens, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	val, ok := getAtPath(s.data, tokens)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return val, nil
}

// Set stores a value at a dotted path. The raw string is coerced: input that
// parses as JSON (true, 42, {"a":1}, [1]) is stored as the decoded value,
// anything else as a string.
func (s *Store) Set(path, raw string) error {
	return s.SetValue(path, CoerceValue(raw))
}

// SetValue stores an already-typed value at a dotted path.
func (s *Store) SetValue(path string, value any) error {
	tokens, err := parsePath(path)
	if err != nil {
		return err
	}
	root := setNode(s.data, tokens, value)
	rootMap, ok := root.(map[string]any)
	if !ok {
		return fmt.Errorf("invalid config root after set")
	}
	s.data = rootMap
	return nil
}

// Delete removes the value at a dotted path. Returns ErrNotFound when the
// path does not exist.
func (s *Store) Delete(path string) error {
	tokens, err := parsePath(path)
	if err != nil {
		return err
	}
	root, changed, err := unsetNode(any(s.data), tokens)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	rootMap, ok := root.(map[string]any)
	if !ok {
		return fmt.Errorf("invalid config root after delete")
	}
	s.data = rootMap
	return nil
}

// Flatten returns all leaf values keyed by dotted path, sorted by key.
func (s *Store) Flatten() []Entry {
	var out []Entry
	flatten("", s.data, &out)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Entry is a flattened config leaf.
type Entry struct {
	Key   string
	Value any
}

// CoerceValue turns a raw CLI string into its config representation.
func CoerceValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

var sensitiveFragments = []string{"token", "secret", "password", "key"}

// IsSensitive reports whether a config key holds a credential-like value.
func IsSensitive(key string) bool {
	lower := strings.ToLower(key)
	for _, frag := range sensitiveFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}

// MaskValue partially masks a secret, keeping only the first and last four
// characters of its string form.
func MaskValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

type pathToken struct {
	key   string
	index *int
}

func parsePath(path string) ([]pathToken, error) {
	s := strings.TrimSpace(path)
	if s == "" {
		return nil, fmt.Errorf("path is empty")
	}
	var out []pathToken
	i := 0
	for i < len(s) {
		if s[i] == '.' {
			i++
			continue
		}

		start := i
		for i < len(s) && s[i] != '.' && s[i] != '[' {
			i++
		}
		if i > start {
			k := strings.TrimSpace(s[start:i])
			if k != "" {
				out = append(out, pathToken{key: k})
			}
		}

		for i < len(s) && s[i] == '[' {
			i++
			idxStart := i
			for i < len(s) && s[i] != ']' {
				i++
			}
			if i >= len(s) || s[i] != ']' {
				return nil, fmt.Errorf("invalid path: missing closing ] in %q", path)
			}
			rawIdx := strings.TrimSpace(s[idxStart:i])
			idx, err := strconv.Atoi(rawIdx)
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("invalid array index %q in %q", rawIdx, path)
			}
			i++
			out = append(out, pathToken{index: &idx})
		}

		if i < len(s) && s[i] == '.' {
			i++
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("path is empty")
	}
	return out, nil
}

func getAtPath(root map[string]any, path []pathToken) (any, bool) {
	cur := any(root)
	for _, tok := range path {
		if tok.index != nil {
			arr, ok := cur.([]any)
			if !ok || *tok.index < 0 || *tok.index >= len(arr) {
				return nil, false
			}
			cur = arr[*tok.index]
			continue
		}
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := obj[tok.key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func setNode(node any, path []pathToken, value any) any {
	if len(path) == 0 {
		return value
	}
	tok := path[0]
	rest := path[1:]

	if tok.index != nil {
		var arr []any
		if existing, ok := node.([]any); ok {
			arr = existing
		}
		for len(arr) <= *tok.index {
			arr = append(arr, nil)
		}
		arr[*tok.index] = setNode(arr[*tok.index], rest, value)
		return arr
	}

	obj, ok := node.(map[string]any)
	if !ok {
		obj = map[string]any{}
	}
	obj[tok.key] = setNode(obj[tok.key], rest, value)
	return obj
}

func unsetNode(node any, path []pathToken) (any, bool, error) {
	if len(path) == 0 {
		return node, false, nil
	}
	tok := path[0]
	rest := path[1:]

	if len(rest) == 0 {
		if tok.index != nil {
			arr, ok := node.([]any)
			if !ok || *tok.index < 0 || *tok.index >= len(arr) {
				return node, false, nil
			}
			arr = append(arr[:*tok.index], arr[*tok.index+1:]...)
			return arr, true, nil
		}
		obj, ok := node.(map[string]any)
		if !ok {
			return node, false, nil
		}
		if _, ok := obj[tok.key]; !ok {
			return node, false, nil
		}
		delete(obj, tok.key)
		return obj, true, nil
	}

	if tok.index != nil {
		arr, ok := node.([]any)
		if !ok || *tok.index < 0 || *tok.index >= len(arr) {
			return node, false, nil
		}
		newChild, changed, err := unsetNode(arr[*tok.index], rest)
		if err != nil {
			return node, false, err
		}
		if !changed {
			return node, false, nil
		}
		arr[*tok.index] = newChild
		return arr, true, nil
	}

	obj, ok := node.(map[string]any)
	if !ok {
		return node, false, nil
	}
	child, ok := obj[tok.key]
	if !ok {
		return node, false, nil
	}
	newChild, changed, err := unsetNode(child, rest)
	if err != nil {
		return node, false, err
	}
	if !changed {
		return node, false, nil
	}
	obj[tok.key] = newChild
	return obj, true, nil
}

func flatten(prefix string, node any, out *[]Entry) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for i, child := range v {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), child, out)
		}
	default:
		if prefix != "" {
			*out = append(*out, Entry{Key: prefix, Value: node})
		}
	}
}
