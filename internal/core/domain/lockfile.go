package domain

import (
	"bytes"
	"encoding/json"
	"iter"

	"go.trai.ch/zerr"
)

// PolicyfileLock is the complete, reproducible record of a locked policy.
type PolicyfileLock struct {
	// Name is the policy name.
	Name string `json:"name"`

	// RunList is the ordered run list of the policy.
	RunList []string `json:"run_list"`

	// CookbookLocks maps cookbook names to the exact content they were locked at.
	CookbookLocks map[string]CookbookLock `json:"cookbook_locks"`

	// SolutionDependencies holds the policy and cookbook constraints of the solution.
	SolutionDependencies SolutionLock `json:"solution_dependencies"`
}

// CookbookLock pins one cookbook to a version and a content identifier.
type CookbookLock struct {
	Version                 string `json:"version"`
	Identifier              string `json:"identifier"`
	DottedDecimalIdentifier string `json:"dotted_decimal_identifier"`

	// Source is the cookbook path relative to the policy, set for local cookbooks.
	Source string `json:"source,omitempty"`

	// CacheKey is the directory name under the cookbook cache, set for cached cookbooks.
	CacheKey string `json:"cache_key,omitempty"`

	// Origin is where a cached cookbook was fetched from.
	Origin string `json:"origin,omitempty"`

	SourceOptions map[string]string `json:"source_options,omitempty"`
}

// IsLocal reports whether the cookbook is sourced from a local path.
func (l CookbookLock) IsLocal() bool {
	return l.Source != ""
}

// SolutionLock is the serialized form of SolutionDependencies.
type SolutionLock struct {
	Policyfile   DependencyPairs         `json:"Policyfile"`
	Dependencies CookbookDependencyTable `json:"dependencies"`
}

// DependencyPair is a [name, constraint] pair, encoded as a two element JSON array.
type DependencyPair [2]string

// Name returns the dependency name.
func (p DependencyPair) Name() string { return p[0] }

// Constraint returns the raw constraint string.
func (p DependencyPair) Constraint() string { return p[1] }

// DependencyPairs is an ordered list of dependency pairs. It always encodes as
// a JSON array, never null.
type DependencyPairs []DependencyPair

// Requests converts the pairs to unparsed dependency requests.
func (p DependencyPairs) Requests() []DependencyRequest {
	reqs := make([]DependencyRequest, len(p))
	for i, pair := range p {
		reqs[i] = DependencyRequest{Name: pair.Name(), Constraint: pair.Constraint()}
	}
	return reqs
}

// MarshalJSON implements json.Marshaler.
func (p DependencyPairs) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return marshalUnescaped([]DependencyPair(p))
}

// CookbookDependencyTable maps "name (version)" keys to dependency pairs and
// keeps keys in insertion order, including through JSON encoding.
// The zero value is an empty table.
type CookbookDependencyTable struct {
	keys    []string
	entries map[string]DependencyPairs
}

// Set inserts or replaces the entry for key. A replaced key keeps its position.
func (t *CookbookDependencyTable) Set(key string, pairs DependencyPairs) {
	if t.entries == nil {
		t.entries = make(map[string]DependencyPairs)
	}
	if _, exists := t.entries[key]; !exists {
		t.keys = append(t.keys, key)
	}
	if pairs == nil {
		pairs = DependencyPairs{}
	}
	t.entries[key] = pairs
}

// Get returns the pairs stored under key.
func (t CookbookDependencyTable) Get(key string) (DependencyPairs, bool) {
	pairs, ok := t.entries[key]
	return pairs, ok
}

// Len returns the number of entries.
func (t CookbookDependencyTable) Len() int {
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t CookbookDependencyTable) Keys() []string {
	return append([]string(nil), t.keys...)
}

// All yields every entry in insertion order.
func (t CookbookDependencyTable) All() iter.Seq2[string, DependencyPairs] {
	return func(yield func(string, DependencyPairs) bool) {
		for _, k := range t.keys {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// MarshalJSON implements json.Marshaler, writing keys in insertion order.
func (t CookbookDependencyTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(k)
		if err != nil {
			return nil, err
		}
		value, err := marshalUnescaped(t.entries[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, keeping document key order.
func (t *CookbookDependencyTable) UnmarshalJSON(data []byte) error {
	*t = CookbookDependencyTable{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.With(zerr.New("expected a JSON object"), "token", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var pairs DependencyPairs
		if err := dec.Decode(&pairs); err != nil {
			return zerr.With(zerr.Wrap(err, "invalid dependency list"), "key", key)
		}
		t.Set(key, pairs)
	}

	_, err = dec.Token()
	return err
}

// marshalUnescaped is json.Marshal without HTML escaping, so constraints keep
// their literal "<", ">" and "&".
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
