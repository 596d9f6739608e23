package fusekafka

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// canonicalMarkers are removed from relevant keys, in this order
var canonicalMarkers = []string{"monitoring_", WorkerKeyPrefix, "logging_", "top_"}

// Relevant reports whether a raw property key is forwarded to workers
func Relevant(key string) bool {
	return strings.HasPrefix(key, LoggingPrefix) ||
		strings.HasPrefix(key, WorkerKeyPrefix) ||
		key == SubstitutionsKey
}

// Canonical strips every namespace marker from key.
// Distinct raw keys can collapse to the same name, e.g.
// fuse_kafka_directories and monitoring_logging_directories.
func Canonical(key string) string {
	for _, marker := range canonicalMarkers {
		key = strings.ReplaceAll(key, marker, "")
	}
	return key
}

// ValueKind tags a decoded property value
type ValueKind int

const (
	// KindMapping is a JSON object; entries keep their document order
	KindMapping ValueKind = iota + 1
	// KindSequence is a JSON array
	KindSequence
)

// Value is a decoded property value
type Value struct {
	Kind ValueKind
	// Mapping holds object entries when Kind is KindMapping
	Mapping *orderedmap.OrderedMap[string, json.RawMessage]
	// Sequence holds array elements when Kind is KindSequence
	Sequence []json.RawMessage
}

// DecodeValue parses a property value as a JSON object or array
func DecodeValue(raw string) (Value, error) {
	data := bytes.TrimSpace([]byte(raw))
	if !json.Valid(data) {
		return Value{}, fmt.Errorf("%w: malformed JSON %q", ErrDecode, raw)
	}

	switch data[0] {
	case '{':
		mapping := orderedmap.New[string, json.RawMessage]()
		if err := json.Unmarshal(data, mapping); err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return Value{Kind: KindMapping, Mapping: mapping}, nil
	case '[':
		var sequence []json.RawMessage
		if err := json.Unmarshal(data, &sequence); err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return Value{Kind: KindSequence, Sequence: sequence}, nil
	default:
		return Value{}, fmt.Errorf("%w: expected object or array, got %q", ErrDecode, raw)
	}
}

// Tokens flattens the value: key then value per mapping entry, or every sequence element
func (v Value) Tokens() []string {
	switch v.Kind {
	case KindMapping:
		tokens := make([]string, 0, 2*v.Mapping.Len())
		for pair := v.Mapping.Oldest(); pair != nil; pair = pair.Next() {
			tokens = append(tokens, pair.Key, renderToken(pair.Value))
		}
		return tokens
	case KindSequence:
		tokens := make([]string, 0, len(v.Sequence))
		for _, element := range v.Sequence {
			tokens = append(tokens, renderToken(element))
		}
		return tokens
	default:
		return nil
	}
}

// renderToken returns JSON strings unquoted and any other value as compact JSON
func renderToken(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Apply normalizes one property entry into the Configuration.
// Irrelevant keys leave it unchanged. A malformed value returns an error wrapping ErrDecode.
func (c *Configuration) Apply(entry Entry) error {
	if !Relevant(entry.Key) {
		return nil
	}

	name := Canonical(entry.Key)
	if _, ok := c.entries.Get(name); !ok {
		c.entries.Set(name, []string{})
	}

	value, err := DecodeValue(entry.Value)
	if err != nil {
		return err
	}
	c.appendTokens(name, value.Tokens()...)
	return nil
}
