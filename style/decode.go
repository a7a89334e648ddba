package style

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	yaml "gopkg.in/yaml.v3"
)

// maxDepth limits nesting of decoded documents, style objects are never
// deeper than a few levels.
const maxDepth = 32

var ErrUnsupported = errors.New("unsupported style document type")

// IsDocument checks if file name looks like a style document we know how to
// decode.
func IsDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseDocument decodes style document selecting decoder by file name
// extension. Document may hold a single style object or a list of them, in
// the latter case every item is returned separately.
func ParseDocument(name string, data []byte) ([]Value, error) {
	var (
		v   Value
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		v, err = ParseJSON(data)
	case ".yaml", ".yml":
		v, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if err != nil {
		return nil, err
	}
	if v.Kind() == KindList {
		return v.Items(), nil
	}
	return []Value{v}, nil
}

// ParseJSON decodes JSON (comments and trailing commas are allowed)
// preserving key order.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	v, err := decodeJSON(dec, 0)
	if err != nil {
		return Null, fmt.Errorf("unable to decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Null, errors.New("unable to decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxDepth {
		return Null, errors.New("document is nested too deep")
	}

	tok, err := dec.Token()
	if err != nil {
		return Null, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Value{kind: KindObject}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Null, err
				}
				key, ok := kt.(string)
				if !ok {
					return Null, fmt.Errorf("unexpected object key %v", kt)
				}
				val, err := decodeJSON(dec, depth+1)
				if err != nil {
					return Null, err
				}
				obj.members = obj.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return obj, nil
		case '[':
			list := Value{kind: KindList}
			for dec.More() {
				val, err := decodeJSON(dec, depth+1)
				if err != nil {
					return Null, err
				}
				list.items = append(list.items, val)
			}
			if _, err := dec.Token(); err != nil {
				return Null, err
			}
			return list, nil
		}
		return Null, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return Str(t), nil
	case json.Number:
		return Str(t.String()), nil
	case bool:
		if !t {
			return Null, nil
		}
		return Str("true"), nil
	case nil:
		return Null, nil
	}
	return Null, fmt.Errorf("unexpected token %v", tok)
}

// ParseYAML decodes YAML preserving key order.
func ParseYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Null, fmt.Errorf("unable to decode yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return Null, nil
	}
	v, err := fromNode(doc.Content[0], 0)
	if err != nil {
		return Null, fmt.Errorf("unable to decode yaml: %w", err)
	}
	return v, nil
}

func fromNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxDepth {
		return Null, errors.New("document is nested too deep")
	}

	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return Null, nil
		case "!!bool":
			if strings.EqualFold(n.Value, "false") {
				return Null, nil
			}
		}
		return Str(n.Value), nil
	case yaml.MappingNode:
		obj := Value{kind: KindObject}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return Null, fmt.Errorf("line %d: object key must be scalar", k.Line)
			}
			val, err := fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return Null, err
			}
			obj.members = obj.set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		list := Value{kind: KindList}
		for _, c := range n.Content {
			val, err := fromNode(c, depth+1)
			if err != nil {
				return Null, err
			}
			list.items = append(list.items, val)
		}
		return list, nil
	}
	return Null, fmt.Errorf("line %d: unsupported node", n.Line)
}

// MustParseJSON is ParseJSON which panics on error, intended for tests and
// static initialization.
func MustParseJSON(s string) Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}
