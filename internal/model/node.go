package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one key of an object node.
type Field struct {
	Key   string
	Value *Node
}

// Node is a parsed JSON value. Object keys keep their document order and
// scalars keep their source text, so a document that is parsed and marshaled
// again only differs where it was edited.
type Node struct {
	Kind   Kind
	Raw    []byte // scalars only; strings include their quotes
	Fields []Field
	Items  []*Node
}

// Parse reads a single JSON value.
func Parse(data []byte) (*Node, error) {
	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("reading value: %w", err)
	}
	return newNode(value, typ)
}

func newNode(value []byte, typ jsonparser.ValueType) (*Node, error) {
	switch typ {
	case jsonparser.Object:
		n := &Node{Kind: Object}
		err := jsonparser.ObjectEach(value, func(key, v []byte, t jsonparser.ValueType, _ int) error {
			child, err := newNode(v, t)
			if err != nil {
				return err
			}
			n.Set(string(key), child)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	case jsonparser.Array:
		n := &Node{Kind: Array}
		var firstErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
			if firstErr != nil {
				return
			}
			if err != nil {
				firstErr = err
				return
			}
			child, err := newNode(v, t)
			if err != nil {
				firstErr = err
				return
			}
			n.Items = append(n.Items, child)
		})
		if err != nil {
			return nil, err
		}
		if firstErr != nil {
			return nil, firstErr
		}
		return n, nil
	case jsonparser.String:
		raw := make([]byte, 0, len(value)+2)
		raw = append(raw, '"')
		raw = append(raw, value...)
		raw = append(raw, '"')
		return &Node{Kind: String, Raw: raw}, nil
	case jsonparser.Number:
		return &Node{Kind: Number, Raw: bytes.Clone(value)}, nil
	case jsonparser.Boolean:
		return &Node{Kind: Bool, Raw: bytes.Clone(value)}, nil
	case jsonparser.Null:
		return &Node{Kind: Null, Raw: []byte("null")}, nil
	default:
		return nil, fmt.Errorf("unsupported json value %q", value)
	}
}

// NewString returns a string node holding s.
func NewString(s string) *Node {
	return &Node{Kind: String, Raw: encodeString(s)}
}

// Get returns the value stored under key, or nil when n is not an object or
// has no such key.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != Object {
		return nil
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Set replaces the value under key in place, or appends the key when it is
// not present yet.
func (n *Node) Set(key string, v *Node) {
	for i := range n.Fields {
		if n.Fields[i].Key == key {
			n.Fields[i].Value = v
			return
		}
	}
	n.Fields = append(n.Fields, Field{Key: key, Value: v})
}

// Text returns the decoded value of a string node.
func (n *Node) Text() (string, bool) {
	if n == nil || n.Kind != String {
		return "", false
	}
	s, err := jsonparser.ParseString(n.Raw[1 : len(n.Raw)-1])
	if err != nil {
		return "", false
	}
	return s, true
}

// Truthy reports whether the value counts as set: absent, null, false, zero
// and the empty string do not.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case Null:
		return false
	case Bool:
		return string(n.Raw) == "true"
	case Number:
		f, err := strconv.ParseFloat(string(n.Raw), 64)
		return err != nil || f != 0
	case String:
		return len(n.Raw) > 2
	default:
		return true
	}
}

// Marshal encodes the node as compact JSON.
func (n *Node) Marshal() []byte {
	var buf bytes.Buffer
	n.writeTo(&buf)
	return buf.Bytes()
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return n.Marshal(), nil
}

func (n *Node) writeTo(buf *bytes.Buffer) {
	if n == nil {
		buf.WriteString("null")
		return
	}
	switch n.Kind {
	case Object:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(encodeString(f.Key))
			buf.WriteByte(':')
			f.Value.writeTo(buf)
		}
		buf.WriteByte('}')
	case Array:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.writeTo(buf)
		}
		buf.WriteByte(']')
	default:
		buf.Write(n.Raw)
	}
}

func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
