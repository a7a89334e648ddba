// Package style models block style attribute objects: untrusted, nested
// mappings whose key order is significant for the produced CSS.
package style

import (
	"encoding/binary"
	"strings"
)

// Kind of a style value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Member is a single key of an object together with its value.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable style attribute value. Scalars of any type are kept
// as their literal text, objects keep keys in input order.
type Value struct {
	kind    Kind
	text    string
	members []Member
	items   []Value
}

// Null is the absent value.
var Null = Value{}

// Str returns scalar value.
func Str(s string) Value {
	return Value{kind: KindString, text: s}
}

// Obj returns object value with members in the given order. Repeated keys
// replace earlier values in place.
func Obj(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		v.members = v.set(m.Key, m.Value)
	}
	return v
}

// List returns sequence value.
func List(items ...Value) Value {
	return Value{kind: KindList, items: append([]Value(nil), items...)}
}

// Field is a shortcut for building object members.
func Field(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

func (v Value) set(key string, value Value) []Member {
	for i := range v.members {
		if v.members[i].Key == key {
			v.members[i].Value = value
			return v.members
		}
	}
	return append(v.members, Member{Key: key, Value: value})
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// IsEmpty reports whether value means "no style": null, empty string or
// object without members. Lists are empty when they have no items.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.text == ""
	case KindObject:
		return len(v.members) == 0
	case KindList:
		return len(v.items) == 0
	default:
		return true
	}
}

// Text returns scalar text, ok is false for anything but scalars.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Len returns number of object members or list items.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindList:
		return len(v.items)
	default:
		return 0
	}
}

// Members returns object members in input order. Callers must not modify
// returned slice.
func (v Value) Members() []Member {
	return v.members
}

// Items returns list items. Callers must not modify returned slice.
func (v Value) Items() []Value {
	return v.items
}

// Get returns member value by key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Null, false
}

// At walks path through nested objects and returns Null when any step is
// missing or is not an object.
func (v Value) At(path ...string) Value {
	cur := v
	for _, key := range path {
		if cur.kind != KindObject {
			return Null
		}
		next, ok := cur.Get(key)
		if !ok {
			return Null
		}
		cur = next
	}
	return cur
}

// AppendCanonical appends unambiguous binary encoding of the value to b. Two
// values have equal encodings only when they are equal including key order.
func (v Value) AppendCanonical(b []byte) []byte {
	b = append(b, byte(v.kind))
	switch v.kind {
	case KindString:
		b = appendString(b, v.text)
	case KindObject:
		b = binary.AppendUvarint(b, uint64(len(v.members)))
		for _, m := range v.members {
			b = appendString(b, m.Key)
			b = m.Value.AppendCanonical(b)
		}
	case KindList:
		b = binary.AppendUvarint(b, uint64(len(v.items)))
		for _, it := range v.items {
			b = it.AppendCanonical(b)
		}
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// String returns compact JSON-like rendering, used for logging.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		sb.WriteByte('"')
		sb.WriteString(v.text)
		sb.WriteByte('"')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(m.Key)
			sb.WriteString(`":`)
			m.Value.write(sb)
		}
		sb.WriteByte('}')
	case KindList:
		sb.WriteByte('[')
		for i, it := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			it.write(sb)
		}
		sb.WriteByte(']')
	}
}
