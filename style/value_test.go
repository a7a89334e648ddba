package style

import (
	"bytes"
	"testing"
)

func TestValue_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"null", Null, true},
		{"empty string", Str(""), true},
		{"zero", Str("0"), false},
		{"string", Str("red"), false},
		{"empty object", Obj(), true},
		{"object", Obj(Field("a", Null)), false},
		{"empty list", List(), true},
		{"list", List(Str("a")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_At(t *testing.T) {
	v := Obj(
		Field("border", Obj(
			Field("top", Obj(Field("color", Str("#fe1")))),
			Field("width", Str("1px")),
		)),
	)

	if s, ok := v.At("border", "top", "color").Text(); !ok || s != "#fe1" {
		t.Errorf("At(border.top.color) = %q, %v", s, ok)
	}
	if got := v.At("border", "width", "deeper"); got.Kind() != KindNull {
		t.Errorf("At through scalar = %v, want null", got.Kind())
	}
	if got := v.At("missing"); got.Kind() != KindNull {
		t.Errorf("At(missing) = %v, want null", got.Kind())
	}
	if got := v.At(); !got.IsObject() {
		t.Error("At() without path must return value itself")
	}
}

func TestValue_Obj_RepeatedKeys(t *testing.T) {
	v := Obj(Field("a", Str("1")), Field("b", Str("2")), Field("a", Str("3")))
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
	if v.Members()[0].Key != "a" {
		t.Errorf("first key = %q, want a", v.Members()[0].Key)
	}
	if s, _ := v.At("a").Text(); s != "3" {
		t.Errorf("a = %q, want 3", s)
	}
}

func TestValue_AppendCanonical(t *testing.T) {
	a := Obj(Field("top", Str("1px")), Field("left", Str("2px")))
	b := Obj(Field("top", Str("1px")), Field("left", Str("2px")))
	c := Obj(Field("left", Str("2px")), Field("top", Str("1px")))
	d := Obj(Field("top", Str("1px2px")))

	if !bytes.Equal(a.AppendCanonical(nil), b.AppendCanonical(nil)) {
		t.Error("equal values must have equal encodings")
	}
	if bytes.Equal(a.AppendCanonical(nil), c.AppendCanonical(nil)) {
		t.Error("key order must be part of encoding")
	}
	if bytes.Equal(a.AppendCanonical(nil), d.AppendCanonical(nil)) {
		t.Error("different values must have different encodings")
	}
	if bytes.Equal(Null.AppendCanonical(nil), Str("").AppendCanonical(nil)) {
		t.Error("null and empty string must differ")
	}
}

func TestValue_String(t *testing.T) {
	v := Obj(Field("a", List(Str("x"), Null)), Field("b", Obj()))
	if got, want := v.String(), `{"a":["x",null],"b":{}}`; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
