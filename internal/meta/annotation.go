package meta

import (
	"github.com/zclconf/go-cty/cty"
)

// Annotation is one directive attached to a unit. Type names another unit
// (usually one of the core.* annotations or a user-declared annotation
// unit), and Attrs holds its attribute values in cty form, the same value
// model the manifest loader produces.
type Annotation struct {
	Type  string
	Attrs map[string]cty.Value
}

// NewAnnotation creates an annotation of the given type with no attributes.
func NewAnnotation(typ string) Annotation {
	return Annotation{Type: typ, Attrs: map[string]cty.Value{}}
}

func (a Annotation) withAttr(key string, val cty.Value) Annotation {
	attrs := make(map[string]cty.Value, len(a.Attrs)+1)
	for k, v := range a.Attrs {
		attrs[k] = v
	}
	attrs[key] = val
	return Annotation{Type: a.Type, Attrs: attrs}
}

// WithString returns a copy of the annotation with a string attribute set.
func (a Annotation) WithString(key, val string) Annotation {
	return a.withAttr(key, cty.StringVal(val))
}

// WithStrings returns a copy of the annotation with a string-list attribute set.
func (a Annotation) WithStrings(key string, vals ...string) Annotation {
	if len(vals) == 0 {
		return a.withAttr(key, cty.ListValEmpty(cty.String))
	}
	elems := make([]cty.Value, len(vals))
	for i, v := range vals {
		elems[i] = cty.StringVal(v)
	}
	return a.withAttr(key, cty.ListVal(elems))
}

// WithBool returns a copy of the annotation with a bool attribute set.
func (a Annotation) WithBool(key string, val bool) Annotation {
	return a.withAttr(key, cty.BoolVal(val))
}

// WithNumber returns a copy of the annotation with a numeric attribute set.
func (a Annotation) WithNumber(key string, val int) Annotation {
	return a.withAttr(key, cty.NumberIntVal(int64(val)))
}

// String reads a string attribute. Missing, null, or non-string values
// yield "".
func (a Annotation) String(key string) string {
	v, ok := a.Attrs[key]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return ""
	}
	return v.AsString()
}

// StringList reads a list attribute of strings. A bare string value is
// treated as a single-element list. Non-string elements are skipped.
func (a Annotation) StringList(key string) []string {
	v, ok := a.Attrs[key]
	if !ok || v.IsNull() {
		return nil
	}
	if v.Type() == cty.String {
		return []string{v.AsString()}
	}
	if !v.CanIterateElements() {
		return nil
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if !elem.IsNull() && elem.Type() == cty.String {
			out = append(out, elem.AsString())
		}
	}
	return out
}

// Bool reads a bool attribute, defaulting to false.
func (a Annotation) Bool(key string) bool {
	v, ok := a.Attrs[key]
	if !ok || v.IsNull() || v.Type() != cty.Bool {
		return false
	}
	return v.True()
}

// Int reads a numeric attribute. The second result reports presence.
func (a Annotation) Int(key string) (int, bool) {
	v, ok := a.Attrs[key]
	if !ok || v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	i, _ := v.AsBigFloat().Int64()
	return int(i), true
}
