package pyobject

import (
	"fmt"
	"strings"
)

// Str renders the receiver the way Python's str() builtin would: the
// "user-facing" form, which for container elements still falls back to
// Repr so "['a']" prints quoted strings the way Python does.
func Str(o *Object) string {
	switch o.Kind {
	case KindStr:
		return o.payload.(string)
	case KindNone:
		return "None"
	case KindBool:
		if o.payload.(bool) {
			return "True"
		}
		return "False"
	case KindInt:
		bi, _ := Int(o)
		return bi.String()
	case KindFloat:
		return formatFloat(o.payload.(float64))
	case KindType:
		return "<class '" + o.payload.(*typePayload).name + "'>"
	case KindObject:
		return "<object object at " + Id(o) + ">"
	default:
		return Repr(o)
	}
}

// Repr renders the receiver the way Python's repr() builtin would: a form
// that round-trips for the literal Kinds this core supports.
func Repr(o *Object) string {
	switch o.Kind {
	case KindStr:
		return "'" + o.payload.(string) + "'"
	case KindBytes:
		return "b'" + string(o.payload.([]byte)) + "'"
	case KindTuple:
		items := o.payload.([]*Object)
		parts := make([]string, len(items))
		for i, e := range items {
			parts[i] = Repr(e)
		}
		if len(items) == 1 {
			return "(" + parts[0] + ",)"
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindList:
		items := o.payload.(*listPayload).items
		parts := make([]string, len(items))
		for i, e := range items {
			parts[i] = Repr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		d := o.payload.(*Dict)
		parts := make([]string, 0, d.Len())
		d.Iter(func(k, v *Object) bool {
			parts = append(parts, Repr(k)+": "+Repr(v))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	case KindSet, KindFrozenset:
		sp := o.payload.(*setPayload)
		parts := make([]string, 0, sp.m.Len())
		sp.each(func(k *Object) bool {
			parts = append(parts, Repr(k))
			return true
		})
		if len(parts) == 0 && o.Kind == KindFrozenset {
			return "frozenset()"
		}
		body := "{" + strings.Join(parts, ", ") + "}"
		if o.Kind == KindFrozenset {
			return "frozenset(" + body + ")"
		}
		return body
	default:
		return Str(o)
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
