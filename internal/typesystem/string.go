package typesystem

import (
	"strconv"
	"strings"
)

// Stringify renders a type descriptor in canonical display form, mirroring
// the compiler's input syntax:
//
//	array<int>                     array-of
//	array{id: int, name?: string}  shape, declaration order
//	A|B, A&B                       composite lists
//	?string                        null plus exactly one other alternative
//
// Deterministic for a given Value: mask bits render in fixed keyword order.
func Stringify(v Value) string {
	var out strings.Builder
	writeType(&out, v)
	return out.String()
}

func writeType(out *strings.Builder, v Value) {
	switch {
	case v.IsArrayOf():
		if v.AllowsNull() {
			out.WriteByte('?')
		}
		out.WriteString("array<")
		writeType(out, v.arrayOf.elem)
		out.WriteByte('>')

	case v.IsShape():
		if v.AllowsNull() {
			out.WriteByte('?')
		}
		out.WriteString("array{")
		for i, e := range v.shape.elements {
			if i > 0 {
				out.WriteString(", ")
			}
			if e.IsIntKey {
				out.WriteString(strconv.FormatInt(e.IntKey, 10))
			} else {
				out.WriteString(e.Key)
			}
			if e.Optional {
				out.WriteByte('?')
			}
			out.WriteString(": ")
			writeType(out, e.Type)
		}
		out.WriteByte('}')

	case v.HasList():
		sep := "|"
		if v.mask&MaskIntersection != 0 {
			sep = "&"
		}
		// A nullable list parenthesizes so the rendering stays parseable.
		nullable := v.AllowsNull()
		if nullable {
			out.WriteString("?(")
		}
		for i := 0; i < v.list.Len(); i++ {
			if i > 0 {
				out.WriteString(sep)
			}
			writeType(out, v.list.At(i))
		}
		if nullable {
			out.WriteByte(')')
		}

	case v.HasClass():
		if v.AllowsNull() {
			out.WriteByte('?')
		}
		out.WriteString(v.class)

	default:
		writeMask(out, v.mask.Pure())
	}
}

func writeMask(out *strings.Builder, mask Mask) {
	// Null plus exactly one other alternative renders as a leading '?'.
	if mask&MaskNull != 0 {
		nonNull := mask &^ MaskNull
		if nonNull != 0 && nonNull&(nonNull-1) == 0 {
			out.WriteByte('?')
			mask = nonNull
		}
	}

	first := true
	for _, kw := range maskKeywords {
		if mask&kw.bit == 0 {
			continue
		}
		if !first {
			out.WriteByte('|')
		}
		out.WriteString(kw.name)
		first = false
	}
	if first {
		out.WriteString("unknown")
	}
}
