package typesystem

import "strings"

// Equivalent reports full structural equality between two type descriptors.
// Extended-array tags must match exactly; array-of compares element types
// recursively; shapes compare hash, count, then every element pairwise in
// declaration order (key kind, key identity, optional flag, element type).
// Reordered-but-identical key sets are not equivalent: declaration order is
// part of a shape's identity here, consistent with the hash.
func Equivalent(a, b Value) bool {
	if a.mask&MaskExtendedArray != b.mask&MaskExtendedArray {
		return false
	}
	if a.mask.Pure() != b.mask.Pure() {
		return false
	}

	if a.IsArrayOf() {
		return Equivalent(a.arrayOf.elem, b.arrayOf.elem)
	}

	if a.IsShape() {
		sa, sb := a.shape, b.shape
		if sa.hash != sb.hash {
			return false
		}
		if len(sa.elements) != len(sb.elements) {
			return false
		}
		for i := range sa.elements {
			ea, eb := sa.elements[i], sb.elements[i]
			if !ea.SameKey(eb) {
				return false
			}
			if ea.Optional != eb.Optional {
				return false
			}
			if !Equivalent(ea.Type, eb.Type) {
				return false
			}
		}
		return true
	}

	if a.HasList() != b.HasList() {
		return false
	}
	if a.HasList() {
		if a.mask != b.mask || a.list.Len() != b.list.Len() {
			return false
		}
		for i := 0; i < a.list.Len(); i++ {
			if !Equivalent(a.list.At(i), b.list.At(i)) {
				return false
			}
		}
		return true
	}

	// Class names compare case-insensitively; a name on only one side never
	// matches a nameless type.
	if a.HasClass() && b.HasClass() {
		return strings.EqualFold(a.class, b.class)
	}
	return !a.HasClass() && !b.HasClass()
}
