package typesystem

// shapeHash computes the structural pre-filter hash for a shape: a DJB2
// accumulation over the element count, then per element in declaration
// order its key identity hash, primitive mask, and optional flag.
//
// The hash is never a canonical identity. Equal hashes still require the
// full comparison in Equivalent; it only serves quick rejection.
func shapeHash(s *Shape) uint32 {
	hash := uint32(5381)
	hash = djb2(hash, uint32(len(s.elements)))
	for _, e := range s.elements {
		hash = djb2(hash, e.KeyHash())
		hash = djb2(hash, uint32(e.Type.mask))
		if e.Optional {
			hash = djb2(hash, 1)
		} else {
			hash = djb2(hash, 0)
		}
	}
	return hash
}

func djb2(hash, v uint32) uint32 {
	return ((hash << 5) + hash) ^ v
}

// hashString is the DJB2 string hash used for shape key identities and the
// interning table.
func hashString(s string) uint32 {
	hash := uint32(5381)
	for i := 0; i < len(s); i++ {
		hash = ((hash << 5) + hash) + uint32(s[i])
	}
	return hash
}
