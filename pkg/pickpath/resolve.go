package pickpath

// Resolve walks p from root. Once a segment misses, the remaining segments
// are skipped and the absent node is returned.
func Resolve(root interface{}, p Path) Node {
	n := Wrap(root)
	for _, seg := range p {
		if !n.Exists() {
			return n
		}
		if seg.isIndex {
			n = n.Index(seg.index)
		} else {
			n = n.Key(seg.key)
		}
	}
	return n
}

// ResolveString resolves p and coerces the result to a string. A nil Path
// is treated as unconfigured and yields nil.
func ResolveString(root interface{}, p Path) *string {
	if p == nil {
		return nil
	}
	return Resolve(root, p).StringPtr()
}
