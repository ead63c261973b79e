package atverbs

// Selector chooses which slice of a record the lookup family returns:
// the value (default), its metadata, or both.
type Selector int

const (
	// SelectorData requests the value only (the default, no sub-verb).
	SelectorData Selector = iota
	// SelectorMeta requests the RecordMetadata only, as a JSON object.
	SelectorMeta
	// SelectorAll requests both value and metadata, as a JSON object.
	SelectorAll
)

// verbSuffix renders the ":meta"/":all" sub-verb, or "" for SelectorData.
func (s Selector) verbSuffix() string {
	switch s {
	case SelectorMeta:
		return ":meta"
	case SelectorAll:
		return ":all"
	default:
		return ""
	}
}
