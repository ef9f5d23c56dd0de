package rdf

// Presence is the bit flag collected while a document is validated.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Outcome is the result of validating one document: either a normalized
// document (zero issues) or the full ordered issue list. Presence is filled
// in both cases for the paths that were walked.
type Outcome struct {
	Normalized map[string]any
	Presence   PresenceMap
	Issues     Issues
}

// Valid reports whether validation collected no issues.
func (o Outcome) Valid() bool { return len(o.Issues) == 0 }

// Err returns the issue list as an error, or nil when validation passed.
func (o Outcome) Err() error {
	if len(o.Issues) == 0 {
		return nil
	}
	return o.Issues
}

// MergePresence returns a new PresenceMap that is the bitwise-OR merge of a and b.
func MergePresence(a, b PresenceMap) PresenceMap {
	if a == nil && b == nil {
		return nil
	}
	out := make(PresenceMap, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] |= v
	}
	return out
}
