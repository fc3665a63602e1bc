package jsonshape

// Presence is the bit flag collected by the WithMeta decode API.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Field appeared in the input object.
	PresenceWasNull                      // Field value was JSON null.
)

// PresenceMap maps JSON Pointers to Presence flags.
type PresenceMap map[string]Presence

// Decoded carries a decoded value along with presence metadata. With
// DecodeOpt.IgnoreMissing, Presence is the only way to distinguish a field
// that decoded to its zero value from one that was absent.
type Decoded[T any] struct {
	Value    T
	Presence PresenceMap
}
