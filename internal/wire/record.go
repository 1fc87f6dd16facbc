// Package wire defines the untrusted input model, the provider family
// registry, and the structured validation contract shared by every
// provider family package.
package wire

// Role captures the "role" field values observed on inbound records.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// Record is one untrusted input unit, decoded from already-decrypted
// JSON by the transport collaborator. Content and Meta are loosely typed
// on purpose: nothing about their shape is trusted until a family schema
// has validated them.
type Record struct {
	Role    Role
	Content map[string]any
	Meta    map[string]any
}

// Validated is the family-agnostic result of schema validation: the
// provider that matched, the raw subtype tag as the provider spelled it,
// the subtype payload, and any envelope keys the schema did not claim.
// Unknown keys are retained, not stripped, so that future subtype
// evolution does not lose data in transit.
type Validated struct {
	Provider Provider
	Role     Role
	Subtype  string
	Data     map[string]any
	Extra    map[string]any
}
