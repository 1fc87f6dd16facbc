package wire

import (
	"fmt"
	"sort"
)

// Provider identifies a known backend family. The set is closed; adding a
// value means adding a Register call from a family package, never touching
// the detector's control flow.
type Provider string

const (
	// ProviderClaude is the native nested format.
	ProviderClaude Provider = "claude"
	// ProviderCodexLegacy is the legacy flat format.
	ProviderCodexLegacy Provider = "codex-legacy"
	// ProviderCodex and ProviderGemini share the enveloped-generic format.
	ProviderCodex  Provider = "codex"
	ProviderGemini Provider = "gemini"
	// ProviderCursor is reserved: it validates structurally but has no
	// semantic adapter, so its records degrade to catch-all content.
	ProviderCursor Provider = "cursor"
)

// Strategy is one pure extraction attempt over a validated record. The
// adapter runs a family's strategies in order and takes the first success.
type Strategy func(v Validated) (Payload, bool)

// Family is one registration table entry: everything the pipeline needs
// to know about a provider family.
type Family struct {
	Provider Provider

	// Precedence orders detection: lower values are checked first. The
	// native family is most specific, the enveloped-generic families are
	// the widest catch-all.
	Precedence int

	// Detect reports whether a raw content envelope belongs to this
	// family. Detection is structural, not declared.
	Detect func(content map[string]any) bool

	// Validate classifies a record against this family's schema. It must
	// be total: any JSON-like value terminates in either a Validated or
	// a *ValidationError, never a panic.
	Validate func(rec Record) (Validated, *ValidationError)

	// Strategies is the ordered extraction list. A nil list marks a
	// reserved family whose records all adapt to catch-all.
	Strategies []Strategy

	// PermissionModes is the closed permission-mode token set valid for
	// this family.
	PermissionModes []string
}

var families []Family

// Register adds a family to the static registration table. It is called
// from family package init functions only; the table is read-only for the
// rest of the process lifetime.
func Register(f Family) {
	for _, existing := range families {
		if existing.Provider == f.Provider {
			panic(fmt.Sprintf("wire: provider %s registered twice", f.Provider))
		}
	}
	families = append(families, f)
	sort.SliceStable(families, func(i, j int) bool {
		return families[i].Precedence < families[j].Precedence
	})
}

// Detect inspects a raw content envelope and returns the first family
// whose structural predicate matches, in precedence order. A record
// matching no family is a soft failure: ok is false and the caller is
// expected to skip the record and continue.
func Detect(content map[string]any) (Family, bool) {
	if content == nil {
		return Family{}, false
	}
	for _, f := range families {
		if f.Detect(content) {
			return f, true
		}
	}
	return Family{}, false
}

// Lookup returns the registered family for a provider discriminant.
func Lookup(p Provider) (Family, bool) {
	for _, f := range families {
		if f.Provider == p {
			return f, true
		}
	}
	return Family{}, false
}

// Providers returns the registered discriminants in precedence order.
func Providers() []Provider {
	out := make([]Provider, 0, len(families))
	for _, f := range families {
		out = append(out, f.Provider)
	}
	return out
}
