package atkey

import "github.com/atsign-foundation/atclientgo/atsign"

// VisibilityKind discriminates the Visibility variants.
type VisibilityKind int

// Visibility variants named in the data model (§3).
const (
	Public VisibilityKind = iota
	Private
	Internal
	Shared
)

// String renders the kind name, for logging only (not wire format).
func (k VisibilityKind) String() string {
	switch k {
	case Public:
		return "Public"
	case Private:
		return "Private"
	case Internal:
		return "Internal"
	case Shared:
		return "Shared"
	default:
		return "Unknown"
	}
}

// Visibility is the AtKey visibility tuple: a kind, plus the recipient
// AtSign when Kind == Shared.
type Visibility struct {
	Kind VisibilityKind
	With atsign.AtSign // valid only when Kind == Shared
}

// VisibilityPublic constructs the Public visibility.
func VisibilityPublic() Visibility { return Visibility{Kind: Public} }

// VisibilityPrivate constructs the Private visibility.
func VisibilityPrivate() Visibility { return Visibility{Kind: Private} }

// VisibilityInternal constructs the Internal visibility.
func VisibilityInternal() Visibility { return Visibility{Kind: Internal} }

// VisibilityShared constructs the Shared visibility carrying the peer it
// is shared with.
func VisibilityShared(with atsign.AtSign) Visibility {
	return Visibility{Kind: Shared, With: with}
}

// prefix renders the visibility's wire prefix, as used by `update` (§6).
// The lookup family omits this prefix for non-cached, non-shared keys;
// see AtKey.WireForLookup.
func (v Visibility) prefix() string {
	switch v.Kind {
	case Public:
		return "public:"
	case Private:
		return "private:"
	case Internal:
		return "_"
	case Shared:
		return v.With.WithPrefix() + ":"
	default:
		return ""
	}
}
