// Package atkey implements the AtKey record identifier: a structured,
// visibility-tagged key rendered with a bit-exact grammar shared with
// the atServer, plus the record value/metadata types that travel with it.
package atkey

import (
	"regexp"
	"strings"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atsign"
)

// MaxLength is the maximum rendered length of an AtKey (§3 invariant).
const MaxLength = 240

// AtKey is the record identifier: record_id, optional namespace, owner,
// a cached flag and a visibility. The zero value is not valid; use one
// of the constructors.
type AtKey struct {
	RecordID   string
	Namespace  string
	Owner      atsign.AtSign
	IsCached   bool
	Visibility Visibility
}

// New validates and constructs an AtKey. Prefer the NewXxxKey helpers
// for the common visibility cases; New is for callers that already have
// a Visibility value in hand (e.g. round-tripping a parsed key).
func New(recordID, namespace string, owner atsign.AtSign, vis Visibility, cached bool) (AtKey, error) {
	if recordID == "" {
		return AtKey{}, aterror.New(aterror.InvalidAtKey, "atkey: record_id must not be empty")
	}
	if owner.IsZero() {
		return AtKey{}, aterror.New(aterror.InvalidAtKey, "atkey: owner must not be empty")
	}
	k := AtKey{RecordID: recordID, Namespace: namespace, Owner: owner, Visibility: vis, IsCached: cached}
	if len(k.Format()) > MaxLength {
		return AtKey{}, aterror.Newf(aterror.InvalidAtKey,
			"atkey: rendered key exceeds %d characters", MaxLength)
	}
	return k, nil
}

// NewPublicKey constructs a Public, uncached AtKey.
func NewPublicKey(recordID, namespace string, owner atsign.AtSign) (AtKey, error) {
	return New(recordID, namespace, owner, VisibilityPublic(), false)
}

// NewPrivateKey constructs a Private, uncached AtKey.
func NewPrivateKey(recordID, namespace string, owner atsign.AtSign) (AtKey, error) {
	return New(recordID, namespace, owner, VisibilityPrivate(), false)
}

// NewInternalKey constructs an Internal, uncached AtKey.
func NewInternalKey(recordID, namespace string, owner atsign.AtSign) (AtKey, error) {
	return New(recordID, namespace, owner, VisibilityInternal(), false)
}

// NewSharedKey constructs a Shared, uncached AtKey: a record owned by
// owner and shared with sharedWith.
func NewSharedKey(recordID, namespace string, owner, sharedWith atsign.AtSign) (AtKey, error) {
	return New(recordID, namespace, owner, VisibilityShared(sharedWith), false)
}

// NewCachedKey constructs a cached Shared AtKey: the locally cached copy
// of a record owner shared with sharedWith. Cached copies observed in
// this protocol are always of Shared keys (see S2).
func NewCachedKey(recordID, namespace string, owner, sharedWith atsign.AtSign) (AtKey, error) {
	return New(recordID, namespace, owner, VisibilityShared(sharedWith), true)
}

// Format renders the canonical grammar:
// [cached:](public:|private:|_|@<shared_with>:)<record_id>[.<namespace>]@<owner>
func (k AtKey) Format() string {
	return k.wireBody(true)
}

// String implements fmt.Stringer as Format.
func (k AtKey) String() string {
	return k.Format()
}

// wireBody renders the key body. When full is true the visibility
// prefix (and cached: prefix) is always included -- this is the
// canonical Format() used for Display/scan/`update`. When full is
// false, the prefix is included only when the key is cached or Shared;
// this is the form `lookup`/`llookup`/`plookup` put on the wire for
// plain Public/Private/Internal keys, which carry no visibility prefix.
func (k AtKey) wireBody(full bool) string {
	id := k.RecordID
	if k.Namespace != "" {
		id = id + "." + k.Namespace
	}

	var b strings.Builder
	includeVisibility := full || k.IsCached || k.Visibility.Kind == Shared
	if includeVisibility {
		if k.IsCached {
			b.WriteString("cached:")
		}
		b.WriteString(k.Visibility.prefix())
	}
	b.WriteString(id)
	b.WriteByte('@')
	b.WriteString(k.Owner.WithoutPrefix())
	return b.String()
}

// WireForLookup renders the form used as the target of a lookup/llookup/
// plookup request: the visibility prefix is omitted unless the key is
// cached or Shared (see the Open Questions in the design notes).
func (k AtKey) WireForLookup() string {
	return k.wireBody(false)
}

var (
	reCachedShared = regexp.MustCompile(`^cached:@([^:]+):([^.@]+)(?:\.([^@]+))?@(.+)$`)
	reShared       = regexp.MustCompile(`^@([^:]+):([^.@]+)(?:\.([^@]+))?@(.+)$`)
	rePublic       = regexp.MustCompile(`^public:([^.@]+)(?:\.([^@]+))?@(.+)$`)
	rePrivate      = regexp.MustCompile(`^private:([^.@]+)(?:\.([^@]+))?@(.+)$`)
	reInternal     = regexp.MustCompile(`^_([^.@]+)(?:\.([^@]+))?@(.+)$`)
)

// Parse renders an AtKey from its canonical string form. Patterns are
// attempted in order -- cached-shared, shared, public, private,
// internal -- and the first match wins, per §4.3.
func Parse(s string) (AtKey, error) {
	if m := reCachedShared.FindStringSubmatch(s); m != nil {
		with, err := atsign.New(m[1])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse cached-shared")
		}
		owner, err := atsign.New(m[4])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse cached-shared owner")
		}
		return New(m[2], m[3], owner, VisibilityShared(with), true)
	}
	if m := reShared.FindStringSubmatch(s); m != nil {
		with, err := atsign.New(m[1])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse shared")
		}
		owner, err := atsign.New(m[4])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse shared owner")
		}
		return New(m[2], m[3], owner, VisibilityShared(with), false)
	}
	if m := rePublic.FindStringSubmatch(s); m != nil {
		owner, err := atsign.New(m[3])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse public owner")
		}
		return New(m[1], m[2], owner, VisibilityPublic(), false)
	}
	if m := rePrivate.FindStringSubmatch(s); m != nil {
		owner, err := atsign.New(m[3])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse private owner")
		}
		return New(m[1], m[2], owner, VisibilityPrivate(), false)
	}
	if m := reInternal.FindStringSubmatch(s); m != nil {
		owner, err := atsign.New(m[3])
		if err != nil {
			return AtKey{}, aterror.WithCause(aterror.InvalidAtKey, err, "atkey: parse internal owner")
		}
		return New(m[1], m[2], owner, VisibilityInternal(), false)
	}
	return AtKey{}, aterror.Newf(aterror.InvalidAtKey, "atkey: %q does not match any known form", s)
}

// SharedKeyLocator returns the AtKey that locates the symmetric key the
// peer `owner` has wrapped for `self` -- record_id "shared_key", no
// namespace, owned by `owner`, Shared(self) -- used by get_record §4.7
// step 1 to find the copy the peer wrapped for us.
func SharedKeyLocator(owner, self atsign.AtSign) (AtKey, error) {
	return NewSharedKey("shared_key", "", owner, self)
}
