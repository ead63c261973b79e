package atkey

import "github.com/atsign-foundation/atclientgo/aterror"

// RecordMetadata carries the bookkeeping fields the atServer attaches to
// a record: lifetime (ttl/ttb/ttr), provenance (createdBy/createdOn/
// updatedOn), and sharing/caching flags (§3). Pointer fields are nil
// when the server omitted them.
type RecordMetadata struct {
	CreatedOn     *int64 `json:"createdOn,omitempty"` // epoch millis
	UpdatedOn     *int64 `json:"updatedOn,omitempty"`
	AvailableFrom *int64 `json:"availableFrom,omitempty"`
	ExpiresOn     *int64 `json:"expiresOn,omitempty"`

	CreatedBy  string  `json:"createdBy,omitempty"`
	SharedWith *string `json:"sharedWith,omitempty"` // owner AtSign label the record is shared with, if any

	// TTL is milliseconds until a record expires after creation; nil
	// means no expiry.
	TTL *int64 `json:"ttl,omitempty"`
	// TTB is milliseconds after creation before a record becomes visible.
	TTB *int64 `json:"ttb,omitempty"`
	// TTR is the cache refresh interval in milliseconds: nil or 0 means
	// "do not cache", -1 means "cache forever, never refresh".
	TTR *int64 `json:"ttr,omitempty"`
	// CCD is cascade-delete-on-refresh: when TTR is set, whether the
	// cached copy is deleted instead of refreshed once TTR lapses.
	CCD *bool `json:"ccd,omitempty"`

	RefreshAt *int64 `json:"refreshAt,omitempty"`

	IsBinary    bool `json:"isBinary"`
	IsCached    bool `json:"isCached"`
	IsEncrypted bool `json:"isEncrypted"`
}

// RefreshesForever reports whether TTR requests an indefinitely cached
// copy that is never refreshed (ttr == -1).
func (m RecordMetadata) RefreshesForever() bool {
	return m.TTR != nil && *m.TTR == -1
}

// Cacheable reports whether the metadata requests any cached copy at
// all (ttr present and non-zero).
func (m RecordMetadata) Cacheable() bool {
	return m.TTR != nil && *m.TTR != 0
}

// AtValue is a record's payload: either UTF-8 text or opaque binary
// bytes that travel base64-encoded on the wire, never both.
type AtValue struct {
	IsBinary bool
	Text     string
	Binary   []byte
}

// NewTextValue constructs a text AtValue.
func NewTextValue(text string) AtValue {
	return AtValue{Text: text}
}

// NewBinaryValue constructs a binary AtValue.
func NewBinaryValue(data []byte) AtValue {
	return AtValue{IsBinary: true, Binary: data}
}

// Bytes returns the value's bytes regardless of kind: the raw bytes for
// binary values, the UTF-8 encoding of the text for text values.
func (v AtValue) Bytes() []byte {
	if v.IsBinary {
		return v.Binary
	}
	return []byte(v.Text)
}

// AtRecord is a located value: the key that addresses it, the value,
// and the metadata describing its lifetime and provenance.
type AtRecord struct {
	Key      AtKey
	Value    AtValue
	Metadata RecordMetadata
}

// Validate checks invariants that span Key/Value/Metadata: a binary
// value's Metadata.IsBinary must agree, and a cached key's
// Metadata.IsCached must agree.
func (r AtRecord) Validate() error {
	if r.Value.IsBinary != r.Metadata.IsBinary {
		return aterror.New(aterror.InvalidAtKey, "atkey: record value/metadata binary flag mismatch")
	}
	if r.Key.IsCached != r.Metadata.IsCached {
		return aterror.New(aterror.InvalidAtKey, "atkey: record key/metadata cached flag mismatch")
	}
	return nil
}
