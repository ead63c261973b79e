package atclient

import (
	"github.com/atsign-foundation/atclientgo/audit"
	"github.com/atsign-foundation/atclientgo/certutil"
)

// source identifies this package as an audit.Source.
type source int

const clientSource source = 1

func (source) ID() int        { return 1 }
func (source) String() string { return "atclient" }

// eventType enumerates the operations this client audits.
type eventType int

const (
	eventAuthSuccess eventType = iota
	eventAuthFailure
	eventGet
	eventPut
	eventScan
)

func (e eventType) ID() int { return int(e) }

func (e eventType) String() string {
	switch e {
	case eventAuthSuccess:
		return "auth.success"
	case eventAuthFailure:
		return "auth.failure"
	case eventGet:
		return "record.get"
	case eventPut:
		return "record.put"
	case eventScan:
		return "record.scan"
	default:
		return "unknown"
	}
}

// logAuditor adapts audit.Auditor onto this package's logger, used as
// the default when a Client is not given one explicitly. Production
// callers should supply an audit.Collector backed by a durable sink.
type logAuditor struct{}

func (logAuditor) Event(e audit.Event) {
	logger.Noticef("audit identity=%q event=%s message=%q", e.Identity(), e.EventType(), e.Message())
}

func (logAuditor) Close() error { return nil }

// newContextID mints a short correlation id for this session's audit
// trail, letting a downstream collector group every event raised by
// one Dial under a single id.
func newContextID() string {
	return certutil.RandomString(12)
}

func (c *Client) audit(evt eventType, message string) {
	c.auditor.Event(audit.New(c.atSign.WithPrefix(), c.contextID, clientSource, evt, 0, message))
}

// newCollector returns an audit.Collector backed by this client's
// auditor. Put buffers its event here instead of auditing immediately,
// since the commit-id isn't known until the server's update response
// comes back; Submit then stamps that commit-id as the event's raft
// index before flushing it to the real auditor.
func (c *Client) newCollector() *audit.Collector {
	return &audit.Collector{Destination: c.auditor}
}
