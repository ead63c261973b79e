// Package atclient is the orchestrator: it drives discovery, the TLS
// connect, pkam authentication, and the public Scan/Get/Put operations
// by composing atverbs with the atchops cryptographic workflow. A
// Client owns exactly one attransport.Transport for its lifetime; it
// must be discarded, never reused, after any Transport-kind error.
package atclient

import (
	"context"

	"github.com/atsign-foundation/atclientgo/aterror"
	"github.com/atsign-foundation/atclientgo/atsecrets"
	"github.com/atsign-foundation/atclientgo/atsign"
	"github.com/atsign-foundation/atclientgo/attransport"
	"github.com/atsign-foundation/atclientgo/audit"
	"github.com/atsign-foundation/atclientgo/tasks"
	"github.com/atsign-foundation/atclientgo/xlog"
	"github.com/juju/errors"
)

var logger = xlog.NewPackageLogger("github.com/atsign-foundation/atclientgo", "atclient")

// RootServerAddr is the fixed, well-known discovery server (§6).
const RootServerAddr = "root.atsign.org:64"

// SharedKeyCacheTTR is the protocol constant used when caching a
// symmetric key wrapped for a peer during put's bootstrap (§4.7).
const SharedKeyCacheTTR int64 = 86400

// Config configures Dial. AtSign and Secrets are required; the rest
// have sane defaults.
type Config struct {
	AtSign  atsign.AtSign
	Secrets atsecrets.Secrets

	// RootServer overrides RootServerAddr, mainly for tests.
	RootServer string
	// Dialer overrides the default TLS dialer, mainly for tests.
	Dialer attransport.Dialer
	// Auditor receives authentication and operation events; defaults to
	// a logAuditor that writes through this package's logger.
	Auditor audit.Auditor
	// HeartbeatTask, if non-nil, is scheduled on Dial to periodically
	// emit runtime stats; see heartbeat.go. Nil disables the heartbeat.
	HeartbeatTask tasks.Task
}

// Client is a single authenticated session against one atSign's
// atServer. Not safe for concurrent use (§5): every call occupies the
// transport from its first send to its terminating read.
type Client struct {
	atSign    atsign.AtSign
	keys      atsecrets.Keys
	transport *attransport.Transport
	dialer    attransport.Dialer
	auditor   audit.Auditor
	scheduler tasks.Scheduler
	contextID string
}

// Dial runs the full initialisation state machine (§4.7):
// Start -> ResolveRoot -> ResolveServer -> ConnectServer ->
// UnwrapSecrets -> From -> Pkam -> Ready. Any failure leaves no
// Client behind; the transport, if one was opened, is closed.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.AtSign.IsZero() {
		return nil, aterror.New(aterror.InvalidConfig, "atclient: Config.AtSign is required")
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = attransport.TLSDialer{}
	}
	root := cfg.RootServer
	if root == "" {
		root = RootServerAddr
	}
	auditor := cfg.Auditor
	if auditor == nil {
		auditor = logAuditor{}
	}

	host, port, err := resolveServer(ctx, dialer, root, cfg.AtSign)
	if err != nil {
		return nil, err
	}

	transport, err := attransport.Connect(ctx, dialer, host, port)
	if err != nil {
		return nil, err
	}

	keys, err := atsecrets.Unwrap(cfg.Secrets)
	if err != nil {
		transport.Close()
		return nil, errors.Annotate(err, "atclient: unwrap secrets")
	}

	c := &Client{
		atSign:    cfg.AtSign,
		keys:      keys,
		transport: transport,
		dialer:    dialer,
		auditor:   auditor,
		scheduler: tasks.NewScheduler(),
		contextID: newContextID(),
	}

	if err := c.authenticate(ctx); err != nil {
		c.audit(eventAuthFailure, err.Error())
		transport.Close()
		return nil, err
	}
	c.audit(eventAuthSuccess, "pkam authentication succeeded")

	if cfg.HeartbeatTask != nil {
		c.scheduler.Add(cfg.HeartbeatTask)
		if err := c.scheduler.Start(); err != nil {
			logger.Warningf("atclient: heartbeat scheduler failed to start: %v", err)
		}
	}

	logger.Infof("atclient: ready for %s", cfg.AtSign)
	return c, nil
}

// Close releases the underlying transport and stops the heartbeat
// scheduler, if one was started. The Client must not be used after.
func (c *Client) Close() error {
	c.scheduler.Stop()
	return c.transport.Close()
}

// AtSign returns the identity this client authenticated as.
func (c *Client) AtSign() atsign.AtSign {
	return c.atSign
}
