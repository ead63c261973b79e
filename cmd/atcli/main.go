// Command atcli is a command-line client for get/put/scan operations
// against an atProtocol atServer, authenticating with a .atKeys bundle.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atsign-foundation/atclientgo/atclient"
	"github.com/atsign-foundation/atclientgo/atkey"
	"github.com/atsign-foundation/atclientgo/atsecrets"
	"github.com/atsign-foundation/atclientgo/atsign"
	"github.com/atsign-foundation/atclientgo/atverbs"
	"github.com/atsign-foundation/atclientgo/audit"
	auditlog "github.com/atsign-foundation/atclientgo/audit/log"
	"github.com/atsign-foundation/atclientgo/fileutil/resolve"
	"github.com/atsign-foundation/atclientgo/metrics"
	"github.com/atsign-foundation/atclientgo/netutil"
	"github.com/atsign-foundation/atclientgo/xlog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var logger = xlog.NewPackageLogger("github.com/atsign-foundation/atclientgo/cmd", "atcli")

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	app := kingpin.New("atcli", "command-line client for atProtocol end-to-end-encrypted key/value records")

	atSignFlag := app.Flag("at-sign", "the atSign to authenticate as").Required().String()
	keysFileFlag := app.Flag("keys-file", "path to the .atKeys secrets bundle (file:// is assumed)").Required().String()
	rootFlag := app.Flag("root", "root server address").Default(atclient.RootServerAddr).String()
	debugFlag := app.Flag("debug", "enable debug logging").Bool()
	metricsSinksFlag := app.Flag("metrics-sink", "comma-separated metric sink URLs, e.g. statsd://127.0.0.1:8125").String()
	auditFileFlag := app.Flag("audit-file", "path to a rotated log file to write audit events to; audit events go only to the debug log if unset").String()

	putCmd := app.Command("put", "write a record")
	putKey := putCmd.Arg("at-key", "the AtKey, e.g. public:note@alice or @bob:note@alice").Required().String()
	putValue := putCmd.Arg("value", "the value to store").Required().String()

	getCmd := app.Command("get", "read a record")
	getKey := getCmd.Arg("at-key", "the AtKey to read").Required().String()

	scanCmd := app.Command("scan", "list visible keys")
	scanRegex := scanCmd.Flag("regex", "filter keys by this regex").String()
	scanShowHidden := scanCmd.Flag("show-hidden", "include internal/hidden keys").Bool()

	cmd, err := app.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *debugFlag {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.CRITICAL)
	}

	if err := setupMetrics(*metricsSinksFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	atSign, err := atsign.New(*atSignFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	keysFile, err := resolve.File(*keysFileFlag, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	secrets, err := atsecrets.Load("file://" + keysFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	auditor, err := setupAuditor(*auditFileFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if auditor != nil {
		defer auditor.Close()
	}

	ctx := context.Background()
	c, err := atclient.Dial(ctx, atclient.Config{
		AtSign:     atSign,
		Secrets:    secrets,
		RootServer: *rootFlag,
		Auditor:    auditor,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer c.Close()

	switch cmd {
	case putCmd.FullCommand():
		key, err := atkey.Parse(*putKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		commitID, err := c.Put(key, *putValue)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(commitID)

	case getCmd.FullCommand():
		key, err := atkey.Parse(*getKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		rec, err := c.Get(key, atverbs.SelectorData)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(rec.Value.Text)

	case scanCmd.FullCommand():
		keys, err := c.Scan(*scanShowHidden, *scanRegex)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, k := range keys {
			fmt.Println(k.Format())
		}
	}

	return 0
}

// setupMetrics parses a comma-separated list of sink URLs (e.g.
// "statsd://127.0.0.1:8125") and installs them as the process-wide
// metrics provider. An empty list leaves the default blackhole sink
// in place.
func setupMetrics(sinkURLs string) error {
	urls, err := netutil.ParseURLsFromString(sinkURLs)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	sinks := make([]metrics.Sink, len(urls))
	for i, u := range urls {
		sink, err := metrics.NewMetricSinkFromURL(u.String())
		if err != nil {
			return err
		}
		sinks[i] = sink
	}
	_, err = metrics.NewGlobal(metrics.DefaultConfig("atcli"), metrics.NewFanoutSink(sinks...))
	return err
}

// setupAuditor builds a rotated file-backed audit.Auditor from path, or
// returns nil (leaving Dial to default to its own logger-backed auditor)
// when path is empty.
func setupAuditor(path string) (audit.Auditor, error) {
	if path == "" {
		return nil, nil
	}
	return auditlog.New(filepath.Base(path), filepath.Dir(path), 30, 100)
}
