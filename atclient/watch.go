package atclient

import (
	"time"

	"github.com/atsign-foundation/atclientgo/atsecrets"
	"github.com/atsign-foundation/atclientgo/fileutil/reloader"
)

// WatchSecrets polls path every checkInterval and invokes onChanged
// with the freshly loaded (but not yet unwrapped) Secrets bundle
// whenever its mtime advances. No mtime is recorded before the first
// poll, so a file that already exists is loaded on that poll too.
// Callers typically use this to detect
// an operator rotating a .atKeys file onto disk and re-Dial with the
// new bundle; it does not mutate an existing Client. The returned
// Reloader must be Closed to stop polling.
func WatchSecrets(path string, checkInterval time.Duration, onChanged func(atsecrets.Secrets, error)) (*reloader.Reloader, error) {
	return reloader.NewReloader(path, checkInterval, func(filePath string, _ time.Time) {
		secrets, err := atsecrets.Load("file://" + filePath)
		onChanged(secrets, err)
	})
}
