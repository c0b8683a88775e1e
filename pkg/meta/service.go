package meta

import "sync"

//nolint:gochecknoglobals // process-wide identity, recorded once at startup
var (
	svcIdentity serviceIdentity
	svcOnce     sync.Once
)

type serviceIdentity struct {
	name    string
	version string
}

// SetServiceInfo records the service name and version for the lifetime of
// the process. Only the first call has effect.
func SetServiceInfo(name, version string) {
	svcOnce.Do(func() {
		svcIdentity = serviceIdentity{name: name, version: version}
	})
}

// ServiceInfo returns the name and version recorded by SetServiceInfo.
// Both are empty until SetServiceInfo is called.
func ServiceInfo() (name, version string) {
	return svcIdentity.name, svcIdentity.version
}
