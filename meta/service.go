package meta

import "sync"

//nolint:gochecknoglobals // set once at startup
var (
	serviceName    string
	serviceVersion string
	serviceOnce    sync.Once
)

// SetServiceInfo sets the service name and version. Only the first call has an effect.
func SetServiceInfo(name, version string) {
	serviceOnce.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// ServiceInfo returns the name and version set by SetServiceInfo.
func ServiceInfo() (name, version string) {
	return serviceName, serviceVersion
}
