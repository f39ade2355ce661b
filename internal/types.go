package internal

// SessionName is the name of the persistent container reused across invocations.
type SessionName string

// ImageName represents a Docker image name.
type ImageName string

// Command represents a command and its arguments.
type Command []string

// Mount binds a host directory into the container.
type Mount struct {
	HostPath      string
	ContainerPath string
}

// String returns the mount in the -v host:container form.
func (m Mount) String() string {
	return m.HostPath + ":" + m.ContainerPath
}
