package docker_test

import (
	"github.com/moby/moby/client"
	"github.com/ryanmoran/idfdock/internal"
	"github.com/ryanmoran/idfdock/internal/docker"
)

// Compile-time check that *client.Client implements DockerClient interface
var _ docker.DockerClient = (*client.Client)(nil)

var (
	_ internal.Sessions = docker.Client{}
	_ internal.Terminal = docker.TTY{}
)
