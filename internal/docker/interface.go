package docker

import (
	"context"

	"github.com/moby/moby/client"
)

// DockerClient is the slice of the Engine API that session resolution needs.
// *client.Client from moby/moby/client satisfies it; tests inject a mock.
type DockerClient interface {
	ContainerList(ctx context.Context, options client.ContainerListOptions) (client.ContainerListResult, error)
	ContainerStart(ctx context.Context, containerID string, options client.ContainerStartOptions) (client.ContainerStartResult, error)
	Close() error
}
