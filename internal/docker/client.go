package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moby/moby/client"
	"github.com/ryanmoran/idfdock/internal"
)

// DefaultQueryTimeout bounds each container listing so an unreachable daemon
// degrades to an unknown session state instead of hanging the wrapper.
const DefaultQueryTimeout = 5 * time.Second

// Client resolves and starts session containers through the Engine API.
type Client struct {
	client       DockerClient
	QueryTimeout time.Duration
}

// NewClient creates a Client that wraps the provided Docker client interface.
func NewClient(dockerClient DockerClient) Client {
	return Client{
		client:       dockerClient,
		QueryTimeout: DefaultQueryTimeout,
	}
}

// NewDefaultClient creates a Client with a real Docker client configured from
// the environment. A non-empty host, usually from ContextHost, overrides
// DOCKER_HOST.
func NewDefaultClient(host string) (Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.New(opts...)
	if err != nil {
		return Client{}, fmt.Errorf("failed to create docker client: %w\nEnsure Docker is running and DOCKER_HOST is set correctly", err)
	}

	return NewClient(cli), nil
}

// Close closes the underlying Docker client connection.
func (c Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Query reports whether the named container is running, stopped or absent.
// Any failure to talk to the daemon yields SessionUnknown; the caller decides
// what that means.
func (c Client) Query(ctx context.Context, name internal.SessionName) internal.SessionState {
	if c.client == nil {
		return internal.SessionUnknown
	}

	exists, err := c.hasContainer(ctx, name, true)
	if err != nil {
		return internal.SessionUnknown
	}
	if !exists {
		return internal.SessionAbsent
	}

	running, err := c.hasContainer(ctx, name, false)
	if err != nil {
		return internal.SessionUnknown
	}
	if running {
		return internal.SessionRunning
	}

	return internal.SessionStopped
}

// Start starts the named container. Returns an error if the daemon refuses,
// which aborts the invocation.
func (c Client) Start(ctx context.Context, name internal.SessionName) error {
	if c.client == nil {
		return errors.New("docker client is not available")
	}

	_, err := c.client.ContainerStart(ctx, string(name), client.ContainerStartOptions{})
	if err != nil {
		return fmt.Errorf("failed to start container %q: %w\nContainer may be misconfigured or Docker daemon may be unhealthy", name, err)
	}

	return nil
}

func (c Client) hasContainer(ctx context.Context, name internal.SessionName, all bool) (bool, error) {
	if c.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.QueryTimeout)
		defer cancel()
	}

	result, err := c.client.ContainerList(ctx, client.ContainerListOptions{All: all})
	if err != nil {
		return false, fmt.Errorf("failed to list containers: %w", err)
	}

	for _, item := range result.Items {
		for _, itemName := range item.Names {
			if strings.TrimPrefix(itemName, "/") == string(name) {
				return true, nil
			}
		}
	}
	return false, nil
}
