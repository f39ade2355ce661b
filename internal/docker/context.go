package docker

import (
	"fmt"
	"path/filepath"

	"github.com/docker/cli/cli/config"
	dockercontext "github.com/docker/cli/cli/context/docker"
	"github.com/docker/cli/cli/context/store"
)

// DefaultContext is the docker CLI's built-in context, which follows DOCKER_HOST.
const DefaultContext = "default"

type contextMetadata struct {
	Description string `json:",omitempty"`
}

// ContextHost returns the Engine endpoint of the docker CLI's active context
// so the session queries reach the same daemon as `docker exec`. DOCKER_HOST
// wins, then DOCKER_CONTEXT, then the current context in the CLI config. An
// empty host means the client falls back to the environment.
func ContextHost(getenv func(string) string) (string, error) {
	if getenv("DOCKER_HOST") != "" {
		return "", nil
	}

	dir := getenv("DOCKER_CONFIG")
	if dir == "" {
		dir = config.Dir()
	}

	name := getenv("DOCKER_CONTEXT")
	if name == "" {
		file, err := config.Load(dir)
		if err != nil {
			return "", fmt.Errorf("failed to load docker config from %q: %w", dir, err)
		}
		name = file.CurrentContext
	}
	if name == "" || name == DefaultContext {
		return "", nil
	}

	contexts := store.New(filepath.Join(dir, "contexts"), contextStoreConfig())
	metadata, err := contexts.GetMetadata(name)
	if err != nil {
		return "", fmt.Errorf("failed to read docker context %q: %w", name, err)
	}

	endpoint, err := dockercontext.EndpointFromContext(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to read docker context %q: %w", name, err)
	}
	return endpoint.Host, nil
}

func contextStoreConfig() store.Config {
	return store.NewConfig(
		func() any { return &contextMetadata{} },
		store.EndpointTypeGetter(dockercontext.DockerEndpoint, func() any { return &dockercontext.EndpointMeta{} }),
	)
}
