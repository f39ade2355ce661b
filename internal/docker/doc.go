// Package docker talks to the Docker Engine API on behalf of idfdock.
//
// It resolves the state of the persistent session container, starts it when
// it is stopped, and probes the local terminal the way the docker CLI does.
// The Client type is the main entry point for all Engine API calls.
package docker
