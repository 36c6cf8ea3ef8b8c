package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/getmockd/stringd/pkg/cli/internal/output"
	"github.com/getmockd/stringd/pkg/cliconfig"
	"github.com/getmockd/stringd/pkg/client"
)

// resolveServerURL returns --url when set, otherwise the url from config
// files and the environment.
func resolveServerURL(errOut io.Writer) string {
	if serverURL != "" {
		return serverURL
	}
	cfg, err := cliconfig.LoadAll(cliconfig.LoadOptions{})
	if err != nil {
		output.Warn(errOut, "ignoring configuration: %v", err)
		return cliconfig.DefaultURL(cliconfig.DefaultPort)
	}
	return cfg.URL
}

// newClient creates a client for the resolved server URL.
func newClient(errOut io.Writer) *client.Client {
	return client.New(resolveServerURL(errOut))
}

// describeError turns client errors into messages that name the value.
func describeError(err error, value string) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNotFound):
		return fmt.Errorf("%w: %q", ErrStringNotFound, value)
	case errors.Is(err, client.ErrConflict):
		return fmt.Errorf("%w: %q", ErrStringExists, value)
	case errors.As(err, &apiErr):
		return apiErr
	default:
		return fmt.Errorf("%w: %w", ErrServerUnreachable, err)
	}
}
