package reconciler

import (
	"context"
	"fmt"

	goversion "github.com/hashicorp/go-version"

	"github.com/oshokin/winget-keeper/internal/release"
)

// readInstalledVersion invokes the tool's version flag and parses the output.
func (r *runner) readInstalledVersion(ctx context.Context, toolPath string) (*goversion.Version, error) {
	output, err := r.commands.CaptureVersion(ctx, toolPath)
	if err != nil {
		return nil, err
	}

	parsed, err := release.ParseVersion(output)
	if err != nil {
		return nil, fmt.Errorf("parse version output %q: %w", output, err)
	}

	return parsed, nil
}

// verifyAfterUpdate re-reads the version through the shell-redirected path and
// confirms it matches the release the update installed.
func (r *runner) verifyAfterUpdate(
	ctx context.Context,
	toolPath string,
	want *goversion.Version,
) (*goversion.Version, error) {
	output, err := r.commands.CaptureVersionViaShell(ctx, toolPath)
	if err != nil {
		return nil, fmt.Errorf("re-read version: %w", err)
	}

	got, err := release.ParseVersion(output)
	if err != nil {
		return nil, fmt.Errorf("parse re-read version output %q: %w", output, err)
	}

	if !got.Equal(want) {
		return nil, fmt.Errorf("got %s, want %s: %w", got, want, errVersionNotConfirmed)
	}

	return got, nil
}
