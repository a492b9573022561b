package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/oshokin/winget-keeper/internal/logger"
	"github.com/oshokin/winget-keeper/internal/release"
)

var errNoFileNameInURL = errors.New("unable to derive a file name from the URL")

// downloadToStaging fetches the URL into the staging directory and returns the
// local path. The caller owns removal of the file; a failed transfer never
// leaves a partial file behind.
func (r *runner) downloadToStaging(ctx context.Context, downloadURL string) (string, error) {
	if err := os.MkdirAll(r.cfg.StagingDirectory, stagingDirPermissions); err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	fileName := release.FileNameFromURL(downloadURL)
	if fileName == "" || fileName == "." || fileName == "/" {
		return "", fmt.Errorf("%s: %w", downloadURL, errNoFileNameInURL)
	}

	outputFileName := filepath.Clean(filepath.Join(r.cfg.StagingDirectory, fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, http.NoBody)
	if err != nil {
		return "", err
	}

	response, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", downloadURL, err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s, %s: %w", downloadURL, response.Status, errBadHTTPStatus)
	}

	outputFile, err := os.Create(outputFileName)
	if err != nil {
		return "", err
	}

	_, copyErr := io.Copy(outputFile, response.Body)
	closeErr := outputFile.Close()

	if copyErr != nil || closeErr != nil {
		_ = os.Remove(outputFileName)

		if copyErr != nil {
			return "", fmt.Errorf("save %s: %w", outputFileName, copyErr)
		}

		return "", closeErr
	}

	logger.InfoKV(ctx, "Downloaded file", "path", outputFileName)

	return outputFileName, nil
}
