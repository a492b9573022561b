package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
)

var (
	errBadHTTPStatus = errors.New("unexpected http status")
	errEmptyTag      = errors.New("release feed returned an empty tag")
	errNoBundleAsset = errors.New("no asset matches the bundle extension")
)

// Latest describes the most recent published release of the tool.
type Latest struct {
	// Version is the parsed release version (leading "v" stripped).
	Version *goversion.Version
	// TagName is the raw tag as published.
	TagName string
	// BundleURL is the download URL of the installer bundle asset.
	BundleURL string
}

// Client queries a release feed for the most recent published release.
type Client struct {
	httpClient      *http.Client
	feedURL         string
	bundleExtension string
}

// NewClient returns a feed client bound to the given endpoint.
// The timeout applies to the whole request.
func NewClient(feedURL, bundleExtension string, timeout time.Duration) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		feedURL:         feedURL,
		bundleExtension: bundleExtension,
	}
}

// feedRelease mirrors the feed's JSON body: a tag plus downloadable assets.
type feedRelease struct {
	TagName string      `json:"tag_name"`
	Assets  []feedAsset `json:"assets"`
}

type feedAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// FetchLatest downloads and parses the latest release metadata.
// It fails when the feed is unreachable, the tag does not parse as a
// semantic version, or no asset carries the bundle extension.
func (c *Client) FetchLatest(ctx context.Context) (*Latest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query release feed: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", c.feedURL, response.Status, errBadHTTPStatus)
	}

	var rel feedRelease
	if err = json.NewDecoder(response.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release feed: %w", err)
	}

	if strings.TrimSpace(rel.TagName) == "" {
		return nil, errEmptyTag
	}

	parsed, err := ParseVersion(rel.TagName)
	if err != nil {
		return nil, fmt.Errorf("parse release tag %q: %w", rel.TagName, err)
	}

	bundleURL, found := selectBundleAsset(rel.Assets, c.bundleExtension)
	if !found {
		return nil, fmt.Errorf("%s: %w", c.bundleExtension, errNoBundleAsset)
	}

	return &Latest{
		Version:   parsed,
		TagName:   rel.TagName,
		BundleURL: bundleURL,
	}, nil
}

// ParseVersion normalizes a version string by stripping a leading "v"
// and parses it as a semantic version.
func ParseVersion(s string) (*goversion.Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	return goversion.NewVersion(s)
}

// selectBundleAsset returns the first asset URL whose filename ends with
// the bundle extension.
func selectBundleAsset(assets []feedAsset, extension string) (string, bool) {
	for _, asset := range assets {
		candidate := asset.Name
		if candidate == "" {
			candidate = FileNameFromURL(asset.BrowserDownloadURL)
		}

		if strings.HasSuffix(strings.ToLower(candidate), strings.ToLower(extension)) {
			return asset.BrowserDownloadURL, true
		}
	}

	return "", false
}

// FileNameFromURL derives a local file name from the final path segment of a URL.
func FileNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}

	return path.Base(parsed.Path)
}
