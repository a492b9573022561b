package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseVersion ensures the leading "v" is transparent to parsing.
func TestParseVersion(t *testing.T) {
	t.Parallel()

	withPrefix, err := ParseVersion("v1.2.3")
	require.NoError(t, err)

	withoutPrefix, err := ParseVersion("1.2.3")
	require.NoError(t, err)

	require.True(t, withPrefix.Equal(withoutPrefix))

	_, err = ParseVersion("not-a-version")
	require.Error(t, err)
}

// TestFetchLatest verifies tag parsing and asset selection against a fake feed.
func TestFetchLatest(t *testing.T) {
	t.Parallel()

	body := `{
		"tag_name": "v1.6.0",
		"assets": [
			{"name": "checksums.txt", "browser_download_url": "https://downloads.local/checksums.txt"},
			{"name": "tool.msixbundle", "browser_download_url": "https://downloads.local/tool.msixbundle"},
			{"name": "tool.zip", "browser_download_url": "https://downloads.local/tool.zip"}
		]
	}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, ".msixbundle", time.Second)

	latest, err := client.FetchLatest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "v1.6.0", latest.TagName)
	require.Equal(t, "1.6.0", latest.Version.String())
	require.Equal(t, "https://downloads.local/tool.msixbundle", latest.BundleURL)
}

// TestFetchLatest_NoMatchingAsset requires a matching bundle asset to exist.
func TestFetchLatest_NoMatchingAsset(t *testing.T) {
	t.Parallel()

	body := `{"tag_name": "v1.6.0", "assets": [{"name": "tool.zip", "browser_download_url": "https://downloads.local/tool.zip"}]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, ".msixbundle", time.Second)

	_, err := client.FetchLatest(context.Background())
	require.ErrorIs(t, err, errNoBundleAsset)
}

// TestFetchLatest_FeedUnreachable surfaces transport failures to the caller.
func TestFetchLatest_FeedUnreachable(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	ts.Close()

	client := NewClient(ts.URL, ".msixbundle", time.Second)

	_, err := client.FetchLatest(context.Background())
	require.Error(t, err)
}

// TestSelectBundleAsset checks the selection property over mixed asset lists.
func TestSelectBundleAsset(t *testing.T) {
	t.Parallel()

	assets := []feedAsset{
		{Name: "notes.md", BrowserDownloadURL: "https://downloads.local/notes.md"},
		{BrowserDownloadURL: "https://downloads.local/bundle-a.msixbundle"},
		{Name: "bundle-b.msixbundle", BrowserDownloadURL: "https://downloads.local/bundle-b.msixbundle"},
	}

	url, found := selectBundleAsset(assets, ".msixbundle")
	require.True(t, found)
	require.Equal(t, "https://downloads.local/bundle-a.msixbundle", url)

	_, found = selectBundleAsset(assets[:1], ".msixbundle")
	require.False(t, found)
}
