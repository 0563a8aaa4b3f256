package installer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"devkit/internal/config"
	"devkit/internal/logger"
)

const githubAPI = "https://api.github.com"

// GitHubRelease represents the structure of a GitHub release JSON response.
type GitHubRelease struct {
	TagName string `json:"tag_name"` // The release tag (e.g., v1.0.0)
	Assets  []struct {
		Name               string `json:"name"`                 // Asset filename
		BrowserDownloadURL string `json:"browser_download_url"` // Direct download URL for the asset
	} `json:"assets"`
}

// archExt lists the archive types ExtractArchive understands.
var archExt = []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z"}

// archAliases maps GOARCH to the other spellings found in asset names.
var archAliases = map[string][]string{
	"amd64": {"amd64", "x86_64", "x64"},
	"arm64": {"arm64", "aarch64"},
	"386":   {"386", "i686", "x86"},
}

// releaseAssetURL looks up the component's GitHub release and returns the
// download URL of the matching asset. Without a tag the latest release is used.
func (i *Installer) releaseAssetURL(comp config.Component) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", i.apiBase, comp.Repo)
	if comp.Tag != "" {
		url = fmt.Sprintf("%s/repos/%s/releases/tags/%s", i.apiBase, comp.Repo, comp.Tag)
	}
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	resp, err := i.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("HTTP GET error fetching release for %s: %w", comp.Repo, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub release fetch failed for %s: HTTP status %d", comp.Repo, resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode GitHub release JSON for %s: %w", comp.Repo, err)
	}
	logger.Debug("[DEBUG] Release tag: %s with %d assets\n", release.TagName, len(release.Assets))

	for _, asset := range release.Assets {
		name := strings.ToLower(asset.Name)
		if !isArchive(name) {
			continue
		}
		if comp.Asset != "" && strings.Contains(name, strings.ToLower(comp.Asset)) {
			return asset.BrowserDownloadURL, nil
		}
		if comp.Asset == "" && matchesPlatform(name, runtime.GOOS, runtime.GOARCH) {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no matching asset found for %s in release %s", comp.Repo, release.TagName)
}

func isArchive(name string) bool {
	for _, ext := range archExt {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func matchesPlatform(name, goos, goarch string) bool {
	osNames := []string{goos}
	switch goos {
	case "darwin":
		osNames = append(osNames, "macos", "apple")
	case "windows":
		osNames = append(osNames, "win64", "win32")
	}

	osOK := false
	for _, o := range osNames {
		if strings.Contains(name, o) {
			osOK = true
			break
		}
	}
	if !osOK {
		return false
	}

	arches, ok := archAliases[goarch]
	if !ok {
		arches = []string{goarch}
	}
	for _, a := range arches {
		if strings.Contains(name, a) {
			return true
		}
	}
	return false
}
