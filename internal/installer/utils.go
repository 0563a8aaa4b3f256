package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"

	"devkit/internal/logger"
)

// fetch returns the cached archive for url, downloading it first when it
// is not in the cache yet.
func (i *Installer) fetch(url string) (string, error) {
	dest := filepath.Join(i.cfg.CacheDir, path.Base(url))
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		logger.Debug("[DEBUG] Using cached archive %s\n", dest)
		return dest, nil
	}
	if err := os.MkdirAll(i.cfg.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create cache directory: %w", err)
	}

	if i.progress != nil {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(i.progress))
		s.Suffix = " Downloading " + path.Base(url)
		s.Start()
		defer s.Stop()
	}

	if err := i.downloadFile(url, dest); err != nil {
		// Never leave a truncated archive behind for the cache to pick up.
		_ = os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
func (i *Installer) downloadFile(url, destPath string) error {
	logger.Info("[INFO] Downloading %s\n", url)
	resp, err := i.client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write response to file: %w", err)
	}

	logger.Debug("[DEBUG] Downloaded %s to: %s\n", url, destPath)
	return nil
}
