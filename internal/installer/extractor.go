package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"devkit/internal/logger"
)

// ExtractArchive routes to appropriate extraction function based on archive type.
// With strip set, the leading directory of every entry is dropped, so an
// archive wrapping everything in "msys64/" lands directly in dest.
// It returns the directory the archive's top-level entry ended up in.
func ExtractArchive(src, dest string, strip bool) (string, error) {
	x := extraction{dest: filepath.Clean(dest), strip: strip}
	var err error
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		err = x.fromZip(src)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		err = x.fromSevenZip(src)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		err = x.fromTar(src)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
	if err != nil {
		return "", err
	}
	if strip || x.topLevel == "" {
		return x.dest, nil
	}
	return filepath.Join(x.dest, x.topLevel), nil
}

// extraction carries the destination and the top-level folder seen so far.
type extraction struct {
	dest     string
	strip    bool
	topLevel string
}

// target maps an archive entry name to a path below dest. skip is true for
// entries that vanish after stripping (the stripped directory itself).
func (x *extraction) target(name string) (path string, skip bool, err error) {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	parts := strings.Split(strings.Trim(name, "/"), "/")
	if x.topLevel == "" && parts[0] != "" {
		x.topLevel = parts[0]
	}
	if x.strip {
		parts = parts[1:]
	}
	if len(parts) == 0 || (len(parts) == 1 && parts[0] == "") {
		return "", true, nil
	}

	path = filepath.Join(x.dest, filepath.FromSlash(strings.Join(parts, "/")))
	if !x.within(path) {
		return "", false, fmt.Errorf("archive entry %q escapes %s", name, x.dest)
	}

	// An earlier entry may have planted a symlink; never write through one.
	parent := x.dest
	for _, part := range parts[:len(parts)-1] {
		parent = filepath.Join(parent, part)
		info, err := os.Lstat(parent)
		if err != nil {
			break
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return "", false, fmt.Errorf("archive entry %q is below symlink %s", name, parent)
		}
	}
	return path, false, nil
}

// within reports whether path lies inside dest.
func (x *extraction) within(path string) bool {
	rel, err := filepath.Rel(x.dest, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// symlink creates path pointing at linkname. Links leaving dest are refused.
func (x *extraction) symlink(path, linkname string) error {
	if filepath.IsAbs(linkname) || !x.within(filepath.Join(filepath.Dir(path), filepath.FromSlash(linkname))) {
		return fmt.Errorf("symlink %s -> %s escapes %s", path, linkname, x.dest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	_ = os.Remove(path)
	if err := os.Symlink(linkname, path); err != nil {
		logger.Warn("[WARN] Skipping symlink %s: %v\n", path, err)
	}
	return nil
}

// fromTar handles tar and compressed tar variants
func (x *extraction) fromTar(src string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, x.dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		path, skip, err := x.target(hdr.Name)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(path, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := x.symlink(path, hdr.Linkname); err != nil {
				return err
			}
		}
	}
}

// fromZip extracts a .zip archive
func (x *extraction) fromZip(src string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		path, skip, err := x.target(f.Name)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// fromSevenZip handles .7z extraction using the sevenzip library
func (x *extraction) fromSevenZip(src string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		path, skip, err := x.target(f.Name)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// writeFile copies r into path, creating parent directories.
// A zero mode falls back to 0644.
func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if mode == 0 {
		mode = 0644
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	// Replace a symlink left at path instead of writing to its target.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
