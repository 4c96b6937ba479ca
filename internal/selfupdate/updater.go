package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string // empty means the latest release
}

// UpdateProgress is reported once per stage: check, download, verify,
// extract, apply and done.
type UpdateProgress struct {
	Stage   string
	Message string
}

const (
	binaryName      = "edunova"
	checksumsAsset  = "checksums.txt"
	maxChecksumSize = 1 << 20
)

// Update installs a release in place of the running binary. The archive is
// streamed to a work directory beside the executable, checked against the
// release's checksums.txt and unpacked there, so the final rename never
// crosses filesystems. progress may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	report := func(stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
		}
	}

	tag, err := c.targetTag(ctx, input, report)
	if err != nil {
		return err
	}
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	work, err := os.MkdirTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(work) }()

	report("download", "Downloading %s...", tag)
	archive := filepath.Join(work, asset)
	sum, err := c.fetchTo(ctx, c.assetURL(tag, asset), archive)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report("verify", "Verifying checksum...")
	if err := c.verify(ctx, tag, asset, sum); err != nil {
		return err
	}

	report("extract", "Extracting binary...")
	staged := filepath.Join(work, binaryName+"-new")
	if err := extractTo(archive, staged); err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report("apply", "Applying update...")
	if err := replaceExecutable(staged, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report("done", "Updated to %s", tag)
	return nil
}

// targetTag picks the release to install. An explicit target equal to the
// running version is refused like an up-to-date check.
func (c *Checker) targetTag(ctx context.Context, input *UpdateInput, report func(string, string, ...any)) (string, error) {
	current := canonical(input.CurrentVersion)
	if !semver.IsValid(current) {
		return "", ErrDevBuild
	}
	if input.TargetVersion != "" {
		tag := canonical(input.TargetVersion)
		if semver.Compare(tag, current) == 0 {
			return "", ErrAlreadyLatest
		}
		return tag, nil
	}

	report("check", "Checking for latest version...")
	result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

func (c *Checker) assetURL(tag, asset string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, asset)
}

func (c *Checker) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}

// fetchTo streams url into path and returns the hex SHA-256 of the body.
func (c *Checker) fetchTo(ctx context.Context, url, path string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	_, err = io.Copy(io.MultiWriter(f, h), body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Checker) verify(ctx context.Context, tag, asset, sum string) error {
	body, err := c.get(ctx, c.assetURL(tag, checksumsAsset))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, maxChecksumSize))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(data)[asset]
	if !ok {
		return fmt.Errorf("%w: %s is not listed in %s", ErrChecksum, asset, checksumsAsset)
	}
	if !strings.EqualFold(want, sum) {
		return fmt.Errorf("%w: %s has %s, expected %s", ErrChecksum, asset, sum, want)
	}
	return nil
}

// assetNameFor names the release archive built for goos/goarch.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

// parseChecksums reads "<sha256>  <file>" lines. Other lines are skipped.
func parseChecksums(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if fields := strings.Fields(line); len(fields) == 2 {
			out[fields[1]] = fields[0]
		}
	}
	return out
}

// extractTo copies the edunova binary out of archive into dst. Zip
// archives carry edunova.exe, tarballs carry edunova.
func extractTo(archive, dst string) error {
	if strings.HasSuffix(archive, ".zip") {
		return extractZip(archive, binaryName+".exe", dst)
	}
	return extractTarGz(archive, binaryName, dst)
}

func extractTarGz(archive, name, dst string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return writeFile(dst, tr)
		}
	}
}

func extractZip(archive, name, dst string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, zf := range zr.File {
		if filepath.Base(zf.Name) != name {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		return writeFile(dst, rc)
	}
	return fmt.Errorf("binary %q not found in archive", name)
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o700)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// replaceExecutable renames staged over target, carrying over target's
// permission bits first.
func replaceExecutable(staged, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	if err := os.Chmod(staged, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
