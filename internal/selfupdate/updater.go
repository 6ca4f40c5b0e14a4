package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
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
)

var (
	// ErrDevBuild is returned when the running binary carries no release version.
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stages reported through UpdateProgress, in order.
const (
	StageCheck    = "check"
	StageDownload = "download"
	StageVerify   = "verify"
	StageExtract  = "extract"
	StageApply    = "apply"
	StageDone     = "done"
)

const checksumsFile = "checksums.txt"

// UpdateInput selects the update target. An empty TargetVersion means the
// latest release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage of Update.
type UpdateProgress struct {
	Stage   string
	Message string
}

// releaseAsset is one platform build of a tagged release: the archive
// published on the release page and the executable packed inside it.
type releaseAsset struct {
	tag     string
	archive string
	binary  string
}

// assetFor names the archive for goos/goarch. Archives are named after the
// repository, e.g. profilecard_Linux_x86_64.tar.gz, and macOS ships a
// single universal build.
func (c *Checker) assetFor(tag, goos, goarch string) (releaseAsset, error) {
	a := releaseAsset{tag: tag, binary: c.repo}

	arch := goarchToRelease(goarch)
	switch goos {
	case "darwin":
		a.archive = c.repo + "_Darwin_all.tar.gz"
		return a, nil
	case "linux":
		if arch == "" {
			return a, fmt.Errorf("unsupported architecture: %s", goarch)
		}
		a.archive = fmt.Sprintf("%s_Linux_%s.tar.gz", c.repo, arch)
		return a, nil
	case "windows":
		if arch == "" {
			return a, fmt.Errorf("unsupported architecture: %s", goarch)
		}
		a.archive = fmt.Sprintf("%s_Windows_%s.zip", c.repo, arch)
		a.binary = c.repo + ".exe"
		return a, nil
	}
	return a, fmt.Errorf("unsupported operating system: %s", goos)
}

func goarchToRelease(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i386"
	}
	return ""
}

func (c *Checker) downloadURL(tag, file string) string {
	base := strings.TrimRight(c.downloadBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", base, c.owner, c.repo, tag, file)
}

// Update downloads the release archive for this platform, verifies it
// against the release checksums and swaps it in for the running executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if isDevVersion(input.CurrentVersion) {
		return ErrDevBuild
	}
	report := func(stage, msg string) {
		c.logger.Debug("self-update", "stage", stage, "msg", msg)
		progress(UpdateProgress{Stage: stage, Message: msg})
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageCheck, "Checking for latest version...")
		result, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !result.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = result.LatestVersion
	}

	asset, err := c.assetFor(tag, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(StageDownload, fmt.Sprintf("Downloading %s %s...", c.repo, tag))
	archiveData, err := c.downloadFile(ctx, c.downloadURL(tag, asset.archive))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	checksumsData, err := c.downloadFile(ctx, c.downloadURL(tag, checksumsFile))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	expected, ok := parseChecksums(checksumsData)[asset.archive]
	if !ok {
		return fmt.Errorf("no checksum found for %s in %s", asset.archive, checksumsFile)
	}
	if err := verifyChecksum(archiveData, expected); err != nil {
		return err
	}

	report(StageExtract, fmt.Sprintf("Extracting %s...", asset.binary))
	binaryData, err := extractBinary(archiveData, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageApply, "Applying update...")
	targetPath, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := replaceExecutable(binaryData, targetPath); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, fmt.Sprintf("Updated %s to %s", c.repo, tag))
	return nil
}

func (c *Checker) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads sha256sum output. Both "hash  file" and the binary
// mode "hash *file" forms are accepted.
func parseChecksums(data []byte) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		result[strings.TrimPrefix(parts[1], "*")] = strings.ToLower(parts[0])
	}
	return result
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if !strings.EqualFold(actual, expectedHex) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

func extractBinary(archiveData []byte, asset releaseAsset) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(asset.archive, ".zip") {
		data, err = extractFromZip(archiveData, asset.binary)
	} else {
		data, err = extractFromTarGz(archiveData, asset.binary)
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("binary %q in %s is empty", asset.binary, asset.archive)
	}
	return data, nil
}

func extractFromTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if filepath.Base(hdr.Name) == name && hdr.Typeflag == tar.TypeReg {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

func extractFromZip(data []byte, name string) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if filepath.Base(f.Name) != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// replaceExecutable writes binaryData next to targetPath with the same
// permissions, then swaps it in. The previous binary is parked at
// <target>.old during the swap and moved back if the swap fails.
func replaceExecutable(binaryData []byte, targetPath string) error {
	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}
	want := sha256.Sum256(binaryData)

	tmp, err := os.CreateTemp(filepath.Dir(targetPath), ".profilecard-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(binaryData); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	written, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sha256.Sum256(written) != want {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}

	backup := targetPath + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(targetPath, backup); err != nil {
		return fmt.Errorf("park current binary: %w", err)
	}
	if err := os.Rename(tmpPath, targetPath); err != nil {
		if rerr := os.Rename(backup, targetPath); rerr != nil {
			return errors.Join(fmt.Errorf("install new binary: %w", err), fmt.Errorf("restore previous binary: %w", rerr))
		}
		return fmt.Errorf("install new binary: %w", err)
	}
	// Windows keeps the running image locked, so the backup may linger.
	_ = os.Remove(backup)
	return nil
}
