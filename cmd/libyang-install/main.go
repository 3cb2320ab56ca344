// Command libyang-install downloads a prebuilt static libyang archive
// and places it where the libyang_bundled build tag expects it.
//
// The archive is written into the cached module sources when they can
// be located, and always into ~/.yang-go/lib as a fallback for builds
// that point CGO_LDFLAGS there.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	repo       = "holo-routing/yang-go"
	modulePath = "github.com/holo-routing/yang-go"
)

var supportedPlatforms = map[string]string{
	"darwin_arm64": "libyang-darwin-arm64.a",
	"darwin_amd64": "libyang-darwin-amd64.a",
	"linux_arm64":  "libyang-linux-arm64.a",
	"linux_amd64":  "libyang-linux-amd64.a",
}

func main() {
	version := flag.String("version", "latest", "release to install (a tag like v0.3.0, or 'latest')")
	force := flag.Bool("force", false, "overwrite an archive that is already installed")
	flag.Parse()

	if err := run(*version, *force); err != nil {
		fmt.Fprintf(os.Stderr, "libyang-install: %v\n", err)
		os.Exit(1)
	}
}

func run(version string, force bool) error {
	platform := runtime.GOOS + "_" + runtime.GOARCH
	asset, ok := supportedPlatforms[platform]
	if !ok {
		var known []string
		for p := range supportedPlatforms {
			known = append(known, p)
		}
		return fmt.Errorf("no prebuilt archive for %s (available: %s)",
			platform, strings.Join(known, ", "))
	}

	fmt.Printf("fetching %s (%s)\n", asset, version)
	archive, err := fetchAsset(version, asset)
	if err != nil {
		return err
	}

	for _, dir := range targetDirs(platform) {
		if err := writeArchive(dir, archive, force); err != nil {
			return err
		}
	}

	fmt.Printf("installed libyang static archive (%.1f MB)\n", float64(len(archive))/(1024*1024))
	fmt.Println("build against it with: go build -tags libyang_bundled ./...")
	return nil
}

// targetDirs lists the install locations for the platform. The module
// cache entry is skipped when the module sources cannot be located.
func targetDirs(platform string) []string {
	var dirs []string
	if modDir, err := moduleDir(); err != nil {
		fmt.Printf("note: module sources not found (%v), installing the fallback copy only\n", err)
	} else {
		dirs = append(dirs, filepath.Join(modDir, "internal", "ffi", "lib", platform))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".yang-go", "lib", platform))
	}
	return dirs
}

func fetchAsset(version, asset string) ([]byte, error) {
	url := fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", repo, version, asset)
	if version == "latest" {
		url = fmt.Sprintf("https://github.com/%s/releases/latest/download/%s", repo, asset)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d (does release %s carry %s?)",
			url, resp.StatusCode, version, asset)
	}
	return io.ReadAll(resp.Body)
}

func writeArchive(dir string, data []byte, force bool) error {
	path := filepath.Join(dir, "libyang.a")
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("kept existing %s\n", path)
			return nil
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// moduleDir resolves the directory the module sources live in, which
// is the module cache for downstream users.
func moduleDir() (string, error) {
	out, err := exec.Command("go", "list", "-m", "-f", "{{.Dir}}", modulePath).Output()
	if err != nil {
		return "", fmt.Errorf("go list: %w", err)
	}
	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", fmt.Errorf("module %s not in the build list", modulePath)
	}
	return dir, nil
}
