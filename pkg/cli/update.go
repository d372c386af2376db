package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the running build's version, set with -ldflags "-X".
var Version = "0.1.0"

// UpdateRepo is the GitHub repository releases are published to.
const UpdateRepo = "Fepozopo/edgeterm"

const githubAPI = "https://api.github.com"

// githubRelease is the subset of the GitHub releases payload we read.
type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// semverRe finds a version like v1.2.3 or 1.2.3-rc.1 inside a tag or name.
var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

func releaseVersion(r githubRelease) (semver.Version, bool) {
	match := semverRe.FindString(r.TagName)
	if match == "" {
		match = semverRe.FindString(r.Name)
	}
	if match == "" {
		return semver.Version{}, false
	}
	v, err := semver.Parse(strings.TrimPrefix(match, "v"))
	return v, err == nil
}

// pickAsset prefers an asset built for a known OS or architecture and
// otherwise returns the first one.
func pickAsset(r githubRelease) string {
	for _, a := range r.Assets {
		n := strings.ToLower(a.Name)
		for _, hint := range []string{"darwin", "linux", "windows", "amd64", "arm64"} {
			if strings.Contains(n, hint) {
				return a.BrowserDownloadURL
			}
		}
	}
	if len(r.Assets) > 0 {
		return r.Assets[0].BrowserDownloadURL
	}
	return ""
}

// pickRelease returns the highest published, non-prerelease release with
// a semver tag, or nil when there is none.
func pickRelease(releases []githubRelease) *selfupdate.Release {
	var best *selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		v, ok := releaseVersion(r)
		if !ok {
			continue
		}
		if best == nil || v.GT(best.Version) {
			best = &selfupdate.Release{Version: v, AssetURL: pickAsset(r), Name: r.Name}
		}
	}
	return best
}

// latestRelease queries the releases of repo under apiURL. It tolerates
// tag naming that the selfupdate detector would reject.
func latestRelease(client *http.Client, apiURL, repo string) (*selfupdate.Release, error) {
	resp, err := client.Get(fmt.Sprintf("%s/repos/%s/releases", strings.TrimRight(apiURL, "/"), repo))
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}
	return pickRelease(releases), nil
}

// Updater checks GitHub for a newer release and replaces the running binary.
type Updater struct {
	Repo    string
	APIURL  string
	Client  *http.Client
	Current string
	Out     io.Writer
	Prompt  *Prompter
	// Apply installs the asset at url over exe. Defaults to selfupdate.UpdateTo.
	Apply func(url, exe string) error
}

// NewUpdater returns an Updater for this build.
func NewUpdater(out io.Writer, prompt *Prompter) *Updater {
	return &Updater{
		Repo:    UpdateRepo,
		APIURL:  githubAPI,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Current: Version,
		Out:     out,
		Prompt:  prompt,
		Apply:   selfupdate.UpdateTo,
	}
}

// Check reports the latest release and, when it is newer and the user
// agrees, installs it. It returns true when the binary was replaced.
func (u *Updater) Check() (bool, error) {
	fmt.Fprintf(u.Out, "Current version: %s\n", u.Current)
	latest, err := latestRelease(u.Client, u.APIURL, u.Repo)
	if err != nil {
		return false, fmt.Errorf("update check failed: %w", err)
	}
	if latest == nil {
		fmt.Fprintf(u.Out, "No releases found for %s.\n", u.Repo)
		return false, nil
	}
	fmt.Fprintf(u.Out, "Latest version: %s\n", latest.Version)

	current, perr := semver.Parse(strings.TrimPrefix(u.Current, "v"))
	if perr != nil {
		fmt.Fprintf(u.Out, "warning: could not parse current version %q: %v\n", u.Current, perr)
	} else if latest.Version.LTE(current) {
		fmt.Fprintf(u.Out, "You are already running the latest version: %s.\n", current)
		return false, nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(u.Out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		return false, nil
	}
	if u.Prompt == nil {
		fmt.Fprintf(u.Out, "A new version (%s) is available: %s\n", latest.Version, latest.AssetURL)
		return false, nil
	}

	ok, err := u.Prompt.Confirm(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return false, fmt.Errorf("failed reading input: %w", err)
	}
	if !ok {
		fmt.Fprintln(u.Out, "Update cancelled.")
		return false, nil
	}

	fmt.Fprintln(u.Out, "Updating...")
	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("could not locate executable: %w", err)
	}
	if err := u.Apply(latest.AssetURL, exe); err != nil {
		return false, fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(u.Out, "Updated to version %s.\n", latest.Version)
	return true, nil
}

// Restart replaces the current process with the freshly installed binary,
// falling back to starting it as a child and exiting.
func Restart() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	argv := append([]string{exe}, os.Args[1:]...)
	execErr := syscall.Exec(exe, argv, os.Environ())

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("restart failed: %v; fallback start error: %w", execErr, err)
	}
	os.Exit(0)
	return nil
}
