package nightly

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var buildLog = logger.New("nightly:build")

// DefaultBaseURL is where the nightly build archives are published.
const DefaultBaseURL = "https://nightlies.tbb.torproject.org/nightly-builds/tor-browser-builds"

// DateFormat is the layout of the date token in nightly build names.
const DateFormat = "2006.01.02"

// DefaultRunFor is how long, in seconds, the smoke test keeps the browser running.
const DefaultRunFor = 30

// Build is a single nightly artifact and the executable to start inside it.
type Build struct {
	Target     Target
	Date       string
	URL        string
	BinaryPath string
}

// DateToken returns the build date for the nightly that is expected to be
// published by now: the calendar day before now.
func DateToken(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(DateFormat)
}

// ArchiveExtension returns the file extension of the archive for p.
func ArchiveExtension(p Platform) string {
	switch p {
	case PlatformLinux:
		return "tar.xz"
	case PlatformMacOS:
		return "dmg"
	case PlatformWindows:
		return "exe"
	default:
		return ""
	}
}

// BinaryPath returns the path of the browser executable inside the archive.
func BinaryPath(t Target) string {
	switch t.Platform {
	case PlatformLinux:
		return fmt.Sprintf("Browser/start-%s-browser", t.Browser)
	case PlatformMacOS:
		if t.Browser == BrowserTor {
			return "Contents/MacOS/firefox"
		}
		return "Contents/MacOS/mullvadbrowser"
	case PlatformWindows:
		if t.Browser == BrowserTor {
			return "Browser/firefox.exe"
		}
		return "mullvadbrowser.exe"
	default:
		return ""
	}
}

// archSegment is the "-<arch>" part of build names. macOS builds are
// universal and carry no architecture.
func archSegment(t Target) string {
	if t.Platform == PlatformMacOS {
		return ""
	}
	return "-" + string(t.Arch)
}

// NewBuild validates t and computes the download URL of the nightly built the
// day before now. An empty baseURL selects DefaultBaseURL.
func NewBuild(t Target, now time.Time, baseURL string) (*Build, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	date := DateToken(now)
	arch := archSegment(t)
	ext := ArchiveExtension(t.Platform)

	var url string
	switch t.Browser {
	case BrowserTor:
		extra := ""
		if t.Platform == PlatformWindows {
			extra = "-portable"
		}
		url = fmt.Sprintf("%s/tbb-nightly.%s/nightly-%s%s/%s-browser-%s%s%s-tbb-nightly.%s.%s",
			baseURL, date, t.Platform, arch, t.Browser, t.Platform, arch, extra, date, ext)
	case BrowserMullvad:
		url = fmt.Sprintf("%s/tbb-nightly.%s/mullvadbrowser-nightly-%s%s/%s-browser-%s%s-tbb-nightly.%s.%s",
			baseURL, date, t.Platform, arch, t.Browser, t.Platform, arch, date, ext)
	}

	b := &Build{
		Target:     t,
		Date:       date,
		URL:        url,
		BinaryPath: BinaryPath(t),
	}
	buildLog.Printf("Computed build for %s: url=%s binary=%s", t, b.URL, b.BinaryPath)
	return b, nil
}

// SmokeTestArgs returns the arguments passed to the crash test helper for b.
func SmokeTestArgs(b *Build, runFor int) []string {
	return []string{
		"--run-for", strconv.Itoa(runFor),
		"--thing-url", b.URL,
		"--thing-to-run", b.BinaryPath,
	}
}
