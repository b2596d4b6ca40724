// Package nightly computes download locations for the nightly builds of Tor
// Browser and Mullvad Browser.
package nightly

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var targetLog = logger.New("nightly:target")

// Platform is an operating system nightlies are built for.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
)

// Architecture is a CPU architecture. Which ones are valid depends on the platform.
type Architecture string

const (
	ArchX86_64  Architecture = "x86_64"
	ArchI686    Architecture = "i686"
	ArchAarch64 Architecture = "aarch64"
)

// Browser is the browser flavour of a nightly build.
type Browser string

const (
	BrowserTor     Browser = "tor"
	BrowserMullvad Browser = "mullvad"
)

// Platforms lists the supported platforms in display order.
var Platforms = []Platform{PlatformLinux, PlatformMacOS, PlatformWindows}

// Browsers lists the supported browsers in display order.
var Browsers = []Browser{BrowserTor, BrowserMullvad}

var platformArchitectures = map[Platform][]Architecture{
	PlatformLinux:   {ArchX86_64, ArchI686},
	PlatformMacOS:   {ArchX86_64, ArchAarch64},
	PlatformWindows: {ArchX86_64, ArchI686},
}

// ValidArchitectures returns the architectures built for p, or nil for an
// unknown platform.
func ValidArchitectures(p Platform) []Architecture {
	return slices.Clone(platformArchitectures[p])
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	_, ok := platformArchitectures[p]
	return ok
}

// Valid reports whether b is a supported browser.
func (b Browser) Valid() bool {
	return slices.Contains(Browsers, b)
}

// Target is the platform, architecture and browser a smoke test runs against.
type Target struct {
	Platform Platform
	Arch     Architecture
	Browser  Browser
}

func (t Target) String() string {
	return fmt.Sprintf("%s-%s (%s)", t.Platform, t.Arch, t.Browser)
}

// ValidationError describes one invalid field of a Target.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Valid  []string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("argument --%s: %s", e.Field, e.Reason)
	if len(e.Valid) > 0 {
		msg += ". Valid options are: " + strings.Join(e.Valid, ", ")
	}
	return msg
}

// Validate checks every field of the target, including that the architecture
// belongs to the platform. It returns nil or an error joining one
// *ValidationError per invalid field.
func (t Target) Validate() error {
	targetLog.Printf("Validating target: platform=%q arch=%q browser=%q", t.Platform, t.Arch, t.Browser)

	var errs []error

	platformOK := false
	switch {
	case t.Platform == "":
		errs = append(errs, &ValidationError{
			Field:  "platform",
			Reason: "the --platform flag is required",
			Valid:  toStrings(Platforms),
		})
	case !t.Platform.Valid():
		errs = append(errs, &ValidationError{
			Field:  "platform",
			Value:  string(t.Platform),
			Reason: fmt.Sprintf("invalid platform '%s'", t.Platform),
			Valid:  toStrings(Platforms),
		})
	default:
		platformOK = true
	}

	switch {
	case t.Arch == "":
		e := &ValidationError{Field: "arch", Reason: "the --arch flag is required"}
		if platformOK {
			e.Valid = toStrings(platformArchitectures[t.Platform])
		}
		errs = append(errs, e)
	case platformOK && !slices.Contains(platformArchitectures[t.Platform], t.Arch):
		errs = append(errs, &ValidationError{
			Field:  "arch",
			Value:  string(t.Arch),
			Reason: fmt.Sprintf("invalid architecture '%s' for platform '%s'", t.Arch, t.Platform),
			Valid:  toStrings(platformArchitectures[t.Platform]),
		})
	}

	switch {
	case t.Browser == "":
		errs = append(errs, &ValidationError{
			Field:  "browser",
			Reason: "the --browser flag is required",
			Valid:  toStrings(Browsers),
		})
	case !t.Browser.Valid():
		errs = append(errs, &ValidationError{
			Field:  "browser",
			Value:  string(t.Browser),
			Reason: fmt.Sprintf("invalid browser '%s'", t.Browser),
			Valid:  toStrings(Browsers),
		})
	}

	if len(errs) > 0 {
		targetLog.Printf("Target validation failed with %d error(s)", len(errs))
	}
	return errors.Join(errs...)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
