package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrTooFewArgs is returned by SplitArgs when the name or the domain is missing.
var ErrTooFewArgs = errors.New("expected one or more name words followed by a domain")

// Identifiers holds every name derived for one project.
type Identifiers struct {
	DisplayName string `json:"displayName"` // e.g., "Boxit Tracker"
	PackageName string `json:"packageName"` // e.g., "boxit-tracker"
	NativeID    string `json:"nativeId"`    // e.g., "ir.boxitsoft.boxittracker"
	Domain      string `json:"domain"`      // e.g., "boxitsoft.ir"
}

// SplitArgs separates command-line arguments into the name words and the
// trailing domain.
func SplitArgs(args []string) ([]string, string, error) {
	if len(args) < 2 {
		return nil, "", fmt.Errorf("%w: got %d argument(s)", ErrTooFewArgs, len(args))
	}
	last := len(args) - 1
	return args[:last], args[last], nil
}

// Derive computes all identifiers for the given name words and domain.
func Derive(nameTokens []string, domain string) Identifiers {
	display := strings.Join(nameTokens, " ")
	return Identifiers{
		DisplayName: display,
		PackageName: ToPackageName(display),
		NativeID:    DeriveNativeID(domain, display),
		Domain:      domain,
	}
}

// ToPackageName lowercases s and collapses every run of whitespace into a
// single hyphen.
func ToPackageName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// ToMergedLowercase removes all whitespace from s and lowercases the rest.
func ToMergedLowercase(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// DeriveNativeID builds a reverse-domain identifier: the domain labels in
// reverse order followed by the merged, lowercased display name.
// Labels are reversed as given; no normalization is applied.
func DeriveNativeID(domain, displayName string) string {
	labels := strings.Split(domain, ".")
	parts := make([]string, 0, len(labels)+1)
	for i := len(labels) - 1; i >= 0; i-- {
		parts = append(parts, labels[i])
	}
	parts = append(parts, ToMergedLowercase(displayName))
	return strings.Join(parts, ".")
}

var (
	segmentPattern     = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	packageNamePattern = regexp.MustCompile(`^[a-z0-9~][a-z0-9._~-]*$`)
)

// ValidatePackageName reports whether name is accepted by npm as an
// unscoped package name.
func ValidatePackageName(name string) error {
	if len(name) > 214 {
		return fmt.Errorf("npm name %q is longer than 214 characters", name)
	}
	if !packageNamePattern.MatchString(name) {
		return fmt.Errorf("npm name %q must match [a-z0-9~][a-z0-9._~-]*", name)
	}
	return nil
}

// ValidateNativeID reports whether id follows the reverse-domain convention
// accepted by Android and iOS: at least two dot-separated segments, each
// lowercase alphanumeric (or underscore) and not starting with a digit.
func ValidateNativeID(id string) error {
	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		return fmt.Errorf("native id %q must have at least two segments", id)
	}
	for i, seg := range segments {
		if seg == "" {
			return fmt.Errorf("native id %q has an empty segment at position %d", id, i+1)
		}
		if !segmentPattern.MatchString(seg) {
			return fmt.Errorf("native id %q: segment %q must match [a-z_][a-z0-9_]*", id, seg)
		}
	}
	return nil
}
