// Package framework resolves target framework monikers from project properties.
package framework

import (
	"strconv"
	"strings"
)

// Known target framework identifiers
const (
	NETFramework = ".NETFramework"
	NETCoreApp   = ".NETCoreApp"
	NETStandard  = ".NETStandard"
)

// IdentifierVersion pairs a TargetFrameworkIdentifier with a TargetFrameworkVersion
type IdentifierVersion struct {
	Identifier string
	Version    string
}

// Resolve returns the explicit moniker when set, otherwise the moniker of the
// first pair that can be resolved. It returns "" when nothing resolves.
func Resolve(explicit string, pairs []IdentifierVersion) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}

	for _, pair := range pairs {
		if moniker := Moniker(pair.Identifier, pair.Version); moniker != "" {
			return moniker
		}
	}

	return ""
}

// Moniker converts an identifier and version (e.g. ".NETFramework", "v4.7.2")
// to a short moniker (e.g. "net472")
func Moniker(identifier, version string) string {
	parts, ok := parseVersion(version)
	if !ok {
		return ""
	}

	dotted := strings.Join(parts, ".")

	switch {
	case strings.EqualFold(identifier, NETFramework):
		return "net" + strings.Join(parts, "")
	case strings.EqualFold(identifier, NETCoreApp):
		if major, _ := strconv.Atoi(parts[0]); major >= 5 {
			return "net" + dotted
		}
		return "netcoreapp" + dotted
	case strings.EqualFold(identifier, NETStandard):
		return "netstandard" + dotted
	}

	return ""
}

// parseVersion splits "v4.7.2" into its numeric components
func parseVersion(version string) ([]string, bool) {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(strings.TrimPrefix(version, "v"), "V")
	if version == "" {
		return nil, false
	}

	parts := strings.Split(version, ".")
	for _, part := range parts {
		if _, err := strconv.ParseUint(part, 10, 32); err != nil {
			return nil, false
		}
	}

	return parts, true
}
