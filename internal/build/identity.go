package build

import (
	"strings"

	"github.com/google/uuid"
)

// resolveIdentity prefers a parseable ProjectGuid property, then the external
// id, then a name-based UUID of the project path
func resolveIdentity(r *Result, external uuid.UUID) uuid.UUID {
	if value, ok := r.Property(PropertyProjectGuid); ok {
		if id, err := uuid.Parse(strings.TrimSpace(value)); err == nil {
			return id
		}

		r.logger.Debug("Ignoring unparsable project GUID", "value", value)
	}

	if external != uuid.Nil {
		return external
	}

	return PathIdentity(r.projectFilePath)
}

// PathIdentity returns the version 5 UUID of path in the URL namespace
func PathIdentity(path string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(path))
}
