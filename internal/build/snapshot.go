package build

import (
	"time"

	"github.com/Norgate-AV/buildprobe/internal/cmdline"
)

// Snapshot is a serializable copy of a result and its derived views
type Snapshot struct {
	// ID is the result identity
	ID string `json:"id"`

	// ProjectFilePath is the absolute path to the project file
	ProjectFilePath string `json:"project_file_path"`

	Succeeded bool `json:"succeeded"`

	TargetFramework string `json:"target_framework,omitempty"`

	Properties map[string]string `json:"properties,omitempty"`

	Items map[string][]Item `json:"items,omitempty"`

	// Invocation is the raw compiler invocation the arguments were parsed from
	Invocation string `json:"invocation,omitempty"`

	Arguments []cmdline.Argument `json:"arguments,omitempty"`

	SourceFiles       []string                     `json:"source_files"`
	References        []string                     `json:"references"`
	ProjectReferences []string                     `json:"project_references"`
	PackageReferences map[string]map[string]string `json:"package_references"`

	// InvocationDigest is set by the store when the snapshot is saved
	InvocationDigest string `json:"invocation_digest,omitempty"`

	// Timestamp when the snapshot was saved
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot captures the current state of the result
func (r *Result) Snapshot() *Snapshot {
	items := make(map[string][]Item, r.items.len())
	for _, e := range r.items.entries {
		entries := make([]Item, len(e.value))
		copy(entries, e.value)
		items[e.name] = entries
	}

	args, _ := r.Arguments()

	return &Snapshot{
		ID:                r.identity.String(),
		ProjectFilePath:   r.projectFilePath,
		Succeeded:         r.succeeded,
		TargetFramework:   r.TargetFramework(),
		Properties:        r.Properties(),
		Items:             items,
		Invocation:        r.invocation,
		Arguments:         args,
		SourceFiles:       r.SourceFiles(),
		References:        r.References(),
		ProjectReferences: r.ProjectReferences(),
		PackageReferences: r.PackageReferences(),
	}
}
