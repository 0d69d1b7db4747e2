// Package events decodes build-event documents and replays them onto a build result.
package events

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/buildprobe/internal/build"
)

var (
	// ErrMissingProject is returned when a document names no project file
	ErrMissingProject = errors.New("project file path is required")

	// ErrEmptyEvent is returned when an event carries nothing to ingest
	ErrEmptyEvent = errors.New("event has no properties, items or invocation")
)

// Unit describes everything the orchestrator reported for one build unit
type Unit struct {
	// Project is the project file path, relative to the document when not absolute
	Project string `yaml:"project"`

	// ExternalID is an identifier resolved outside the unit, e.g. from a solution
	ExternalID string `yaml:"external_id,omitempty"`

	// Properties are known when the unit starts building
	Properties map[string]string `yaml:"properties,omitempty"`

	Events []Event `yaml:"events"`

	Succeeded bool `yaml:"succeeded"`
}

// Event is one batch of data reported while the unit builds
type Event struct {
	Properties map[string]string       `yaml:"properties,omitempty"`
	Items      map[string][]build.Item `yaml:"items,omitempty"`

	// Invocation is raw compiler invocation text
	Invocation string `yaml:"invocation,omitempty"`

	// Primary marks an invocation from the authoritative compile phase
	Primary bool `yaml:"primary,omitempty"`
}

// Decode reads and validates a single YAML or JSON document
func Decode(r io.Reader) (*Unit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	var unit Unit
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&unit); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode events: empty document")
		}
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	if err := unit.Validate(); err != nil {
		return nil, err
	}

	return &unit, nil
}

// DecodeFile decodes the document at path
func DecodeFile(path string) (*Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Validate checks that the unit can be replayed
func (u *Unit) Validate() error {
	if strings.TrimSpace(u.Project) == "" {
		return ErrMissingProject
	}

	if _, err := u.externalID(); err != nil {
		return err
	}

	for i, e := range u.Events {
		if len(e.Properties) == 0 && len(e.Items) == 0 && strings.TrimSpace(e.Invocation) == "" {
			return fmt.Errorf("event %d: %w", i, ErrEmptyEvent)
		}
	}

	return nil
}

// NewResult creates an empty result for the unit
func (u *Unit) NewResult(opts ...build.Option) (*build.Result, error) {
	id, err := u.externalID()
	if err != nil {
		return nil, err
	}

	base := []build.Option{build.WithProperties(u.Properties)}
	if id != uuid.Nil {
		base = append(base, build.WithExternalID(id))
	}

	return build.New(u.Project, append(base, opts...)...), nil
}

// Apply replays the events in order and completes the result
func (u *Unit) Apply(r *build.Result) {
	for _, e := range u.Events {
		if len(e.Properties) > 0 || len(e.Items) > 0 {
			r.IngestBuildEvent(e.Properties, e.Items)
		}

		if e.Invocation != "" {
			r.IngestInvocation(e.Invocation, e.Primary)
		}
	}

	r.Complete(u.Succeeded)
}

func (u *Unit) externalID() (uuid.UUID, error) {
	if u.ExternalID == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(u.ExternalID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid external id %q: %w", u.ExternalID, err)
	}

	return id, nil
}
