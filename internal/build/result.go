// Package build accumulates what a build orchestrator reports about one build
// unit and exposes the facts derived from it.
//
// A Result is created when the unit starts building, fed property/item batches
// and compiler invocations while it builds, and frozen by Complete. A Result has
// a single writer; views may be read concurrently once ingestion has finished.
package build

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Norgate-AV/buildprobe/internal/cmdline"
	"github.com/Norgate-AV/buildprobe/internal/pathutil"
)

// Item is a typed entry reported by the orchestrator, such as a PackageReference
type Item struct {
	ItemSpec string            `json:"spec" yaml:"spec"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata"`
}

// Result holds the state of one build unit
type Result struct {
	projectFilePath string
	properties      foldMap[string]
	items           foldMap[[]Item]
	arguments       []cmdline.Argument
	invocation      string
	identity        uuid.UUID
	succeeded       bool
	completed       bool

	parser *cmdline.Parser
	logger *log.Logger
}

// Option configures a Result at construction
type Option func(*options)

type options struct {
	properties map[string]string
	externalID uuid.UUID
	parser     *cmdline.Parser
	logger     *log.Logger
}

// WithProperties seeds the result with properties known when the unit starts
func WithProperties(properties map[string]string) Option {
	return func(o *options) {
		o.properties = properties
	}
}

// WithExternalID supplies an identifier resolved outside the unit, e.g. from a solution
func WithExternalID(id uuid.UUID) Option {
	return func(o *options) {
		o.externalID = id
	}
}

// WithParser sets the parser used for compiler invocations
func WithParser(p *cmdline.Parser) Option {
	return func(o *options) {
		o.parser = p
	}
}

// WithLogger sets the logger used to report ingestion decisions
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a result for the project at projectFilePath
func New(projectFilePath string, opts ...Option) *Result {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.parser == nil {
		o.parser = cmdline.NewParser()
	}

	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	r := &Result{
		projectFilePath: pathutil.Abs(projectFilePath),
		properties:      newFoldMap[string](),
		items:           newFoldMap[[]Item](),
		parser:          o.parser,
		logger:          o.logger,
	}

	for _, k := range sortedKeys(o.properties) {
		r.properties.set(k, o.properties[k])
	}

	r.identity = resolveIdentity(r, o.externalID)
	return r
}

// IngestBuildEvent merges one batch of properties and items. Properties
// overwrite key by key; an item type's entries replace any earlier ones.
// Keys within a batch are applied in sorted order, so when two keys differ
// only by case the one sorting last wins, spelling included.
func (r *Result) IngestBuildEvent(properties map[string]string, items map[string][]Item) {
	if r.completed {
		r.logger.Debug("Ignoring build event for completed project", "project", r.projectFilePath)
		return
	}

	for _, k := range sortedKeys(properties) {
		r.properties.set(k, properties[k])
	}

	for _, itemType := range sortedKeys(items) {
		r.items.set(itemType, copyItems(items[itemType]))
	}
}

// copyItems copies entries and their metadata so callers cannot change a stored result
func copyItems(entries []Item) []Item {
	copied := make([]Item, len(entries))
	for i, item := range entries {
		copied[i] = Item{ItemSpec: item.ItemSpec}
		if item.Metadata != nil {
			copied[i].Metadata = make(map[string]string, len(item.Metadata))
			for k, v := range item.Metadata {
				copied[i].Metadata[k] = v
			}
		}
	}

	return copied
}

// IngestInvocation parses a compiler invocation and stores it. Once an
// invocation is stored, only one from the primary compile phase replaces it.
func (r *Result) IngestInvocation(raw string, primary bool) {
	if r.completed {
		r.logger.Debug("Ignoring invocation for completed project", "project", r.projectFilePath)
		return
	}

	if strings.TrimSpace(raw) == "" {
		return
	}

	if r.arguments != nil && !primary {
		r.logger.Debug("Keeping earlier invocation", "project", r.projectFilePath)
		return
	}

	args := r.parser.Parse(raw)
	if r.arguments != nil {
		r.logger.Debug("Replacing invocation with primary compile", "project", r.projectFilePath)
	}

	r.arguments = args
	r.invocation = raw
}

// Complete records the build outcome and freezes the result
func (r *Result) Complete(succeeded bool) {
	if r.completed {
		return
	}

	r.succeeded = succeeded
	r.completed = true
}

// ProjectFilePath returns the absolute normalized project path
func (r *Result) ProjectFilePath() string {
	return r.projectFilePath
}

// Identity returns the stable identifier resolved at construction
func (r *Result) Identity() uuid.UUID {
	return r.identity
}

// Succeeded reports the build outcome recorded by Complete
func (r *Result) Succeeded() bool {
	return r.succeeded
}

// Completed reports whether Complete has been called
func (r *Result) Completed() bool {
	return r.completed
}

// Property returns the value of a property, matched case-insensitively
func (r *Result) Property(name string) (string, bool) {
	return r.properties.get(name)
}

// Properties returns a copy of all properties
func (r *Result) Properties() map[string]string {
	props := make(map[string]string, r.properties.len())
	for _, e := range r.properties.entries {
		props[e.name] = e.value
	}

	return props
}

// Items returns the entries of an item type, matched case-insensitively
func (r *Result) Items(itemType string) []Item {
	items, _ := r.items.get(itemType)
	return items
}

// ItemTypes returns the names of all item types in sorted order
func (r *Result) ItemTypes() []string {
	return r.items.names()
}

// Arguments returns the stored invocation records and whether one was stored
func (r *Result) Arguments() ([]cmdline.Argument, bool) {
	if r.arguments == nil {
		return nil, false
	}

	args := make([]cmdline.Argument, len(r.arguments))
	copy(args, r.arguments)
	return args, true
}

// Invocation returns the raw text of the stored invocation
func (r *Result) Invocation() string {
	return r.invocation
}
