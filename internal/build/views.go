package build

import (
	"strings"

	"github.com/Norgate-AV/buildprobe/internal/framework"
	"github.com/Norgate-AV/buildprobe/internal/pathutil"
)

// Well-known property and item names
const (
	PropertyProjectGuid               = "ProjectGuid"
	PropertyTargetFramework           = "TargetFramework"
	PropertyTargetFrameworkIdentifier = "TargetFrameworkIdentifier"
	PropertyTargetFrameworkVersion    = "TargetFrameworkVersion"

	ItemProjectReference = "ProjectReference"
	ItemPackageReference = "PackageReference"

	referenceSwitch = "reference"
)

// CompilerFileNames are excluded from SourceFiles
var CompilerFileNames = []string{"csc.exe", "csc.dll"}

// TargetFramework returns the framework moniker the unit was built for
func (r *Result) TargetFramework() string {
	explicit, _ := r.Property(PropertyTargetFramework)
	identifier, _ := r.Property(PropertyTargetFrameworkIdentifier)
	version, _ := r.Property(PropertyTargetFrameworkVersion)

	return framework.Resolve(explicit, []framework.IdentifierVersion{
		{Identifier: identifier, Version: version},
	})
}

// SourceFiles returns the positional invocation values, resolved against the
// project directory. The compiler executable itself is excluded.
func (r *Result) SourceFiles() []string {
	files := []string{}
	if len(r.arguments) == 0 {
		return files
	}

	dir := r.projectDir()
	for _, arg := range r.arguments[1:] {
		if arg.IsSwitch || isCompilerFile(arg.Value) {
			continue
		}

		files = append(files, pathutil.Resolve(dir, arg.Value))
	}

	return files
}

// References returns the values of every /reference switch as given
func (r *Result) References() []string {
	refs := []string{}
	for _, arg := range r.arguments {
		if arg.IsSwitch && arg.HasValue && strings.EqualFold(arg.Name, referenceSwitch) {
			refs = append(refs, arg.Value)
		}
	}

	return refs
}

// ProjectReferences returns ProjectReference items resolved against the project directory
func (r *Result) ProjectReferences() []string {
	refs := []string{}

	dir := r.projectDir()
	for _, item := range r.Items(ItemProjectReference) {
		refs = append(refs, pathutil.Resolve(dir, item.ItemSpec))
	}

	return refs
}

// PackageReferences maps each package id to its metadata, typically including
// a "Version" key. The first item for a package id wins.
func (r *Result) PackageReferences() map[string]map[string]string {
	refs := make(map[string]map[string]string)
	for _, item := range r.Items(ItemPackageReference) {
		if _, ok := refs[item.ItemSpec]; ok {
			continue
		}

		metadata := make(map[string]string, len(item.Metadata))
		for k, v := range item.Metadata {
			metadata[k] = v
		}

		refs[item.ItemSpec] = metadata
	}

	return refs
}

func (r *Result) projectDir() string {
	return pathutil.Dir(r.projectFilePath)
}

func isCompilerFile(path string) bool {
	name := pathutil.BaseName(path)
	for _, compiler := range CompilerFileNames {
		if strings.EqualFold(name, compiler) {
			return true
		}
	}

	return false
}
