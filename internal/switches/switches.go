package switches

import "strings"

// Descriptions maps well-known csc switch names to their descriptions
var Descriptions = map[string]string{
	"additionalfile":    "Additional file for analyzers",
	"analyzer":          "Analyzer assembly",
	"checked":           "Generate overflow checks",
	"debug":             "Emit debugging information",
	"define":            "Conditional compilation symbols",
	"deterministic":     "Produce a deterministic assembly",
	"doc":               "XML documentation output file",
	"errorreport":       "Internal compiler error reporting",
	"filealign":         "Output file section alignment",
	"fullpaths":         "Report full paths in diagnostics",
	"highentropyva":     "High-entropy ASLR support",
	"keyfile":           "Strong name key file",
	"langversion":       "Language version",
	"link":              "Embed interop types from assembly",
	"main":              "Type containing the entry point",
	"noconfig":          "Do not auto-include csc.rsp",
	"nologo":            "Suppress the compiler banner",
	"nostdlib":          "Do not reference the standard library",
	"nowarn":            "Suppressed warnings",
	"nullable":          "Nullable context",
	"optimize":          "Enable optimizations",
	"out":               "Output file",
	"pathmap":           "Source path mapping",
	"pdb":               "Debug symbols file",
	"platform":          "Target platform",
	"recurse":           "Include files matching a wildcard",
	"reference":         "Referenced assembly",
	"refout":            "Reference assembly output",
	"resource":          "Embedded resource",
	"ruleset":           "Analyzer rule set",
	"target":            "Output kind",
	"unsafe":            "Allow unsafe code",
	"utf8output":        "UTF-8 compiler output",
	"warn":              "Warning level",
	"warnaserror":       "Treat warnings as errors",
	"win32icon":         "Win32 icon file",
	"win32manifest":     "Win32 manifest file",
	"win32res":          "Win32 resource file",
	"analyzerconfig":    "Analyzer configuration file",
	"embed":             "Embed source files in the PDB",
	"sourcelink":        "Source link configuration",
	"generatedfilesout": "Generated source output directory",
}

// Describe returns the description of a switch name, or a generic message if unknown.
// Trailing '+' and '-' toggles are ignored.
func Describe(name string) string {
	key := strings.ToLower(strings.TrimRight(name, "+-"))
	if desc, ok := Descriptions[key]; ok {
		return desc
	}

	return "Unknown switch"
}

// IsKnown reports whether name is a well-known switch
func IsKnown(name string) bool {
	return Describe(name) != "Unknown switch"
}
