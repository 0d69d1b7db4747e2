package cmdline

// Argument is a single record recovered from a compiler invocation
type Argument struct {
	// Name is the switch name without the leading '/'
	Name string `json:"name,omitempty"`

	// Value is the switch value, or the text of a positional record
	Value string `json:"value,omitempty"`

	// IsSwitch is false for the leading executable record and positional values
	IsSwitch bool `json:"is_switch"`

	// HasValue is false for flags such as /noconfig
	HasValue bool `json:"has_value"`
}

// Positional returns a record without a switch name
func Positional(value string) Argument {
	return Argument{Value: value, HasValue: true}
}

// Flag returns a switch record without a value
func Flag(name string) Argument {
	return Argument{Name: name, IsSwitch: true}
}

// Switch returns a switch record carrying a value
func Switch(name, value string) Argument {
	return Argument{Name: name, Value: value, IsSwitch: true, HasValue: true}
}

// IsFlag reports whether the record is a switch without a value
func (a Argument) IsFlag() bool {
	return a.IsSwitch && !a.HasValue
}

func (a Argument) String() string {
	switch {
	case !a.IsSwitch:
		return a.Value
	case !a.HasValue:
		return "/" + a.Name
	default:
		return "/" + a.Name + ":" + a.Value
	}
}
