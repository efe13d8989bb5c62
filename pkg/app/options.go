package app

import (
	cliflag "k8s.io/component-base/cli/flag"
)

// NamedFlagSetOptions is implemented by a command's top-level options.
// Flags are grouped into named sections for --help output.
type NamedFlagSetOptions interface {
	// Flags returns the flag sets, grouped by section name.
	Flags() cliflag.NamedFlagSets

	// Complete fills in fields derived from other fields.
	Complete() error

	// Validate checks the completed options.
	Validate() error
}
