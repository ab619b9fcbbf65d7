package flags

import (
	"fmt"
	"strings"
)

// Format is the encoding of written examples.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// String is an implementation of the pflag.Value interface.
func (f *Format) String() string {
	if *f == "" {
		return string(FormatJSON)
	}
	return string(*f)
}

// Set is an implementation of the pflag.Value interface.
func (f *Format) Set(value string) error {
	switch Format(strings.ToLower(value)) {
	case FormatJSON:
		*f = FormatJSON
	case "yaml", "yml":
		*f = FormatYAML
	default:
		return fmt.Errorf("unsupported format %q: must be one of json, yaml", value)
	}
	return nil
}

// Type is an implementation of the pflag.Value interface.
func (f *Format) Type() string {
	return "format"
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}
