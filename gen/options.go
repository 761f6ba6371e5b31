package gen

import (
	"strings"

	"github.com/pkg/errors"
)

// Options configures generation.
type Options struct {
	// NoExport suppresses the export of the companion .pb.dart file from the
	// generated library.
	NoExport bool
}

// ParseParameter parses the comma-separated parameter string protoc passes
// through --dart-rpc_opt. Unknown keys are rejected so typos fail loudly.
func ParseParameter(parameter string) (Options, error) {
	var opts Options
	if parameter == "" {
		return opts, nil
	}
	for _, p := range strings.Split(parameter, ",") {
		switch p {
		case "no_export":
			opts.NoExport = true
		default:
			return Options{}, errors.Errorf("unknown parameter %q", p)
		}
	}
	return opts, nil
}
