package app

import (
	"io"

	multierror "github.com/ktr0731/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// flags defines the available command line flags.
type flags struct {
	gen struct {
		protoPath     []string
		out           string
		descriptorSet string
		noExport      bool
	}

	meta struct {
		verbose bool
		noColor bool
		version bool
	}
}

// validate defines invalid conditions and checks whether f and the
// positional arguments hit one of them.
func (f *flags) validate(args []string) error {
	var result error
	invalidCases := []struct {
		name string
		cond bool
	}{
		{"cannot specify both of proto files and --descriptor-set", len(args) > 0 && f.gen.descriptorSet != ""},
		{"one or more proto files, or --descriptor-set, are required", len(args) == 0 && f.gen.descriptorSet == ""},
	}
	for _, c := range invalidCases {
		if c.cond {
			result = multierror.Append(result, errors.New(c.name))
		}
	}
	return result
}

func bindFlags(f *pflag.FlagSet, flags *flags, w io.Writer) {
	f.SortFlags = false
	f.SetOutput(w)

	f.StringSliceVarP(&flags.gen.protoPath, "proto-path", "I", nil, "comma-separated directories proto imports are resolved against")
	f.StringVarP(&flags.gen.out, "out", "o", "", "directory generated files are written to")
	f.StringVar(&flags.gen.descriptorSet, "descriptor-set", "", "generate from a serialized FileDescriptorSet instead of compiling proto files")
	f.BoolVar(&flags.gen.noExport, "no-export", false, "do not export the companion .pb.dart file from generated libraries")
	f.BoolVarP(&flags.meta.verbose, "verbose", "v", false, "verbose output")
	f.BoolVar(&flags.meta.noColor, "no-color", false, "disable colored output")
	f.BoolVar(&flags.meta.version, "version", false, "display version and exit")
}
