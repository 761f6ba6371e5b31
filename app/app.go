// Package app provides the entrypoint for the standalone protodart command.
package app

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/protodart/protodart/config"
	"github.com/protodart/protodart/cui"
	"github.com/protodart/protodart/meta"
	"github.com/spf13/pflag"
)

// App is the root component for running the application.
type App struct {
	cui cui.UI
	cmd *command
}

// New instantiates a new App instance. ui must not be nil.
func New(ui cui.UI) *App {
	var flags flags
	return &App{
		cui: ui,
		cmd: newCommand(&flags, ui),
	}
}

// Run starts the application. The return value is the exit code.
func (a *App) Run(args []string) int {
	a.cmd.SetArgs(args)
	if err := a.cmd.Execute(); err != nil {
		a.cui.Error(fmt.Sprintf("%s: %s", meta.AppName, err))
		return 1
	}
	return 0
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", meta.AppName, meta.Version.String())
}

// mergedConfig represents the conclusive config. Items that are also
// configurable through the config file are stored in *config.Config; flags
// that can be specified by command line only are kept as fields.
type mergedConfig struct {
	*config.Config

	// The proto files passed as positional arguments.
	protoFiles []string
	// A serialized FileDescriptorSet to generate from instead of compiling.
	descriptorSet string
}

func mergeConfig(fs *pflag.FlagSet, flags *flags, args []string) (*mergedConfig, error) {
	cfg, err := config.Get(fs)
	if err != nil {
		if err, ok := err.(*config.ValidationError); ok {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to merge command line flags and config files")
	}
	return &mergedConfig{
		Config:        cfg,
		protoFiles:    args,
		descriptorSet: flags.gen.descriptorSet,
	}, nil
}
