package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/protodart/protodart/cui"
	"github.com/protodart/protodart/gen"
	"github.com/protodart/protodart/logger"
	"github.com/protodart/protodart/meta"
	"github.com/protodart/protodart/source"
	"github.com/spf13/cobra"
)

type command struct {
	*cobra.Command

	flags *flags
	ui    cui.UI
}

func newCommand(flags *flags, ui cui.UI) *command {
	cmd := &cobra.Command{
		Use:   meta.AppName + " [options ...] <proto files ...>",
		Short: "generate Dart gRPC bindings from proto files",
		Example: strings.Join([]string{
			"        $ protodart api.proto                             # generate api.pbgrpc.dart into the current directory",
			"        $ protodart -I proto -o lib/src/generated api.proto",
			"        $ protodart --descriptor-set build/api.protoset   # generate from a protoc descriptor set",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.meta.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			if err := flags.validate(args); err != nil {
				return errors.Wrap(err, "invalid flag condition")
			}
			if flags.meta.verbose {
				logger.SetOutput(ui.ErrWriter())
			}
			if !flags.meta.noColor && isatty.IsTerminal(os.Stdout.Fd()) {
				ui = cui.NewColored(ui)
			}

			cfg, err := mergeConfig(cmd.Flags(), flags, args)
			if err != nil {
				return err
			}
			logger.SetPrefix(cfg.Log.Prefix)

			return runGenerate(cmd.Context(), cfg, ui)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	bindFlags(cmd.PersistentFlags(), flags, ui.Writer())
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cmd.PersistentFlags().Usage()
	})
	cmd.SetOut(ui.Writer())
	return &command{cmd, flags, ui}
}

// runGenerate is the entrypoint of one generation run. All file system I/O
// of the application happens here; the generator itself never touches disk.
func runGenerate(ctx context.Context, cfg *mergedConfig, ui cui.UI) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		set *source.Set
		err error
	)
	if cfg.descriptorSet != "" {
		set, err = source.FromDescriptorSet(cfg.descriptorSet)
	} else {
		set, err = source.FromFiles(ctx, cfg.Default.ProtoPath, cfg.protoFiles)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load file descriptors")
	}
	logger.Printf("loaded %d files, %d to generate", len(set.Files), len(set.ToGenerate))

	files, err := gen.Generate(set.Files, set.ToGenerate, gen.Options{NoExport: cfg.Default.NoExport})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ui.Info("no services found, nothing to generate")
		return nil
	}

	for _, f := range files {
		name := filepath.Join(cfg.Default.OutDir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create the output directory for %s", name)
		}
		if err := os.WriteFile(name, []byte(f.Content), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", name)
		}
		ui.Info(name)
	}
	return nil
}
