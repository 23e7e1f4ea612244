package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/djcass44/branchdiff/internal/compare"
	"github.com/djcass44/branchdiff/pkg/rdb"
	"github.com/djcass44/branchdiff/pkg/version"
	"github.com/djcass44/go-utils/logging"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUsage = errors.New("expected exactly 2 arguments: branch1 branch2")

var command = newCommand()

const (
	flagLogLevel   = "v"
	flagConfig     = "config"
	flagArch       = "arch"
	flagBaseURL    = "base-url"
	flagOutputDir  = "output-dir"
	flagFormat     = "format"
	flagComparator = "comparator"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branchdiff branch1 branch2",
		Short: "compare the binary packages of two branches",
		Long: `Compares the binary packages of two branches and writes
comparison_<branch1>_<branch2>.json listing, per architecture,
the packages found only in the first branch, only in the second
branch, and those with a greater version-release in the first branch.`,
		Example: `  branchdiff sisyphus p10
  branchdiff --arch x86_64 --format yaml sisyphus p10`,
		SilenceUsage: true,
		Args:         branchArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetInt(flagLogLevel)

			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.Level(logLevel * -1))

			_, ctx := logging.NewZap(cmd.Context(), zc)
			cmd.SetContext(ctx)
		},
		RunE: run,
	}

	cmd.PersistentFlags().Int(flagLogLevel, 0, "log level. Higher is more")
	cmd.Flags().StringP(flagConfig, "c", "", "path to a configuration file")
	cmd.Flags().String(flagArch, "", "only compare packages built for this architecture")
	cmd.Flags().String(flagBaseURL, rdb.DefaultBaseURL, "base url of the rdb api")
	cmd.Flags().StringP(flagOutputDir, "o", ".", "directory to write the comparison to")
	cmd.Flags().String(flagFormat, "json", "output format: json or yaml")
	cmd.Flags().String(flagComparator, version.ComparatorDotted, "version-release ordering: dotted, rpm or deb")

	_ = cmd.MarkFlagFilename(flagConfig, ".yaml", ".yml", ".json")
	_ = cmd.MarkFlagDirname(flagOutputDir)

	return cmd
}

// branchArgs prints the usage to stdout when
// the wrong number of branches is given.
func branchArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return nil
	}
	cmd.SetOut(cmd.OutOrStdout())
	_ = cmd.Usage()
	return ErrUsage
}

func run(cmd *cobra.Command, args []string) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	spec, err := resolveSpec(cmd)
	if err != nil {
		return err
	}
	cmp, err := version.ParseComparator(spec.Comparator)
	if err != nil {
		return err
	}

	runner := compare.NewRunner(rdb.NewClient(spec.BaseURL, nil))
	path, err := runner.Run(cmd.Context(), compare.Options{
		Branch1:    args[0],
		Branch2:    args[1],
		Arch:       spec.Arch,
		OutputDir:  spec.OutputDir,
		Format:     spec.Format,
		Comparator: cmp,
	})
	if err != nil {
		return fmt.Errorf("comparing %s and %s: %w", args[0], args[1], err)
	}
	log.Info("comparison complete", "path", path)
	return nil
}

func Execute(version string) {
	command.Version = version
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
