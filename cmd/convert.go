package cmd

import (
	"context"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"repodoc/pkg/combine"
	"repodoc/pkg/config"
	"repodoc/pkg/errors"
	"repodoc/pkg/filter"
	"repodoc/pkg/logging"
	"repodoc/pkg/render"
	"repodoc/pkg/source"
	"repodoc/pkg/version"
)

// flagKeys maps convert flags to configuration keys.
var flagKeys = map[string]string{
	"input":             "input_path",
	"output":            "output_path",
	"format":            "output_format",
	"chunks":            "num_chunks",
	"profile":           "project_type",
	"profiles-dir":      "profiles_dir",
	"tree-path-type":    "tree_path_type",
	"tree-display-root": "tree_display_root",
	"max-file-size-kb":  "max_file_size_kb",
	"skip-binary":       "skip_binary",
	"parallel":          "parallel",
	"max-workers":       "max_workers",
	"git-depth":         "git_depth",
	"temp-dir":          "temp_dir",
	"debug":             "debug",
}

func newConvertCmd(logger *zap.Logger) *cobra.Command {
	c := &cobra.Command{
		Use:   "convert",
		Short: "Convert a source tree into documents",
		Long: `Convert walks the input, filters files through the selected profiles and
writes the structure map plus one section per file into the output documents.
Flags override environment variables, which override the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, logger)
		},
	}
	addConvertFlags(c)
	return c
}

func addConvertFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("config", "", "YAML configuration file")
	f.String("env-file", "", "dotenv file to load (default .env when present)")
	f.StringP("input", "i", "", "input directory, .zip archive or git URL (default \"inputs\")")
	f.StringP("output", "o", "", "output base path (default \"outputs/output\")")
	f.StringP("format", "f", "", "output format: pdf, txt or docx (default \"pdf\")")
	f.IntP("chunks", "n", 1, "number of output documents")
	f.StringP("profile", "p", "", "comma-separated profile names (default \"default\")")
	f.String("profiles-dir", "", "directory holding profile pattern files (default \"config\")")
	f.String("tree-path-type", "", "structure map naming: relative or absolute")
	f.String("tree-display-root", "", "prefix shown in place of the root in absolute mode")
	f.Int("max-file-size-kb", 0, "skip files larger than this; 0 disables the limit")
	f.Bool("skip-binary", true, "skip files that look binary")
	f.Bool("parallel", false, "process chunks concurrently")
	f.Int("max-workers", 0, "concurrent chunk workers; 0 uses the CPU count")
	f.Int("git-depth", 1, "clone depth for git sources; 0 clones full history")
	f.String("temp-dir", "", "parent directory for temporary extraction and clones")
	f.Bool("debug", false, "enable debug logging")
}

// flagOverrides returns the configuration values of flags set on the
// command line.
func flagOverrides(f *pflag.FlagSet) map[string]interface{} {
	out := map[string]interface{}{}
	f.Visit(func(fl *pflag.Flag) {
		if key, ok := flagKeys[fl.Name]; ok {
			out[key] = fl.Value.String()
		}
	})
	return out
}

// summary describes a finished conversion.
type summary struct {
	Result combine.Result
	Format render.Format
	Output string
}

func runConvert(cmd *cobra.Command, logger *zap.Logger) error {
	start := time.Now()

	cfgFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}

	logger.Info("Starting repodoc",
		zap.String("version", version.Version),
		zap.String("go", runtime.Version()))

	opts := config.LoadOptions{
		File:      cfgFile,
		EnvFile:   envFile,
		Overrides: flagOverrides(cmd.Flags()),
	}
	s, err := convert(cmd.Context(), opts, logger)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		logger.Error("Conversion aborted",
			zap.String("code", string(errors.GetErrorCode(err))),
			zap.Float64("elapsed_seconds", elapsed))
		return err
	}

	logger.Info("Conversion complete",
		zap.Int("processed", s.Result.Processed),
		zap.Int("skipped", s.Result.Skipped),
		zap.String("format", string(s.Format)),
		zap.String("output", s.Output),
		zap.Strings("artifacts", s.Result.Artifacts),
		zap.Float64("elapsed_seconds", elapsed))
	return nil
}

// convert runs one conversion. Every fatal setup error is returned before an
// artifact is written.
func convert(ctx context.Context, opts config.LoadOptions, logger *zap.Logger) (summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return summary{}, err
	}
	if cfg.Debug {
		if l, err := logging.Setup(true, appName, version.Version); err == nil {
			logger = l
		}
	}
	logger.Debug("Configuration loaded", zap.Any("config", cfg))

	patterns, err := filter.OSLoader(cfg.ProfilesDir, logger).LoadPatternSet(cfg.ProjectTypes)
	if err != nil {
		return summary{}, err
	}

	in, err := source.Materialize(ctx, cfg.InputPath, source.Options{
		TempDir:  cfg.TempDir,
		GitDepth: cfg.GitDepth,
		Logger:   logger,
	})
	if err != nil {
		return summary{}, err
	}
	defer func() {
		if err := in.Cleanup(logger); err != nil {
			logger.Warn("Failed to clean up temporary files", zap.Error(err))
		}
	}()
	logger.Info("Input ready",
		zap.String("kind", string(in.Kind)),
		zap.String("source", in.Display),
		zap.String("root", in.Root))

	fsys := afero.NewOsFs()
	extra, err := filter.LoadIgnoreFile(fsys, in.Root, logger)
	if err != nil {
		return summary{}, err
	}
	if len(extra) > 0 {
		if patterns, err = patterns.WithDeny(extra); err != nil {
			return summary{}, errors.Wrapf(err, errors.ErrProfileInvalid, "invalid pattern in %s", filter.IgnoreFileName)
		}
	}

	format := cfg.Format()
	backend, err := render.New(format, fsys, cfg.OutputPath, cfg.NumChunks)
	if err != nil {
		return summary{}, err
	}

	tree := combine.TreeOptions{
		PathType:    combine.PathType(cfg.TreePathType),
		DisplayRoot: cfg.TreeDisplayRoot,
	}
	if tree.PathType == combine.PathAbsolute && tree.DisplayRoot == "" {
		tree.DisplayRoot = in.Display
	}

	run := &combine.Run{
		Root:          in.Root,
		Chunks:        cfg.NumChunks,
		Patterns:      patterns,
		Tree:          tree,
		MaxFileSizeKB: cfg.MaxFileSizeKB,
		SkipBinary:    cfg.SkipBinary,
		Parallel:      cfg.Parallel,
		MaxWorkers:    cfg.MaxWorkers,
	}
	res, err := run.Execute(ctx, fsys, backend, logger)
	if err != nil {
		return summary{Result: res, Format: format}, err
	}
	return summary{
		Result: res,
		Format: format,
		Output: render.TrimFormatExt(cfg.OutputPath, format),
	}, nil
}
