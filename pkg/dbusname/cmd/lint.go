package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/telekom/dbusname/pkg/dbusname/output"
	"github.com/telekom/dbusname/pkg/manifest"
	"github.com/telekom/dbusname/pkg/metrics"
	"github.com/telekom/dbusname/pkg/naming"
	"github.com/telekom/dbusname/pkg/utils"
)

// ErrInvalidManifests is returned by lint when a manifest has problems or
// cannot be loaded.
var ErrInvalidManifests = errors.New("invalid manifests found")

type lintOptions struct {
	validate    manifest.ValidateOptions
	concurrency int
	root        string
}

func NewLintCommand() *cobra.Command {
	var (
		skip        []string
		noSkip      bool
		concurrency int
		root        string
	)

	cmd := &cobra.Command{
		Use:   "lint <manifest files...>",
		Short: "Check every name declared by service manifests or introspection XML",
		Long: `Check every name declared by service manifests.

A file is read as D-Bus introspection XML when it ends in .xml or starts
with '<', otherwise as a YAML manifest. Files are checked concurrently and
reported in the order given.`,
		Example: `  dbusname lint service.yaml
  busctl introspect --xml-interface org.example.Service /org/example > svc.xml
  dbusname lint --root /org/example svc.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := utils.ValidatePatterns(skip); err != nil {
				return fmt.Errorf("invalid --skip-interface pattern: %w", err)
			}
			if err := naming.ValidateObjectPath(root); err != nil {
				return fmt.Errorf("invalid --root: %w", err)
			}
			cmd.SilenceUsage = true

			cfg := rt.config()
			opts := lintOptions{concurrency: concurrency, root: root}
			if !noSkip {
				opts.validate.SkipInterfaces = append(opts.validate.SkipInterfaces, cfg.Lint.SkipInterfaces...)
			}
			opts.validate.SkipInterfaces = append(opts.validate.SkipInterfaces, skip...)
			if opts.concurrency <= 0 {
				opts.concurrency = cfg.LintConcurrencyOrDefault()
			}

			return rt.flushMetrics(runLint(cmd.Context(), rt, args, opts))
		},
	}

	cmd.Flags().StringArrayVar(&skip, "skip-interface", nil, "Glob pattern of interfaces to skip (repeatable)")
	cmd.Flags().BoolVar(&noSkip, "no-default-skips", false, "Ignore lint.skip-interfaces from the config file")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of files checked in parallel (default from config)")
	cmd.Flags().StringVar(&root, "root", "/", "Object path of the root node in introspection XML")

	return cmd
}

func runLint(ctx context.Context, rt *runtimeState, files []string, opts lintOptions) error {
	log := rt.Logger()
	reports := make([]output.LintReport, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, loadErr := manifest.LoadWithRoot(file, opts.root)
			var errs field.ErrorList
			if loadErr == nil {
				errs = m.Validate(opts.validate)
			}
			metrics.ObserveManifest(len(errs), loadErr)
			log.Debugw("Linted manifest", "file", file, "issues", len(errs), "error", loadErr)
			reports[i] = output.NewLintReport(file, m, errs, loadErr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	bad := 0
	for _, r := range reports {
		if !r.Valid {
			bad++
		}
	}
	log.Infow("Lint finished", "files", len(files), "failed", bad)

	if err := rt.write(reports, func(w io.Writer) { output.WriteLintTable(w, reports) }); err != nil {
		return err
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrInvalidManifests, bad, len(files))
	}
	return nil
}
