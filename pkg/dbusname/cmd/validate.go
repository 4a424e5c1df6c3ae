package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telekom/dbusname/pkg/dbusname/output"
	"github.com/telekom/dbusname/pkg/metrics"
	"github.com/telekom/dbusname/pkg/naming"
)

// ErrInvalidNames is returned by validate when at least one name was rejected.
var ErrInvalidNames = errors.New("invalid names found")

const maxLineLength = 1024 * 1024

func NewValidateCommand() *cobra.Command {
	var (
		file        string
		noUnique    bool
		noWellKnown bool
	)

	cmd := &cobra.Command{
		Use:   "validate <kind> [names...]",
		Short: "Check names against a D-Bus name grammar",
		Long: `Check names against one of the D-Bus name grammars.

Kinds: bus, member, interface, error, path.
Names are taken from the arguments and from --file, one per line. Blank lines
and lines starting with '#' are skipped; "-" reads from stdin.`,
		Example: `  dbusname validate bus org.freedesktop.DBus :1.42
  dbusname validate path /org/example/Service
  busctl list --no-legend | cut -d' ' -f1 | dbusname validate bus -f -`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			kinds := make([]string, 0, len(naming.Kinds()))
			for _, k := range naming.Kinds() {
				kinds = append(kinds, k.Short())
			}
			return kinds, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			kind, err := naming.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind != naming.KindBus && (noUnique || noWellKnown) {
				return errors.New("--no-unique and --no-well-known apply to bus names only")
			}

			names := append([]string(nil), args[1:]...)
			if file != "" {
				fromFile, err := readNames(file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				return errors.New("no names given; pass them as arguments or with --file")
			}
			cmd.SilenceUsage = true

			cfg := rt.config()
			allowUnique := cfg.AllowUniqueOrDefault() && !noUnique
			allowWellKnown := cfg.AllowWellKnownOrDefault() && !noWellKnown

			return rt.flushMetrics(runValidate(rt, kind, names, allowUnique, allowWellKnown))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read names from a file, one per line (- for stdin)")
	cmd.Flags().BoolVar(&noUnique, "no-unique", false, "Reject unique bus names (starting with ':')")
	cmd.Flags().BoolVar(&noWellKnown, "no-well-known", false, "Reject well-known bus names")

	return cmd
}

func runValidate(rt *runtimeState, kind naming.Kind, names []string, allowUnique, allowWellKnown bool) error {
	log := rt.Logger()
	results := make([]output.NameResult, 0, len(names))
	invalid := 0

	for _, name := range names {
		var err error
		if kind == naming.KindBus {
			err = naming.ValidateBusNameFlags(name, allowUnique, allowWellKnown)
		} else {
			err = naming.Validate(kind, name)
		}
		metrics.ObserveValidation(kind, err)
		if err != nil {
			invalid++
			log.Debugw("Rejected name", "kind", kind.Short(), "name", name, "error", err)
		}
		results = append(results, output.NewNameResult(kind, name, err))
	}

	log.Infow("Validation finished", "kind", kind.Short(), "total", len(names), "invalid", invalid)

	if err := rt.write(results, func(w io.Writer) { output.WriteNameTable(w, results) }); err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d rejected", ErrInvalidNames, invalid, len(names))
	}
	return nil
}

// readNames returns the non-blank, non-comment lines of path, or of stdin when
// path is "-". Surrounding whitespace is trimmed.
func readNames(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open names file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var names []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names from %s: %w", path, err)
	}
	return names, nil
}
