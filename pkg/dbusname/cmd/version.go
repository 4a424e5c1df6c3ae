package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telekom/dbusname/pkg/dbusname/output"
	"github.com/telekom/dbusname/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show dbusname version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetBuildInfo()

			// Get runtime if available (for custom writer), but don't fail if missing
			rt, _ := getRuntime(cmd)
			writer := cmd.OutOrStdout()
			format := output.FormatTable
			if rt != nil {
				writer = rt.Writer()
				f, err := rt.OutputFormat()
				if err != nil {
					return err
				}
				format = f
			}

			switch format {
			case output.FormatJSON, output.FormatYAML:
				return output.WriteObject(writer, format, info)
			case output.FormatTemplate:
				return output.WriteTemplate(writer, rt.template, info)
			default:
				_, err := fmt.Fprintln(writer, info.String())
				return err
			}
		},
	}
}
