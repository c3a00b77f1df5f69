package cli

import (
	"github.com/spf13/cobra"

	"release-notes-drafter/internal/report"
)

func (a *app) releasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Inspect published releases",
	}

	cmd.AddCommand(a.releasesListCmd())
	cmd.AddCommand(a.releasesShowCmd())

	return cmd
}

func (a *app) releasesListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published releases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			d, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			entries, err := d.Releases(cmd.Context())
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), format, entries, func() (string, error) {
				return report.RenderReleaseList(entries), nil
			})
		},
	}

	outputFlag(cmd, &output)
	return cmd
}

func (a *app) releasesShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a published release",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			d, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			entry, err := d.Release(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), format, entry, func() (string, error) {
				return report.RenderMarkdown(report.NotesFromEntry(entry))
			})
		},
	}

	outputFlag(cmd, &output)
	return cmd
}
