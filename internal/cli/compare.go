package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"release-notes-drafter/internal/git/types"
	"release-notes-drafter/internal/report"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		rangeArgs RangeArgs
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Show the commits and file stats of a repository range",
		Example: `  rnd compare --repo owner/repo --days 14
  rnd compare --repo https://github.com/org/repo/compare/v1.0.0...v1.1.0 -o json
  rnd compare --repo https://gitlab.com/group/project --head v2.0.0 --previous-tag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeArgs.normalize(cmd)
			if err := rangeArgs.validate("compare"); err != nil {
				return err
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			d, err := a.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			comparisons := make([]*types.Comparison, 0, len(rangeArgs.Repos))
			for _, req := range rangeArgs.requests() {
				comparison, err := d.Compare(cmd.Context(), req)
				if err != nil {
					return fmt.Errorf("%s: %w", req.Repo, err)
				}
				comparisons = append(comparisons, comparison)
			}

			return report.Write(cmd.OutOrStdout(), format, comparisons, func() (string, error) {
				return report.FormatChangelog(comparisons), nil
			})
		},
	}

	rangeArgs.bind(cmd)
	outputFlag(cmd, &output)

	return cmd
}
