package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"release-notes-drafter/internal"
	"release-notes-drafter/internal/releases"
	"release-notes-drafter/internal/report"
)

// draftOutput is one drafted repository in JSON/YAML output
type draftOutput struct {
	Repo    string                   `json:"repo" yaml:"repo"`
	Base    string                   `json:"base" yaml:"base"`
	Head    string                   `json:"head" yaml:"head"`
	Notes   *internal.GenerateResult `json:"notes" yaml:"notes"`
	Release *releases.Entry          `json:"release,omitempty" yaml:"release,omitempty"`
}

func (a *app) draftCmd() *cobra.Command {
	var (
		rangeArgs   RangeArgs
		ignoreNoise bool
		publish     bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Draft release notes for one or more repositories",
		Long: `Draft release notes for one or more repositories.

Each --repo is compared over the requested range, the most relevant patches are
selected under RND_SELECTION_MAX_FILES / RND_SELECTION_MAX_PATCH_CHARS and the
configured model drafts a title with changes, impact and risks.`,
		Example: `  rnd draft --repo owner/repo --days 14
  rnd draft --repo org/api --repo org/web --base v1.0.0 --head v1.1.0 --ignore-noise
  rnd draft --repo https://github.com/org/repo/compare/v1.0.0...v1.1.0 --publish -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeArgs.normalize(cmd)
			if err := rangeArgs.validate("draft"); err != nil {
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

			results, err := d.DraftAll(cmd.Context(), rangeArgs.requests(), ignoreNoise)
			if err != nil {
				return err
			}

			now := time.Now()
			outputs := make([]draftOutput, 0, len(results))
			notes := make([]report.Notes, 0, len(results))

			for _, result := range results {
				out := draftOutput{Notes: result.Notes}
				n := report.NotesFromDraft(result.Notes.Draft)

				entry := internal.EntryFromDraft(result, now)
				out.Repo, out.Base, out.Head = entry.Repo, entry.Base, entry.Head
				n.Repo, n.Base, n.Head, n.DateRange = entry.Repo, entry.Base, entry.Head, entry.DateRange
				n.RepoURL = result.Comparison.RepoURL
				n.SelectedFiles = result.Notes.SelectedFiles
				n.DroppedCount = result.Notes.DroppedCount
				n.ModelID = d.ModelID()
				n.GeneratedAt = now

				if publish {
					published, err := d.PublishDraft(cmd.Context(), result)
					if err != nil {
						return fmt.Errorf("%s: %w", entry.Repo, err)
					}
					out.Release = &published
					n.ID = published.ID
					n.CreatedAt = published.CreatedAt
					fmt.Fprintf(cmd.ErrOrStderr(), "Published %s as release %s\n", entry.Repo, published.ID)
				}

				outputs = append(outputs, out)
				notes = append(notes, n)
			}

			return report.Write(cmd.OutOrStdout(), format, outputs, func() (string, error) {
				return report.RenderMarkdown(notes...)
			})
		},
	}

	rangeArgs.bind(cmd)
	cmd.Flags().BoolVar(&ignoreNoise, "ignore-noise", false, "Skip docs, tests and lockfiles when selecting patches")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish each draft to the release store")
	outputFlag(cmd, &output)

	return cmd
}
