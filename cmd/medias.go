package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistiakit/filter"
	"github.com/s0up4200/wistiakit/wistia"
)

var (
	mediaListFlags listFlags
	projectID      string
)

// mediasCmd lists medias
var mediasCmd = &cobra.Command{
	Use:   "medias",
	Short: "List medias in your Wistia account",
	Long: `List one page of medias, optionally scoped to a project, e.g.

  wistiakit medias --project abc123 --filter 'isVideo() and not hasSection()'`,
	Args: cobra.NoArgs,
	RunE: runMedias,
}

// mediaCmd shows one or more medias with their assets
var mediaCmd = &cobra.Command{
	Use:   "media <hashed-id>...",
	Short: "Show medias with their thumbnail and assets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMedia,
}

func init() {
	mediaListFlags.register(mediasCmd)
	mediasCmd.Flags().StringVar(&projectID, "project", "", "only list medias of the project with this hashed id")

	rootCmd.AddCommand(mediasCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMedias(cmd *cobra.Command, args []string) error {
	opts, err := mediaListFlags.options(cmd)
	if err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var medias []wistia.Media
	if projectID != "" {
		logger.Info().Str("project", projectID).Int("page", opts.Page).Msg("Listing project medias")
		medias, err = client.ListProjectMedias(ctx, projectID, opts)
	} else {
		logger.Info().Int("page", opts.Page).Msg("Listing medias")
		medias, err = client.ListMedias(ctx, opts)
	}
	if err != nil && !errors.Is(err, wistia.ErrEmptyResultSet) {
		return err
	}
	if medias == nil {
		medias = []wistia.Media{}
	}

	if f != nil {
		medias, err = filter.Select(ctx, filters.Evaluator(), f, medias)
		if err != nil {
			return err
		}
		logger.Debug().Str("filter", f.Expression()).Int("matches", len(medias)).Msg("Applied filter")
	}

	return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, medias, func() string {
		return formatter.FormatMediaList(medias, formatOptions())
	})
}

func runMedia(cmd *cobra.Command, args []string) error {
	medias, err := fetchAll(cmd.Context(), args, client.ShowMedia)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, single(medias), func() string {
		var sb strings.Builder
		for _, m := range medias {
			sb.WriteString(formatter.FormatMedia(m, formatOptions()))
		}
		return sb.String()
	})
}
