package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistiakit/filter"
	"github.com/s0up4200/wistiakit/wistia"
)

var projectListFlags listFlags

// projectsCmd lists projects
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects in your Wistia account",
	Long: `List one page of projects. Use --filter or --preset to narrow the page, e.g.

  wistiakit projects --filter 'MediaCount > 10 and Public'`,
	Args: cobra.NoArgs,
	RunE: runProjects,
}

// projectCmd shows one or more projects with their medias
var projectCmd = &cobra.Command{
	Use:   "project <hashed-id>...",
	Short: "Show projects and their medias grouped by section",
	Long: `Show one or more projects by hashed id. Medias are grouped by section;
a filter applies to the medias of each project.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProject,
}

func init() {
	projectListFlags.register(projectsCmd)

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	opts, err := projectListFlags.options(cmd)
	if err != nil {
		return err
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	logger.Info().
		Int("page", opts.Page).
		Str("sort_by", string(opts.SortBy)).
		Str("sort_direction", opts.SortDirection.String()).
		Msg("Listing projects")

	ctx := cmd.Context()
	projects, err := client.ListProjects(ctx, opts)
	if err != nil && !errors.Is(err, wistia.ErrEmptyResultSet) {
		return err
	}
	if projects == nil {
		projects = []wistia.Project{}
	}

	if f != nil {
		projects, err = filter.Select(ctx, filters.Evaluator(), f, projects)
		if err != nil {
			return err
		}
		logger.Debug().Str("filter", f.Expression()).Int("matches", len(projects)).Msg("Applied filter")
	}

	return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, projects, func() string {
		return formatter.FormatProjectList(projects, formatOptions())
	})
}

func runProject(cmd *cobra.Command, args []string) error {
	f, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	projects, err := fetchAll(ctx, args, client.ShowProject)
	if err != nil {
		return err
	}

	if f != nil {
		for i := range projects {
			if projects[i].Medias == nil {
				continue
			}
			medias, err := filter.Select(ctx, filters.Evaluator(), f, projects[i].Medias)
			if err != nil {
				return err
			}
			projects[i].Medias = medias
		}
	}

	return writeOutput(cmd.OutOrStdout(), cfg.Output.Format, single(projects), func() string {
		var sb strings.Builder
		for _, p := range projects {
			sb.WriteString(formatter.FormatProject(p, formatOptions()))
		}
		return sb.String()
	})
}
