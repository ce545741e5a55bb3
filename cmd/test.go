package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wistiakit/wistia"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Wistia",
	Long:  `Verify the configured API password and display a first page of projects and medias.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	fmt.Fprintf(out, "Testing connection to Wistia at %s...\n", cfg.Wistia.BaseURL)

	if err := client.TestConnection(ctx); err != nil {
		if errors.Is(err, wistia.ErrInvalidAPIKey) {
			return fmt.Errorf("connection failed, check wistia.api_key: %w", err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	// Fetch one page of each resource in parallel
	opts := cfg.ListOptions()
	projectsCh := client.ListAsync(ctx, wistia.ResourceProjects, opts)
	mediasCh := client.ListAsync(ctx, wistia.ResourceMedias, opts)

	fmt.Fprintf(out, "\nWistia Statistics (first page, %d per page):\n", opts.PerPage)
	for _, r := range []struct {
		label string
		ch    <-chan wistia.Result[[]wistia.DataItem]
	}{
		{"Projects", projectsCh},
		{"Medias", mediasCh},
	} {
		res := <-r.ch
		items, err := res.Unwrap()
		switch {
		case errors.Is(err, wistia.ErrEmptyResultSet):
			fmt.Fprintf(out, "- %s: 0\n", r.label)
		case err != nil:
			fmt.Fprintf(out, "- %s: error: %v\n", r.label, err)
		default:
			fmt.Fprintf(out, "- %s: %d\n", r.label, len(items))
		}
	}

	fmt.Fprintf(out, "\nDebug level: %s\n", client.DebugLevel())
	fmt.Fprintf(out, "Strict status: %s\n", boolToStatus(cfg.Wistia.StrictStatus))
	if presets := filters.Presets(); len(presets) > 0 {
		fmt.Fprintf(out, "\nFilter presets:\n")
		for _, p := range presets {
			fmt.Fprintf(out, "  • %s: %s\n", p.Name, p.Description)
		}
	}

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}
