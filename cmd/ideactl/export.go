package main

import (
	"fmt"
	"os"

	"github.com/UkralStul/video-ideas-service/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportHTML bool
	exportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write --user's saved ideas as Markdown or HTML",
	Long: `Export renders every saved idea of --user, newest first.

Example:
  ideactl export --user alice > ideas.md
  ideactl export --user alice --html -o ideas.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		ideas, err := api.ListIdeas(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("list ideas: %w", err)
		}

		title := fmt.Sprintf("Saved ideas for %s", user)
		var out []byte
		if exportHTML {
			if out, err = export.HTML(title, ideas); err != nil {
				return err
			}
		} else {
			out = []byte(export.Markdown(title, ideas))
		}

		if exportOut == "" || exportOut == "-" {
			_, err = os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(exportOut, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d ideas to %s\n", len(ideas), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportHTML, "html", false, "render HTML instead of Markdown")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
}
