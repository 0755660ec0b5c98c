package main

import (
	"fmt"

	"github.com/UkralStul/video-ideas-service/internal/client"
	"github.com/UkralStul/video-ideas-service/internal/ideablock"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/spf13/cobra"
)

var analyzeSave bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <youtube-url>",
	Short: "Extract business ideas from a video",
	Long: `Analyze sends the video to the server, prints the ideas found in the
transcript and, with --save, stores them for --user.

Example:
  ideactl analyze https://youtu.be/dQw4w9WgXcQ
  ideactl analyze --save --user alice https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save every parsed idea")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var user string
	if analyzeSave {
		var err error
		if user, err = requireUser(); err != nil {
			return err
		}
	}

	res, err := api.Analyze(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	blocks := ideablock.Parse(res.Analysis)

	if jsonOutput {
		if err := printJSON(map[string]any{"video": res, "ideas": blocks}); err != nil {
			return err
		}
	} else {
		printAnalysis(res, blocks)
	}

	if !analyzeSave {
		return nil
	}
	if len(blocks) == 0 {
		fmt.Println("No ideas to save.")
		return nil
	}

	tags := []string{"youtube"}
	if res.ChannelTitle != "" {
		tags = []string{res.ChannelTitle, "youtube"}
	}
	inputs := make([]service.CreateInput, len(blocks))
	for i, b := range blocks {
		inputs[i] = b.ToCreateInput(user, tags)
	}

	summary := client.SaveIdeas(cmd.Context(), api, inputs, client.SaveBatchPause)
	for _, f := range summary.Failures {
		fmt.Printf("  failed to save %q: %v\n", f.Title, f.Err)
	}
	fmt.Printf("Saved %d of %d ideas.\n", summary.Succeeded(), len(inputs))
	if summary.Failed() > 0 {
		return fmt.Errorf("%d ideas could not be saved", summary.Failed())
	}
	return nil
}
