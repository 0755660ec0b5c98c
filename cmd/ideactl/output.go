package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/ideablock"
)

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printIdeas(ideas []*domain.Idea) error {
	if jsonOutput {
		return printJSON(ideas)
	}
	if len(ideas) == 0 {
		fmt.Println("No ideas found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tLIKES\tCREATED")
	for _, idea := range ideas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			idea.ID, truncate(idea.Title, 48), idea.Status, idea.Likes, idea.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printIdea(idea *domain.Idea) error {
	if jsonOutput {
		return printJSON(idea)
	}

	fmt.Printf("ID:          %s\n", idea.ID)
	fmt.Printf("Title:       %s\n", idea.Title)
	fmt.Printf("Description: %s\n", idea.Description)
	if idea.Category != nil {
		fmt.Printf("Category:    %s\n", *idea.Category)
	}
	fmt.Printf("Tags:        %s\n", strings.Join(idea.Tags, ", "))
	fmt.Printf("Status:      %s\n", idea.Status)
	fmt.Printf("Likes:       %d\n", idea.Likes)
	fmt.Printf("Created:     %s\n", idea.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", idea.UpdatedAt.Format("2006-01-02 15:04:05"))

	if len(idea.Metadata) > 0 && string(idea.Metadata) != "null" {
		var md domain.IdeaMetadata
		if err := json.Unmarshal(idea.Metadata, &md); err == nil {
			printMetadata(md)
		}
	}
	return nil
}

func printMetadata(md domain.IdeaMetadata) {
	rows := []struct{ label, value string }{
		{"MVP features", md.MVPFeatures},
		{"Monetization", md.Monetization},
		{"Implementation", md.TechnicalImplementation},
		{"Key insights", md.KeyInsights},
		{"Viability", md.ViabilityScore},
		{"Market potential", md.MarketPotential},
		{"Feasibility", md.TechnicalFeasibility},
		{"Resources", md.ResourceRequirements},
		{"Competition", md.Competition},
		{"Evidence", md.SupportingEvidence},
	}
	for _, r := range rows {
		if r.value != "" {
			fmt.Printf("  %-17s %s\n", r.label+":", r.value)
		}
	}
}

func printAnalysis(res *analysis.Result, blocks []ideablock.Block) {
	fmt.Printf("%s\n", res.VideoTitle)
	if res.ChannelTitle != "" {
		fmt.Printf("by %s, published %s\n", res.ChannelTitle, res.PublishedAt)
	}
	fmt.Println()

	if len(blocks) == 0 {
		fmt.Println("No ideas found in the analysis.")
		return
	}
	for i, b := range blocks {
		in := b.ToCreateInput("", nil)
		fmt.Printf("%d. %s\n", i+1, in.Title)
		fmt.Printf("   %s\n", in.Description)
		if b.TargetMarket != nil {
			fmt.Printf("   Target market: %s\n", *b.TargetMarket)
		}
		printMetadata(b.Metadata())
		fmt.Println()
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
