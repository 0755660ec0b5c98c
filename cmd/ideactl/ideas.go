package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/UkralStul/video-ideas-service/internal/client"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved ideas for --user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		ideas, err := api.ListIdeas(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("list ideas: %w", err)
		}
		return printIdeas(ideas)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idea, err := api.GetIdea(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get idea: %w", err)
		}
		return printIdea(idea)
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <id>...",
	Short: "Like one or more ideas and print the updated list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(cmd.Context(), args, func(ctx context.Context, view *client.Optimistic[string, *domain.Idea], id string) error {
			_, err := view.Update(ctx, id,
				func(i *domain.Idea) *domain.Idea {
					liked := *i
					liked.Likes++
					return &liked
				},
				func(ctx context.Context) (*domain.Idea, error) { return api.LikeIdea(ctx, id) },
			)
			return err
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more ideas and print what is left",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reconcile(cmd.Context(), args, func(ctx context.Context, view *client.Optimistic[string, *domain.Idea], id string) error {
			return view.Remove(ctx, id, func(ctx context.Context) error { return api.DeleteIdea(ctx, id) })
		})
	},
}

// reconcile loads the user's ideas, applies op to each id against that local
// view and prints the result. Failed ids keep their last confirmed state.
func reconcile(ctx context.Context, ids []string, op func(context.Context, *client.Optimistic[string, *domain.Idea], string) error) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	ideas, err := api.ListIdeas(ctx, user)
	if err != nil {
		return fmt.Errorf("list ideas: %w", err)
	}

	view := client.NewOptimistic(func(i *domain.Idea) string { return i.ID }, ideas)
	var errs []error
	for _, id := range ids {
		if err := op(ctx, view, id); err != nil {
			if errors.Is(err, client.ErrUnknownKey) {
				err = fmt.Errorf("idea %s is not in %s's list", id, user)
			}
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}

	if err := printIdeas(view.Items()); err != nil {
		return err
	}
	return errors.Join(errs...)
}

var (
	updateTitle       string
	updateDescription string
	updateCategory    string
	updateStatus      string
	updateTags        []string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an idea",
	Long: `Update sends only the flags that were given.

Example:
  ideactl update 3f1c... --status PUBLISHED
  ideactl update 3f1c... --title "Better name" --tags saas,b2b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in service.UpdateInput
		flags := cmd.Flags()
		if flags.Changed("title") {
			in.Title = &updateTitle
		}
		if flags.Changed("description") {
			in.Description = &updateDescription
		}
		if flags.Changed("category") {
			in.Category = &updateCategory
		}
		if flags.Changed("tags") {
			in.Tags = updateTags
		}
		if flags.Changed("status") {
			status := domain.Status(updateStatus)
			in.Status = &status
		}
		if in.Title == nil && in.Description == nil && in.Category == nil && in.Tags == nil && in.Status == nil {
			return fmt.Errorf("nothing to update; pass at least one field flag")
		}

		idea, err := api.UpdateIdea(cmd.Context(), args[0], in)
		if err != nil {
			return fmt.Errorf("update idea: %w", err)
		}
		return printIdea(idea)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title (1-255 characters)")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "DRAFT, PUBLISHED or ARCHIVED")
	updateCmd.Flags().StringSliceVar(&updateTags, "tags", nil, "replace tags (comma separated)")
}
