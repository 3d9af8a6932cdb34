package main

import (
	"fmt"
	"strings"

	"fieldnotes/pkg/pagination"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		result, err := newClient().ListPosts(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}

		engine := pagination.NewManual(result.Posts, result.Page, result.PageSize, int(result.Total))
		if engine.State() == pagination.StateEmpty {
			fmt.Println("No posts.")
			return nil
		}

		for _, post := range engine.Rows() {
			fmt.Printf("%s  %s  %s  (%d images)\n",
				post.ID, post.PublishDate.Format("2006-01-02"), post.Title, len(post.Images))
		}

		fmt.Printf("\nPage %s of %d (%d posts)\n",
			renderPager(engine.Window(), engine.CurrentPage()), engine.TotalPages(), result.Total)
		return nil
	},
}

func renderPager(window []int, current int) string {
	parts := make([]string, 0, len(window))
	for _, p := range window {
		switch {
		case p == pagination.Ellipsis:
			parts = append(parts, "…")
		case p == current:
			parts = append(parts, fmt.Sprintf("[%d]", p))
		default:
			parts = append(parts, fmt.Sprintf("%d", p))
		}
	}
	return strings.Join(parts, " ")
}

var showCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show one post with its images in display order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := newClient().GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Title:   %s\n", post.Title)
		fmt.Printf("Publish: %s\n", post.PublishDate.Format("2006-01-02"))
		fmt.Printf("Content: %s\n", post.Content)
		fmt.Println("Images:")
		for _, img := range post.Images {
			fmt.Printf("  %d. %s  %s  (%s, %d bytes)\n", img.Order, img.ID, img.Filename, img.MimeType, img.Size)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post and its stored images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().DeletePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	listCmd.Flags().Int("page", 1, "page number")
	listCmd.Flags().Int("page-size", 12, "posts per page")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}
