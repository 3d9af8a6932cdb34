package main

import (
	"fmt"
	"os"
	"strings"

	"fieldnotes/internal/client"
	"fieldnotes/pkg/gallery"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <post-id>",
	Short: "Edit a post: title, content and its image set",
	Long: `Update fetches the post, applies your changes to its image
collection locally and submits the result. New images are appended after
the existing ones; use --move to rearrange and --remove to drop images.
Fields you do not pass keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		title, _ := flags.GetString("title")
		content, _ := flags.GetString("content")
		contentFile, _ := flags.GetString("content-file")
		addPaths, _ := flags.GetStringArray("add-image")
		removeIDs, _ := flags.GetStringArray("remove")
		moves, _ := flags.GetStringArray("move")
		publishDate, _ := flags.GetString("publish-date")
		quality, _ := flags.GetInt("quality")
		targetKB, _ := flags.GetInt("target-kb")
		watermark, _ := flags.GetString("watermark")

		apiClient := newClient()

		post, err := apiClient.GetPost(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if contentFile != "" {
			raw, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			content = string(raw)
		}
		if title == "" {
			title = post.Title
		}
		if content == "" {
			content = post.Content
		}

		collection := gallery.NewCollection(existingRecords(post.Images))

		files, err := loadImageFiles(addPaths)
		if err != nil {
			return err
		}
		collection.Add(compressBatch(files, compressOptions(quality, targetKB, watermark)))

		for _, id := range removeIDs {
			collection.Remove(id)
		}

		for _, move := range moves {
			fromID, toID, ok := strings.Cut(move, ":")
			if !ok {
				return fmt.Errorf("bad --move %q, expected fromID:toID", move)
			}
			collection.Reorder(fromID, toID)
		}

		images, err := gallery.Reconcile(cmd.Context(), collection.Records(), apiClient)
		if err != nil {
			return err
		}

		payload := client.PostPayload{
			ID:      post.ID,
			Title:   title,
			Content: content,
			Images:  images,
		}
		if publishDate != "" {
			parsed, err := parseDate(publishDate)
			if err != nil {
				return err
			}
			payload.PublishDate = &parsed
		} else {
			payload.PublishDate = &post.PublishDate
		}

		updated, err := apiClient.UpdatePost(cmd.Context(), payload)
		if err != nil {
			return err
		}

		fmt.Printf("Updated post %s (%d images)\n", updated.ID, len(updated.Images))
		return nil
	},
}

func init() {
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("content", "", "new content (HTML)")
	updateCmd.Flags().String("content-file", "", "read new content from a file")
	updateCmd.Flags().StringArray("add-image", nil, "image file to append, repeatable")
	updateCmd.Flags().StringArray("remove", nil, "image id to remove, repeatable")
	updateCmd.Flags().StringArray("move", nil, "reorder as fromID:toID, repeatable, applied in flag order")
	updateCmd.Flags().String("publish-date", "", "new publish date (RFC3339 or YYYY-MM-DD)")
	updateCmd.Flags().Int("quality", 0, "JPEG starting quality, 1-100")
	updateCmd.Flags().Int("target-kb", 0, "target size per image in KB")
	updateCmd.Flags().String("watermark", "", "watermark text stamped on new images")
	rootCmd.AddCommand(updateCmd)
}
