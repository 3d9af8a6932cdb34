package main

import (
	"fmt"
	"os"
	"time"

	"fieldnotes/internal/client"
	"fieldnotes/pkg/gallery"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post with compressed, ordered images",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		title, _ := flags.GetString("title")
		content, _ := flags.GetString("content")
		contentFile, _ := flags.GetString("content-file")
		imagePaths, _ := flags.GetStringArray("image")
		publishDate, _ := flags.GetString("publish-date")
		quality, _ := flags.GetInt("quality")
		targetKB, _ := flags.GetInt("target-kb")
		watermark, _ := flags.GetString("watermark")

		if contentFile != "" {
			raw, err := os.ReadFile(contentFile)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			content = string(raw)
		}

		files, err := loadImageFiles(imagePaths)
		if err != nil {
			return err
		}
		files = compressBatch(files, compressOptions(quality, targetKB, watermark))

		collection := gallery.NewCollection(nil)
		collection.Add(files)

		apiClient := newClient()
		images, err := gallery.Reconcile(cmd.Context(), collection.Records(), apiClient)
		if err != nil {
			return err
		}

		payload := client.PostPayload{
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
		}

		post, err := apiClient.CreatePost(cmd.Context(), payload)
		if err != nil {
			return err
		}

		fmt.Printf("Created post %s (%d images)\n", post.ID, len(post.Images))
		return nil
	},
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q, use RFC3339 or YYYY-MM-DD", value)
}

func init() {
	createCmd.Flags().String("title", "", "post title")
	createCmd.Flags().String("content", "", "post content (HTML)")
	createCmd.Flags().String("content-file", "", "read post content from a file")
	createCmd.Flags().StringArray("image", nil, "image file to attach, repeatable, order of flags is display order")
	createCmd.Flags().String("publish-date", "", "publish date (RFC3339 or YYYY-MM-DD, default now)")
	createCmd.Flags().Int("quality", 0, "JPEG starting quality, 1-100")
	createCmd.Flags().Int("target-kb", 0, "target size per image in KB")
	createCmd.Flags().String("watermark", "", "watermark text stamped on each image")
	rootCmd.AddCommand(createCmd)
}
