// The author command is the admin-side companion to the server: it logs in,
// compresses and watermarks images locally, manages the ordered image set of
// a post and submits create/update/delete calls.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fieldnotes/internal/client"

	"github.com/spf13/cobra"
)

const sessionCookieName = "fieldnotes_session"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "author",
	Short: "Author posts on a fieldnotes server",
	Long: `Author manages posts on a fieldnotes server from the command line:
log in once, then create, update and delete posts. Images are compressed
and watermarked locally before upload, and their display order is yours
to arrange.`,
	SilenceUsage: true,
}

func newClient() *client.Client {
	return client.New(serverURL, sessionCookieName, sessionFilePath())
}

func sessionFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fieldnotes", "session")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the fieldnotes server")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
