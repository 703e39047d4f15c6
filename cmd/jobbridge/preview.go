package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minjae/jobbridge/internal/ingest"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Extract a posting draft from an external URL",
	Long:  "Fetch an external job posting page, extract the title, company, location, and description, and print the draft as JSON.",
	RunE:  runPreview,
}

var (
	previewURL     string
	previewBrowser bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewURL, "url", "u", "", "URL of the posting page (required)")
	previewCmd.Flags().BoolVar(&previewBrowser, "use-browser", false, "Render the page in a headless browser when the plain fetch is too thin")

	previewCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	client := ingest.NewClient(previewBrowser)

	preview, err := client.Preview(context.Background(), previewURL)
	if err != nil {
		return fmt.Errorf("failed to extract posting preview: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(preview); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	return nil
}
