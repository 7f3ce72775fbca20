package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"authorship-crawler/internal/config"
	"authorship-crawler/internal/parser"
)

var pageURL string

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [file.html]",
	Short: "Extract author records from a saved article page",
	Long: `Parse runs the extraction on an article page saved to disk and prints
one JSON object per author. The next page link, if any, is logged.

Examples:
  authorcrawl parse article.html
  authorcrawl parse --url https://www.pnas.org/content/116/1/1 article.html`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&pageURL, "url", "", "URL the page was saved from, used to resolve the next page link")
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := newLogger(viper.GetBool("verbose"))

	profile, err := config.LoadProfile(viper.GetString("profile"))
	if err != nil {
		return err
	}

	html, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading page: %w", err)
	}

	page, err := parser.NewParser(profile, logger).Parse(html, pageURL)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetEscapeHTML(false)
	for _, record := range page.Records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}

	if page.NextPage != "" {
		logger.Info("next page", "url", page.NextPage)
	}

	return nil
}
