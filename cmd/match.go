package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"authorship-crawler/internal/authorship"
)

var (
	matchAuthor        string
	matchContributions string
	matchExplain       bool
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match an author name against a contributions statement",
	Long: `Match prints the roles a contributions statement attributes to an
author. With --explain every matching clause is listed with the name form
(full initials, short initials or literal name) that matched it.

Examples:
  authorcrawl match --author "Jane A. Doe" \
    --contributions "Author contributions: J.A.D. designed research; J.S. wrote the paper."`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&matchAuthor, "author", "", "author name as printed on the page")
	matchCmd.Flags().StringVar(&matchContributions, "contributions", "", "contributions statement, including its label")
	matchCmd.Flags().BoolVar(&matchExplain, "explain", false, "list matching clauses and tiers")
	cobra.CheckErr(matchCmd.MarkFlagRequired("author"))
	cobra.CheckErr(matchCmd.MarkFlagRequired("contributions"))
}

func runMatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	contributions, err := authorship.ParseContributions(matchContributions)
	if err != nil {
		return err
	}

	if matchExplain {
		sig, err := authorship.Initials(authorship.Normalize(matchAuthor))
		if err != nil {
			fmt.Fprintf(out, "initials: %v\n", err)
		} else {
			fmt.Fprintf(out, "initials: %s (short %q)\n", sig.Full, sig.Short)
		}
		for _, m := range contributions.Explain(matchAuthor) {
			fmt.Fprintf(out, "%-5s %s\n", m.Tier, m.Clause)
		}
	}

	fmt.Fprintln(out, contributions.Match(matchAuthor))
	return nil
}
