package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/studynotes/internal/search"
)

var (
	searchContext int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search FILE QUERY",
	Short: "Search a document",
	Long: `Finds every case-insensitive occurrence of QUERY in FILE and prints it
with its line, page and surrounding context. QUERY may combine terms with
AND or with OR.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchContext, "context", "c", -1, "characters of context on each side (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	res, err := svc.SearchBoolean(doc, args[1], searchContext)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	printSearch(cmd, res)
	return nil
}

func printSearch(cmd *cobra.Command, res search.BooleanResult) {
	if res.Total() == 0 {
		cmd.Println("No matches found.")
		return
	}

	for _, r := range res.Results {
		if len(res.Results) > 1 {
			cmd.Println(styled(titleStyle, fmt.Sprintf("%s: %d matches", r.Query, r.Count)))
		} else {
			cmd.Println(styled(titleStyle, fmt.Sprintf("%d matches", r.Count)))
		}
		for i, m := range r.Matches {
			loc := fmt.Sprintf("line %d", m.LineNumber)
			if m.PageNumber != nil {
				loc = fmt.Sprintf("page %d, %s", *m.PageNumber, loc)
			}
			cmd.Printf("  [%d] %s\n", i+1, styled(metaStyle, loc))
			cmd.Printf("      %s\n", highlight(m.Plain, res.Terms(r)))
		}
		cmd.Println()
	}
}
