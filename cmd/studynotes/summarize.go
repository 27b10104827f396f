package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/studynotes/internal/summarize"
)

var (
	summarySentences int
	summaryJSON      bool
	keywordCount     int
	reportOut        string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Print the key sentences of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords FILE",
	Short: "List the most frequent repeated words of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywords,
}

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Print word, character, line and sentence counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Write the downloadable study notes report",
	Long: `Writes the study notes report (keywords and summary) for FILE. The
report goes to stdout unless --output names a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	summarizeCmd.Flags().IntVarP(&summarySentences, "sentences", "n", summarize.DefaultSentences, "number of sentences to keep")
	summarizeCmd.Flags().BoolVar(&summaryJSON, "json", false, "output the overview as JSON")
	keywordsCmd.Flags().IntVarP(&keywordCount, "count", "n", summarize.DefaultKeywords, "number of keywords")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "write the report to this file")

	rootCmd.AddCommand(summarizeCmd, keywordsCmd, statsCmd, reportCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	ov := svc.Overview(doc, summarySentences, 0)

	if summaryJSON {
		data, err := json.MarshalIndent(ov, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(ov.Summary.Formatted)
	cmd.Println(styled(metaStyle, fmt.Sprintf("%d of %d words (%.1f%%)",
		ov.SummaryStats.WordCount, ov.Stats.WordCount, ov.CompressionRatio)))
	return nil
}

func runKeywords(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	ranked := summarize.RankKeywords(doc.Text, keywordCount)
	if len(ranked) == 0 {
		cmd.Println("No repeated keywords.")
		return nil
	}
	for i, k := range ranked {
		cmd.Printf("%2d. %-20s %d\n", i+1, k.Word, k.Count)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	st := svc.Stats(doc)
	cmd.Printf("words:     %d\n", st.WordCount)
	cmd.Printf("chars:     %d\n", st.CharCount)
	cmd.Printf("lines:     %d\n", st.LineCount)
	cmd.Printf("sentences: %d\n", st.SentenceCount)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	report := svc.Report(doc)

	if reportOut == "" {
		cmd.Print(report)
		return nil
	}
	if err := os.WriteFile(reportOut, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	cmd.Printf("Report written to %s\n", reportOut)
	return nil
}
