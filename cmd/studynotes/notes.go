package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/studynotes/internal/summarize"
)

var notesJSON bool

var notesCmd = &cobra.Command{
	Use:   "notes FILE",
	Short: "Print keywords, definitions, formulas, list items and a short summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotes,
}

func init() {
	notesCmd.Flags().BoolVar(&notesJSON, "json", false, "output the notes as JSON")
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	notes := svc.Notes(doc)

	if notesJSON {
		data, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal notes: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	cmd.Print(summarize.FormatNotes(doc.Filename, notes))
	return nil
}
