package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/library"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export your library as JSON",
	Long:  "Write the library to a JSON file, or to stdout when no file is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		out, err := json.MarshalIndent(store.List(), "", "  ")
		cobra.CheckErr(err)

		if len(args) == 0 {
			fmt.Println(string(out))
			return
		}

		cobra.CheckErr(os.WriteFile(args[0], out, 0o644))
		fmt.Printf("📦 Exported %d titles to %s\n", store.Len(), args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a library from JSON",
	Long: "Replace the current library with the titles from a JSON export. " +
		"The current library is left untouched when the file is not a valid export.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		cobra.CheckErr(err)

		items, err := library.ParseExport(raw)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("%s: %w", args[0], err))
		}

		_, repo, store := open()
		defer repo.Close()

		cobra.CheckErr(store.ReplaceAll(items))

		fmt.Printf("📥 Imported %d titles\n", len(items))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
