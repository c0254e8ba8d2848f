package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [title]",
	Short: "Reset the reading progress of a title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		cobra.CheckErr(store.ResetProgress(m.ID))

		fmt.Printf("🔄 Progress reset for '%s' (0/%d)\n", m.Title, m.TotalChapters)
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
