package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [title]",
	Aliases: []string{"rm"},
	Short:   "Remove a title from your library",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		cobra.CheckErr(store.Remove(m.ID))

		fmt.Printf("🗑️  Removed '%s' from your library\n", m.Title)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
