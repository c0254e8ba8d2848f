package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav [title]",
	Short: "Toggle a title's favorite flag",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		cobra.CheckErr(store.ToggleFavorite(m.ID))

		if m.IsFavorite {
			fmt.Printf("⭐ '%s' is now a favorite\n", m.Title)
		} else {
			fmt.Printf("💫 '%s' is no longer a favorite\n", m.Title)
		}
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop [title]",
	Short: "Toggle a title's dropped flag",
	Long:  "Dropped titles stay in the library but are skipped by chapter checks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		cobra.CheckErr(store.ToggleDropped(m.ID))

		if m.IsDropped {
			fmt.Printf("🚮 '%s' dropped\n", m.Title)
		} else {
			fmt.Printf("📚 '%s' picked back up\n", m.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(dropCmd)
}
