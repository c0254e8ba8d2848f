package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/library"
)

var editCmd = &cobra.Command{
	Use:   "edit [title]",
	Short: "Edit a title's metadata",
	Long: "Change the name, chapter count, source URL or cover of a tracked title. " +
		"Lowering the chapter count drops read marks beyond the new bound.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		var patch library.Patch
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			patch.Title = &v
		}
		if cmd.Flags().Changed("chapters") {
			v, _ := cmd.Flags().GetInt("chapters")
			patch.TotalChapters = &v
		}
		if cmd.Flags().Changed("url") {
			v, _ := cmd.Flags().GetString("url")
			patch.SourceURL = &v
		}
		if cmd.Flags().Changed("cover") {
			v, _ := cmd.Flags().GetString("cover")
			patch.CoverURL = &v
		}

		cobra.CheckErr(store.Update(m.ID, patch))

		fmt.Printf("✏️  Updated '%s' (%d/%d chapters read)\n", m.Title, m.ReadChapters.Len(), m.TotalChapters)
	},
}

func init() {
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().IntP("chapters", "c", 0, "New total chapter count")
	editCmd.Flags().StringP("url", "u", "", "New source URL")
	editCmd.Flags().String("cover", "", "New cover image URL")

	rootCmd.AddCommand(editCmd)
}
