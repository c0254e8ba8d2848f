package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [title] [chapter]",
	Short: "Toggle reading progress at a chapter",
	Long: "Mark chapters as read up to the given one. Toggling a chapter that is " +
		"already read unmarks it and everything after it.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		chapter, err := strconv.Atoi(args[1])
		if err != nil || chapter < 1 {
			cobra.CheckErr(fmt.Errorf("invalid chapter %q", args[1]))
		}

		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		if chapter > m.TotalChapters {
			cobra.CheckErr(fmt.Errorf("'%s' only has %d chapters", m.Title, m.TotalChapters))
		}

		wasRead := m.ReadChapters.Has(chapter)
		cobra.CheckErr(store.ToggleChapter(m.ID, chapter))

		if wasRead {
			fmt.Printf("↩️  Unmarked from chapter %d: '%s' is now at %d/%d\n",
				chapter, m.Title, m.ReadChapters.Len(), m.TotalChapters)
		} else {
			fmt.Printf("📖 Read up to chapter %d: '%s' is now at %d/%d\n",
				chapter, m.Title, m.ReadChapters.Len(), m.TotalChapters)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
