package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/library"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the manhwas in your library",
	Long:  "Display your library in a formatted table, with optional tab, search and sort filters",
	Run: func(cmd *cobra.Command, args []string) {
		tabFlag, _ := cmd.Flags().GetString("tab")
		search, _ := cmd.Flags().GetString("search")
		sortKey, _ := cmd.Flags().GetString("sort")

		_, repo, store := open()
		defer repo.Close()

		tab, ok := library.ParseTab(tabFlag)
		if !ok {
			cobra.CheckErr(fmt.Errorf("unknown tab %q (all, completed, dropped, favorites)", tabFlag))
		}

		items := library.Project(store.List(), tab, search, sortKey)
		if len(items) == 0 {
			fmt.Println("📚 Nothing here. Use 'ixwha add' to track a title.")
			return
		}

		columns := []table.Column{
			{Title: "Title", Width: 40},
			{Title: "Progress", Width: 12},
			{Title: "Next", Width: 6},
			{Title: "Status", Width: 12},
		}

		rows := []table.Row{}
		for _, m := range items {
			status := ""
			if m.IsFavorite {
				status += "★ "
			}
			if m.IsDropped {
				status += "dropped"
			} else if m.IsCompleted() {
				status += "up to date"
			}

			rows = append(rows, table.Row{
				truncateString(m.Title, 38),
				fmt.Sprintf("%d/%d", m.ReadChapters.Len(), m.TotalChapters),
				fmt.Sprintf("%d", m.NextUnread()),
				status,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Library (%d titles)\n\n", len(items))
		fmt.Println(t.View())
	},
}

func init() {
	listCmd.Flags().StringP("tab", "t", "all", "Tab to show (all, completed, dropped, favorites)")
	listCmd.Flags().StringP("search", "s", "", "Filter titles by name")
	listCmd.Flags().String("sort", library.SortTitle, "Sort key (title, lastRead, progress)")

	rootCmd.AddCommand(listCmd)
}
