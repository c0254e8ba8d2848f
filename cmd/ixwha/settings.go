package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/library"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your preferences",
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, _ := open()
		defer repo.Close()

		settings := repo.LoadSettings()

		changed := false
		if cmd.Flags().Changed("auto-check") {
			settings.AutoCheckEnabled, _ = cmd.Flags().GetBool("auto-check")
			changed = true
		}
		if cmd.Flags().Changed("notifications") {
			settings.NotificationsEnabled, _ = cmd.Flags().GetBool("notifications")
			changed = true
		}
		if cmd.Flags().Changed("sort") {
			sortKey, _ := cmd.Flags().GetString("sort")
			switch sortKey {
			case library.SortTitle, library.SortLastRead, library.SortProgress:
				settings.DefaultSort = sortKey
				changed = true
			default:
				cobra.CheckErr(fmt.Errorf("unknown sort key %q (title, lastRead, progress)", sortKey))
			}
		}

		if changed {
			cobra.CheckErr(repo.SaveSettings(settings))
			fmt.Println("💾 Settings saved")
		}

		fmt.Printf("Auto check:     %v\n", settings.AutoCheckEnabled)
		fmt.Printf("Notifications:  %v\n", settings.NotificationsEnabled)
		fmt.Printf("Default sort:   %s\n", settings.DefaultSort)
	},
}

func init() {
	settingsCmd.Flags().Bool("auto-check", true, "Check for new chapters on startup")
	settingsCmd.Flags().Bool("notifications", true, "Announce updates through the webhook")
	settingsCmd.Flags().String("sort", library.SortTitle, "Default library sort key")

	rootCmd.AddCommand(settingsCmd)
}
