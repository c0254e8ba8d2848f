package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/services"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check supported sites for new chapters",
	Long: "Walk the library and compare each title's chapter count against its " +
		"source site. Runs at most once per check interval unless forced.",
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")

		cfg, repo, store := open()
		defer repo.Close()

		checker := newChecker(cfg, repo, store)

		var updates []services.Update
		var err error
		if force {
			fmt.Println("🔍 Checking all titles...")
			updates, err = checker.Force(cmd.Context())
		} else {
			due, derr := checker.Due()
			cobra.CheckErr(derr)
			if !due {
				fmt.Println("⏱️  Checked recently, nothing to do. Use --force to check anyway.")
				return
			}
			fmt.Println("🔍 Checking all titles...")
			updates, err = checker.Run(cmd.Context())
		}
		cobra.CheckErr(err)

		if len(updates) == 0 {
			fmt.Println("✅ No new chapters")
			return
		}

		for _, u := range updates {
			fmt.Printf("🆕 %s: %d → %d chapters\n", u.Title, u.OldChapters, u.NewChapters)
		}

		if notifier := newNotifier(cfg, repo); notifier != nil {
			for _, u := range updates {
				msg := services.BuildChapterMessage(u)
				if err := notifier.Notify(cmd.Context(), "chapter_"+u.ID, msg); err != nil {
					fmt.Printf("🔕 %s: %v\n", u.Title, err)
				}
			}
		}
	},
}

func init() {
	checkCmd.Flags().BoolP("force", "f", false, "Check even if the interval has not elapsed")

	rootCmd.AddCommand(checkCmd)
}
