package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/sources"
)

var openCmd = &cobra.Command{
	Use:   "open [title] [chapter]",
	Short: "Open a chapter in your browser",
	Long:  "Build the reading URL for a chapter and open it. Without a chapter, opens the next unread one.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		_, repo, store := open()
		defer repo.Close()

		m, err := store.Resolve(args[0])
		cobra.CheckErr(err)

		if m.SourceURL == "" {
			cobra.CheckErr(fmt.Errorf("'%s' has no source URL, set one with: ixwha edit %q --url <url>", m.Title, m.Title))
		}

		chapter := m.NextUnread()
		if len(args) == 2 {
			chapter, err = strconv.Atoi(args[1])
			if err != nil || chapter < 1 {
				cobra.CheckErr(fmt.Errorf("invalid chapter %q", args[1]))
			}
		}

		var readURL string
		if site, ok := sources.Lookup(m.SourceURL); ok {
			readURL = site.ReadURL(m.SourceURL, chapter)
		} else {
			readURL = sources.FallbackReadURL(m.SourceURL, chapter)
		}

		fmt.Printf("🌐 Opening chapter %d of '%s'\n%s\n", chapter, m.Title, readURL)

		if err := openBrowser(readURL); err != nil {
			fmt.Printf("⚠️  Could not open a browser: %v\n", err)
		}
	},
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func init() {
	rootCmd.AddCommand(openCmd)
}
