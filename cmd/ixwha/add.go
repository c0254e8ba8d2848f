package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/data"
	"github.com/ixaliom/ixwha/pkg/sources"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a manhwa to your library",
	Long:  "Add a manhwa by name, or from a supported site URL to fill in the metadata automatically",
	Run: func(cmd *cobra.Command, args []string) {
		title := strings.Join(args, " ")
		chapters, _ := cmd.Flags().GetInt("chapters")
		sourceURL, _ := cmd.Flags().GetString("url")
		cover, _ := cmd.Flags().GetString("cover")

		cfg, repo, store := open()
		defer repo.Close()

		m := &data.Manhwa{
			Title:         title,
			TotalChapters: chapters,
			SourceURL:     sourceURL,
			CoverURL:      cover,
		}

		if sourceURL != "" {
			site, ok := sources.Lookup(sourceURL)
			if !ok {
				cobra.CheckErr(fmt.Errorf("unsupported site: %s", sourceURL))
			}

			fmt.Printf("🔍 Fetching metadata from %s...\n", site.Name())

			checkURL, err := site.CheckURL(sourceURL)
			cobra.CheckErr(err)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ExtractTimeout())
			defer cancel()

			client := sources.NewRelayClient(relayChain(cfg))
			doc, err := client.Fetch(ctx, checkURL, cfg.ExtractTimeout())
			if err != nil {
				fmt.Printf("⚠️  Could not fetch the page, keeping provided values: %v\n", err)
			} else {
				info := site.Extract(doc)
				if m.Title == "" {
					m.Title = info.Title
				}
				if m.TotalChapters == 0 {
					m.TotalChapters = info.TotalChapters
				}
				if m.CoverURL == "" {
					m.CoverURL = info.CoverURL
				}
			}

			if m.Title == "" {
				m.Title = sources.TitleFromURL(sourceURL)
			}
		}

		cobra.CheckErr(store.Add(m))

		fmt.Printf("✅ Added '%s' with %d chapters\n", m.Title, m.TotalChapters)
		fmt.Printf("💡 Mark chapters read with: ixwha read \"%s\" <chapter>\n", m.Title)
	},
}

func init() {
	addCmd.Flags().IntP("chapters", "c", 0, "Total number of published chapters")
	addCmd.Flags().StringP("url", "u", "", "URL of the title on a supported site")
	addCmd.Flags().String("cover", "", "Cover image URL")

	rootCmd.AddCommand(addCmd)
}
