package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ixaliom/ixwha/pkg/app"
	"github.com/ixaliom/ixwha/pkg/data"
	"github.com/ixaliom/ixwha/pkg/integrations"
	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/services"
	"github.com/ixaliom/ixwha/pkg/sources"
	"github.com/ixaliom/ixwha/pkg/utils"
)

// Version is the released version, announced through the update manifest.
const Version = "1.5.8"

var rootCmd = &cobra.Command{
	Use:   "ixwha",
	Short: "A personal manhwa reading tracker",
	Long:  "Track your manhwa reading progress, follow favorites and get notified of new chapters",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, repo, store := open()
		defer repo.Close()

		checker := newChecker(cfg, repo, store)
		scheduler := services.NewScheduler(repo, checker, newNotifier(cfg, repo), newManifestClient(cfg), Version, cfg.CheckInterval())

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		_, err := scheduler.Startup(ctx)
		cancel()
		cobra.CheckErr(err)

		a := app.NewApp(store, checker)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// open loads the config and the persisted library. Errors here are fatal
// for every command.
func open() (utils.Config, *data.Repository, *library.Store) {
	cfg, err := utils.LoadConfig(utils.DefaultConfigPath())
	cobra.CheckErr(err)

	repo, err := data.Open(cfg.DataPath)
	cobra.CheckErr(err)

	store, err := library.Load(repo)
	if err != nil {
		repo.Close()
		cobra.CheckErr(err)
	}

	return cfg, repo, store
}

func newChecker(cfg utils.Config, repo *data.Repository, store *library.Store) *services.Checker {
	fetcher := sources.NewRelayClient(relayChain(cfg))
	return services.NewChecker(store, repo, fetcher, cfg.CheckInterval(), cfg.CheckTimeout())
}

// relayChain maps the configured relays onto the fetch chain, keeping the
// built-in chain when the config does not override it.
func relayChain(cfg utils.Config) []sources.Relay {
	if len(cfg.Relays) == 0 {
		return sources.DefaultRelays()
	}

	relays := make([]sources.Relay, 0, len(cfg.Relays))
	for _, rc := range cfg.Relays {
		shape, err := sources.ParseShape(rc.Shape)
		cobra.CheckErr(err)
		relays = append(relays, sources.Relay{
			Name:     rc.Name,
			Endpoint: rc.Endpoint,
			Shape:    shape,
			Headers:  rc.Headers,
		})
	}
	return relays
}

func newNotifier(cfg utils.Config, repo *data.Repository) *services.Notifier {
	settings := repo.LoadSettings()
	if cfg.WebhookURL == "" || !settings.NotificationsEnabled {
		return nil
	}
	return services.NewNotifier(repo, integrations.NewDiscordWebhook(cfg.WebhookURL))
}

func newManifestClient(cfg utils.Config) *integrations.ManifestClient {
	if cfg.UpdateManifestURL == "" {
		return nil
	}
	return integrations.NewManifestClient(cfg.UpdateManifestURL)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
