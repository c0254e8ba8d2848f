package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ixaliom/ixwha/pkg/data"
)

const (
	colorMajor = 15844367
	colorMinor = 3447003
	colorPatch = 5763719
)

// DiscordWebhook posts embed messages to a Discord webhook URL.
type DiscordWebhook struct {
	url    string
	client *http.Client
}

func NewDiscordWebhook(url string) *DiscordWebhook {
	return &DiscordWebhook{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (d *DiscordWebhook) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// featureBuckets maps release-note lines to named sections by keyword.
var featureBuckets = []struct {
	name     string
	keywords []string
}{
	{"✨ Nouveautés", []string{"ajout", "add", "nouv", "new"}},
	{"🔧 Corrections", []string{"correct", "fix", "répar"}},
	{"⚡ Améliorations", []string{"amélior", "improv", "optimis"}},
	{"🗑️ Suppressions", []string{"suppr", "remov", "retrait"}},
}

func bucketFeatures(features []string) []Field {
	grouped := make(map[string][]string)
	var order []string

	for _, f := range features {
		name := bucketName(strings.ToLower(f))
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], "• "+f)
	}

	fields := make([]Field, 0, len(order))
	for _, name := range order {
		fields = append(fields, Field{
			Name:  name,
			Value: strings.Join(grouped[name], "\n"),
		})
	}
	return fields
}

func bucketName(lower string) string {
	for _, b := range featureBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.name
			}
		}
	}
	return "📝 Autres"
}

// UpdateType classifies a release from its notes: overhauls are major,
// anything adding features is minor, the rest are patches.
func UpdateType(features []string) string {
	hasNew := false
	for _, f := range features {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "refonte") || strings.Contains(lower, "overhaul") || strings.Contains(lower, "majeur") {
			return "major"
		}
		for _, kw := range []string{"ajout", "add", "nouv", "new"} {
			if strings.Contains(lower, kw) {
				hasNew = true
			}
		}
	}
	if hasNew {
		return "minor"
	}
	return "patch"
}

func colorFor(updateType string) int {
	switch updateType {
	case "major":
		return colorMajor
	case "minor":
		return colorMinor
	default:
		return colorPatch
	}
}

// BuildUpdateMessage assembles the release announcement embed for a new
// version, including categorized release notes and usage statistics.
func BuildUpdateMessage(version string, info UpdateInfo, stats data.Stats) Message {
	kind := UpdateType(info.Features)

	fields := bucketFeatures(info.Features)
	fields = append(fields, Field{
		Name: "📊 Statistiques",
		Value: fmt.Sprintf("Visites totales : %d\nMises à jour publiées : %d",
			stats.TotalVisits, len(stats.UpdateHistory)),
		Inline: true,
	})

	desc := fmt.Sprintf("Une nouvelle version **v%s** est disponible", version)
	if info.Date != "" {
		desc += fmt.Sprintf(" (%s)", info.Date)
	}

	return Message{
		Embeds: []Embed{{
			Title:       fmt.Sprintf("🚀 IXWHA v%s", version),
			Description: desc,
			Color:       colorFor(kind),
			Fields:      fields,
			Footer: &Footer{
				Text: fmt.Sprintf("%d utilisateurs uniques", len(stats.UniqueUsers)),
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}
}
