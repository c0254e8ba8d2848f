package integrations

import (
	"context"
	"fmt"

	"github.com/ixaliom/ixwha/pkg/utils"
)

// UpdateInfo describes one released version in the update manifest.
type UpdateInfo struct {
	Date     string   `json:"date"`
	Features []string `json:"features"`
}

// Manifest maps version strings to their release notes.
type Manifest map[string]UpdateInfo

// ManifestClient fetches the published update manifest.
type ManifestClient struct {
	api *utils.API
}

func NewManifestClient(url string) *ManifestClient {
	api := utils.NewAPI(url).WithHeaders(map[string]string{
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
	})
	return &ManifestClient{api: api}
}

func (c *ManifestClient) Fetch(ctx context.Context) (Manifest, error) {
	var m Manifest
	if err := c.api.Get(ctx, "", nil, &m); err != nil {
		return nil, fmt.Errorf("fetching update manifest: %w", err)
	}
	return m, nil
}

// Latest returns the highest version key present in the manifest, using
// simple semver-ish comparison on dot-separated numeric parts.
func (m Manifest) Latest() (string, UpdateInfo, bool) {
	var best string
	for v := range m {
		if best == "" || compareVersions(v, best) > 0 {
			best = v
		}
	}
	if best == "" {
		return "", UpdateInfo{}, false
	}
	return best, m[best], true
}

func compareVersions(a, b string) int {
	pa := versionParts(a)
	pb := versionParts(b)
	for i := 0; i < len(pa) || i < len(pb); i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			if x > y {
				return 1
			}
			return -1
		}
	}
	return 0
}

func versionParts(v string) []int {
	var parts []int
	cur := 0
	seen := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			cur = cur*10 + int(r-'0')
			seen = true
		case r == '.':
			parts = append(parts, cur)
			cur, seen = 0, false
		}
	}
	if seen {
		parts = append(parts, cur)
	}
	return parts
}
