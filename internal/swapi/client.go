// ABOUTME: SWAPI client for bulk-importing the starship catalog on first run
// ABOUTME: Fetches and decodes the public starship list into store entities

package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hangarbay/starship-api/internal/store"
)

// starshipPayload mirrors the SWAPI starship JSON shape
type starshipPayload struct {
	Name                 string `json:"name"`
	Model                string `json:"model"`
	Manufacturer         string `json:"manufacturer"`
	CostInCredits        string `json:"cost_in_credits"`
	Length               string `json:"length"`
	MaxAtmospheringSpeed string `json:"max_atmosphering_speed"`
	Crew                 string `json:"crew"`
	Passengers           string `json:"passengers"`
	CargoCapacity        string `json:"cargo_capacity"`
	Consumables          string `json:"consumables"`
	HyperdriveRating     string `json:"hyperdrive_rating"`
	MGLT                 string `json:"MGLT"`
	StarshipClass        string `json:"starship_class"`
}

// Client fetches starships from a SWAPI-compatible endpoint
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a SWAPI client against the given base URL
// (e.g. "https://swapi.info").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "swapi"),
	}
}

// GetStarships fetches the full starship list. A non-2xx status or a decode
// failure is an error; the caller decides whether to continue without a seed.
func (c *Client) GetStarships(ctx context.Context) ([]*store.Starship, error) {
	url := c.baseURL + "/api/starships"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching starships: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching starships: unexpected status %d", resp.StatusCode)
	}

	var payload []starshipPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding starships: %w", err)
	}

	ships := make([]*store.Starship, 0, len(payload))
	for _, p := range payload {
		ships = append(ships, &store.Starship{
			Name:                 p.Name,
			Model:                p.Model,
			Manufacturer:         p.Manufacturer,
			CostInCredits:        p.CostInCredits,
			Length:               p.Length,
			MaxAtmospheringSpeed: p.MaxAtmospheringSpeed,
			Crew:                 p.Crew,
			Passengers:           p.Passengers,
			CargoCapacity:        p.CargoCapacity,
			Consumables:          p.Consumables,
			HyperdriveRating:     p.HyperdriveRating,
			MGLT:                 p.MGLT,
			StarshipClass:        p.StarshipClass,
		})
	}

	c.logger.Info("fetched starships", "count", len(ships))
	return ships, nil
}
