package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"camPark/internal/config"
	"camPark/internal/domain"
	"camPark/pkg/e"
)

type geocodeService struct {
	cfg    config.GeocoderConfig
	logger *slog.Logger
	http   *http.Client
}

func NewGeocodeService(cfg config.GeocoderConfig, logger *slog.Logger) GeocodeService {
	return &geocodeService{
		cfg:    cfg,
		logger: logger,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

// featureDoc mirrors the geocoder's GeoJSON feature shape.
type featureDoc struct {
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [lng, lat]
}

type geocodeDoc struct {
	Features []featureDoc `json:"features"`
}

// Search forward-geocodes an address, biased toward the campus anchor.
// Transient upstream failures are retried here so the caller sees either
// results or a final error, never a half-finished attempt.
func (s *geocodeService) Search(ctx context.Context, query string) (domain.GeocodeResponse, error) {
	if s.cfg.Disabled {
		return domain.GeocodeResponse{Results: []domain.GeocodeResult{}}, nil
	}
	if len(query) < 3 {
		return domain.GeocodeResponse{}, e.ErrInvalidInput
	}

	endpoint := fmt.Sprintf("%s/%s.json?key=%s&proximity=%f,%f",
		s.cfg.BaseURL,
		url.PathEscape(query),
		url.QueryEscape(s.cfg.APIKey),
		s.cfg.ProximityLng,
		s.cfg.ProximityLat,
	)

	const maxRetries = 3
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return domain.GeocodeResponse{}, ctx.Err()
		}

		doc, err := s.fetch(ctx, endpoint)
		if err == nil {
			results := make([]domain.GeocodeResult, 0, len(doc.Features))
			for _, f := range doc.Features {
				if len(f.Center) < 2 {
					continue
				}
				name := f.Text
				if name == "" {
					name = f.PlaceName
				}
				results = append(results, domain.GeocodeResult{
					Name:      name,
					PlaceName: f.PlaceName,
					Lng:       f.Center[0],
					Lat:       f.Center[1],
				})
			}
			return domain.GeocodeResponse{Results: results}, nil
		}

		lastErr = err
		s.logger.Warn("geocode attempt failed",
			slog.Int("attempt", attempt),
			slog.String("query", query),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(attempt) * 200 * time.Millisecond)
	}

	return domain.GeocodeResponse{}, fmt.Errorf("geocode %q: %w", query, lastErr)
}

func (s *geocodeService) fetch(ctx context.Context, endpoint string) (*geocodeDoc, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocoder status %s", resp.Status)
	}

	var doc geocodeDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
