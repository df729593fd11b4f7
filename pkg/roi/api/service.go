package api

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/komsit37/roi/pkg/roi/cache"
	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/format"
)

// Formatted carries the display strings for a projection.
type Formatted struct {
	JobValue    string `json:"job_value"`
	ClosingRate string `json:"closing_rate"`
	ClosedDeals string `json:"closed_deals"`
	Revenue     string `json:"revenue"`
	Investment  string `json:"investment"`
	Profit      string `json:"profit"`
	ROI         string `json:"roi"`
	Multiplier  string `json:"multiplier"`
	CPA         string `json:"cpa"`
	ROIBadge    string `json:"roi_badge"`
	DealsLabel  string `json:"deals_label"`
	CPALabel    string `json:"cpa_label"`
	Disclaimer  string `json:"disclaimer"`
}

// ProjectionResponse is the body of /api/v1/projection.
type ProjectionResponse struct {
	Inputs     calc.Inputs     `json:"inputs"`
	Slider     float64         `json:"slider"`
	Projection calc.Projection `json:"projection"`
	Formatted  Formatted       `json:"formatted"`
	Cached     bool            `json:"cached"`
}

// ProjectionService computes projections behind a cache.
type ProjectionService struct {
	model  calc.Model
	cache  cache.Cache
	logger *zap.Logger
}

// NewProjectionService accepts a nil cache, which disables caching.
func NewProjectionService(m calc.Model, c cache.Cache, logger *zap.Logger) *ProjectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectionService{model: m, cache: c, logger: logger}
}

func (s *ProjectionService) Model() calc.Model { return s.model }

// Project clamps in and returns its projection. Cache failures are logged and
// never fail the request.
func (s *ProjectionService) Project(ctx context.Context, in calc.Inputs) ProjectionResponse {
	in = s.model.Clamp(in)
	key := cacheKey(in)

	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("projection cache get failed", zap.String("key", key), zap.Error(err))
		}
		if ok {
			var resp ProjectionResponse
			if err := json.Unmarshal(raw, &resp); err == nil {
				resp.Cached = true
				return resp
			}
			s.logger.Warn("projection cache entry corrupt", zap.String("key", key))
		}
	}

	resp := s.build(in)

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw); err != nil {
				s.logger.Warn("projection cache set failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return resp
}

func (s *ProjectionService) build(in calc.Inputs) ProjectionResponse {
	p := s.model.Project(in)
	return ProjectionResponse{
		Inputs:     in,
		Slider:     s.model.ToSlider(in.JobValue),
		Projection: p,
		Formatted: Formatted{
			JobValue:    format.JobValue(in.JobValue, s.model.MaxJobValue),
			ClosingRate: format.Rate(in.ClosingRate),
			ClosedDeals: format.Deals(p.ClosedDeals),
			Revenue:     format.Currency(p.Revenue),
			Investment:  format.Currency(p.Investment),
			Profit:      format.Currency(p.Profit),
			ROI:         format.Percent(p.ROIPercent),
			Multiplier:  format.Multiplier(p.Multiplier),
			CPA:         format.Currency(s.model.CostPerAppointment),
			ROIBadge:    format.ROILabel(p.ROIPercent),
			DealsLabel:  format.DealsLabel(p.ClosedDeals),
			CPALabel:    format.CPALabel(s.model.CostPerAppointment),
			Disclaimer:  format.Disclaimer,
		},
	}
}

func cacheKey(in calc.Inputs) string {
	return fmt.Sprintf("%d|%g|%g", in.Appointments, in.ClosingRate, in.JobValue)
}
