package services

import (
	"context"
	"encoding/json"

	"attritionlens/domain/core"
	"attritionlens/domain/employee"
	"attritionlens/internal"
	"attritionlens/internal/dashboard"
	"attritionlens/internal/dataset"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/filter"
	"attritionlens/ports"
)

// DataService resolves the current table and filtered views for handlers
type DataService struct {
	source ports.DatasetSource
	cache  *dataset.Cache
	logger *internal.Logger
}

// NewDataService creates a data service over a cached source
func NewDataService(source ports.DatasetSource, cache *dataset.Cache) *DataService {
	return &DataService{
		source: source,
		cache:  cache,
		logger: internal.DefaultLogger.With("DataService"),
	}
}

// Table returns the current table, reloading it if the source changed.
func (s *DataService) Table(ctx context.Context) (*employee.Table, error) {
	table, err := s.cache.Get(ctx, s.source)
	if err != nil {
		s.logger.Error("dataset unavailable: %v", err)
		return nil, err
	}
	return table, nil
}

// Options returns sidebar choices for the current table.
func (s *DataService) Options(ctx context.Context) (filter.Options, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return filter.Options{}, err
	}
	return filter.OptionsFor(table, filter.Dimensions...), nil
}

// Defaults returns criteria that keep every record of the current table.
func (s *DataService) Defaults(ctx context.Context) (filter.Criteria, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return filter.Criteria{}, err
	}
	return filter.Defaults(table), nil
}

// View applies criteria to the current table. An empty result is returned as
// an empty view, not an error.
func (s *DataService) View(ctx context.Context, c filter.Criteria) (*employee.View, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	view, err := filter.Apply(table, c)
	if err != nil && !apperrors.IsEmptyResult(err) {
		return nil, err
	}
	return view, nil
}

// Dashboard builds the payload of one tab.
func (s *DataService) Dashboard(ctx context.Context, c filter.Criteria, tab dashboard.Tab) (*dashboard.Payload, *employee.View, error) {
	view, err := s.View(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	payload, err := dashboard.Build(view, tab)
	if err != nil {
		return nil, nil, err
	}
	return payload, view, nil
}

// ETag fingerprints what a response for (criteria, selector) would contain.
func ETag(view *employee.View, c filter.Criteria, selector string) string {
	criteria, _ := json.Marshal(c)
	return `"` + core.ComputeViewHash(view.Table().Signature, string(criteria), selector).Short() + `"`
}
