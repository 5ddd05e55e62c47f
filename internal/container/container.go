// Package container provides dependency injection for the finsight application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"finsight/internal/budget"
	"finsight/internal/categorizer"
	"finsight/internal/config"
	"finsight/internal/forecast"
	"finsight/internal/logging"
	"finsight/internal/report"
	"finsight/internal/service"
	"finsight/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.RecordStore
	categorizer *categorizer.Categorizer
	forecaster  *forecast.Forecaster
	evaluator   *budget.Evaluator
	generator   *report.Generator
	insights    *service.InsightService
}

// Option overrides one of the dependencies NewContainer would otherwise build.
type Option func(*options)

type options struct {
	logger logging.Logger
	store  store.RecordStore
	clock  budget.Clock
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the file store rooted at the data directory.
func WithStore(records store.RecordStore) Option {
	return func(o *options) { o.store = records }
}

// WithClock replaces the system clock used for budget months.
func WithClock(clock budget.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	records := o.store
	if records == nil {
		records = store.NewFileStore(cfg.DataDirectory(), logger.WithField(logging.FieldComponent, "FileStore"))
	}

	loc := cfg.Location()
	cat := categorizer.NewCategorizer(logger.WithField(logging.FieldComponent, "Categorizer"))
	forecaster := forecast.NewForecaster(loc, logger.WithField(logging.FieldComponent, "Forecaster"))
	evaluator := budget.NewEvaluator(o.clock, loc, logger.WithField(logging.FieldComponent, "BudgetEvaluator"))
	generator := report.NewGenerator(cfg.Currency, logger)
	insights := service.NewInsightService(records, cat, forecaster, evaluator, logger.WithField(logging.FieldComponent, "InsightService"))

	logger.Debug("Container initialized successfully",
		logging.F("timezone", loc.String()),
		logging.F("report_format", string(format)))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       records,
		categorizer: cat,
		forecaster:  forecaster,
		evaluator:   evaluator,
		generator:   generator,
		insights:    insights,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the record store.
func (c *Container) GetStore() store.RecordStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetForecaster returns the spending forecaster.
func (c *Container) GetForecaster() *forecast.Forecaster {
	return c.forecaster
}

// GetEvaluator returns the budget evaluator.
func (c *Container) GetEvaluator() *budget.Evaluator {
	return c.evaluator
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetInsights returns the service combining the store with the engine.
func (c *Container) GetInsights() *service.InsightService {
	return c.insights
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
