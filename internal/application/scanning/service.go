// Package scanning is the application service behind the HTTP API and the
// CLI. It loads the caller's profile and history, scores the ingredient
// list, records the result and announces it.
package scanning

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/turtacn/EatTrue/internal/domain/ingredient"
	"github.com/turtacn/EatTrue/internal/domain/risk"
	"github.com/turtacn/EatTrue/internal/domain/scan"
	"github.com/turtacn/EatTrue/internal/domain/substance"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/pkg/errors"
)

// Service defines the scanning application operations.
type Service interface {
	AnalyzeText(ctx context.Context, req *TextRequest) (*scan.Result, error)
	AnalyzeBarcode(ctx context.Context, req *BarcodeRequest) (*scan.Result, error)
	GetProfile(ctx context.Context, userID string) (*risk.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*risk.Profile, error)
	GetHistory(ctx context.Context, userID string, limit int) (risk.History, error)
	ListSubstances(ctx context.Context) []substance.Record
	GetSubstance(ctx context.Context, id string) (*substance.Record, error)
}

// TextRequest is an ingredient list typed, OCR'd or captured by camera.
type TextRequest struct {
	UserID      string `json:"user_id"`
	Text        string `json:"text"`
	ProductName string `json:"product_name,omitempty"`
	Source      string `json:"source,omitempty"`
	BatchCode   string `json:"batch_code,omitempty"`
}

// BarcodeRequest is a scanned UPC/EAN code.
type BarcodeRequest struct {
	UserID  string `json:"user_id"`
	Barcode string `json:"barcode"`
}

// ProfileUpdate changes only the fields that are set. DietaryPreferences is
// the comma-separated form the profile editor submits.
type ProfileUpdate struct {
	Age                *int    `json:"age,omitempty"`
	DietaryPreferences *string `json:"dietary_preferences,omitempty"`
	PregnancyStatus    *string `json:"pregnancy_status,omitempty"`
}

// Option configures the service.
type Option func(*serviceImpl)

// WithPublisher sets the scan event publisher.
func WithPublisher(p EventPublisher) Option {
	return func(s *serviceImpl) { s.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

// WithClock sets the clock used for scoring, scan timestamps and latency.
func WithClock(c clockwork.Clock) Option {
	return func(s *serviceImpl) { s.clock = c }
}

// WithProductCatalog replaces the built-in barcode catalog.
func WithProductCatalog(c *scan.ProductCatalog) Option {
	return func(s *serviceImpl) { s.products = c }
}

type serviceImpl struct {
	resolver  *substance.Resolver
	scorer    *risk.Scorer
	builder   *scan.Builder
	products  *scan.ProductCatalog
	history   scan.HistoryRepository
	profiles  scan.ProfileRepository
	publisher EventPublisher
	metrics   Metrics
	clock     clockwork.Clock
	logger    logging.Logger
}

// NewService creates a scanning service over the given catalog resolver and
// stores.
func NewService(resolver *substance.Resolver, history scan.HistoryRepository, profiles scan.ProfileRepository, logger logging.Logger, opts ...Option) Service {
	s := &serviceImpl{
		resolver:  resolver,
		products:  scan.DefaultProductCatalog(),
		history:   history,
		profiles:  profiles,
		publisher: nopPublisher{},
		metrics:   nopMetrics{},
		clock:     clockwork.NewRealClock(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scorer = risk.NewScorer(resolver, risk.WithClock(s.clock))
	s.builder = scan.NewBuilder(scan.WithBuilderClock(s.clock))
	return s
}

func (s *serviceImpl) AnalyzeText(ctx context.Context, req *TextRequest) (*scan.Result, error) {
	if req == nil {
		return nil, errors.InvalidParam("request must not be nil")
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}

	source := scan.SourceManual
	if req.Source != "" {
		source = scan.Source(req.Source)
		if !source.IsValid() {
			return nil, errors.InvalidParam("unsupported scan source").WithDetail("source=" + req.Source)
		}
	}
	if source == scan.SourceBarcode {
		return nil, errors.InvalidParam("barcode scans take a barcode, not text")
	}

	if source == scan.SourceManual && strings.TrimSpace(req.Text) == "" {
		s.metrics.ObserveScanFailure(string(source), errors.CodeEmptyIngredients.String())
		return nil, errors.New(errors.CodeEmptyIngredients, "please enter ingredients")
	}

	tokens := ingredient.Normalize(req.Text)
	if source == scan.SourceLiveCamera && len(tokens) == 0 {
		s.metrics.ObserveScanFailure(string(source), errors.CodeEmptyIngredients.String())
		return nil, errors.New(errors.CodeEmptyIngredients, "no ingredients recognised in frame")
	}

	return s.analyze(ctx, req.UserID, scan.Input{
		ProductName: req.ProductName,
		Source:      source,
		Tokens:      tokens,
		BatchCode:   req.BatchCode,
	})
}

func (s *serviceImpl) AnalyzeBarcode(ctx context.Context, req *BarcodeRequest) (*scan.Result, error) {
	if req == nil {
		return nil, errors.InvalidParam("request must not be nil")
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Barcode)
	if code == "" {
		return nil, errors.InvalidParam("barcode must not be empty")
	}

	product := s.products.Resolve(code)
	if product.Name == scan.UnknownProductName {
		s.logger.Info("Barcode not in product catalog", logging.String("barcode", code))
	}

	return s.analyze(ctx, req.UserID, scan.Input{
		ProductName: product.Name,
		Source:      scan.SourceBarcode,
		Tokens:      ingredient.Normalize(ingredient.JoinProduct(product.Ingredients)),
		BatchCode:   product.BatchCode,
	})
}

func (s *serviceImpl) analyze(ctx context.Context, userID string, in scan.Input) (*scan.Result, error) {
	start := s.clock.Now()
	source := string(in.Source)

	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		s.metrics.ObserveScanFailure(source, errors.GetCode(err).String())
		return nil, err
	}
	history, err := s.history.Load(ctx, userID)
	if err != nil {
		s.metrics.ObserveScanFailure(source, errors.GetCode(err).String())
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to load scan history")
	}

	analysis, err := s.scorer.Score(in.Tokens, profile, history)
	if err != nil {
		s.metrics.ObserveScanFailure(source, errors.GetCode(err).String())
		s.logger.Error("Scoring failed", logging.String("user_id", userID), logging.Err(err))
		return nil, err
	}

	if in.ProductName == "" {
		in.ProductName = in.Source.DefaultProductName()
	}
	in.Analysis = analysis
	in.Alternatives = s.products.AlternativesFor(in.ProductName)
	res := s.builder.Build(in, nil)

	if err := s.history.Append(ctx, userID, res.HistoryEntry()); err != nil {
		s.metrics.ObserveScanFailure(source, errors.GetCode(err).String())
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to record scan history")
	}

	pubErr := s.publisher.PublishScanCompleted(ctx, userID, res)
	if pubErr != nil {
		s.logger.Warn("Failed to publish scan event",
			logging.String("scan_id", res.ID),
			logging.Err(pubErr))
	}
	s.metrics.ObservePublish(pubErr)
	s.metrics.ObserveScan(source, analysis, s.clock.Since(start))

	s.logger.WithContext(ctx).Info("Scan completed",
		logging.String("scan_id", res.ID),
		logging.String("user_id", userID),
		logging.String("source", source),
		logging.Int("ingredients", len(res.Ingredients)),
		logging.Int("overall_score", analysis.OverallScore),
		logging.String("trend", string(analysis.Trend)))
	return res, nil
}

func (s *serviceImpl) loadProfile(ctx context.Context, userID string) (risk.Profile, error) {
	p, found, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return risk.Profile{}, errors.Wrap(err, errors.CodeUnknown, "failed to load profile")
	}
	if !found {
		return risk.DefaultProfile(), nil
	}
	return p, nil
}

func (s *serviceImpl) GetProfile(ctx context.Context, userID string) (*risk.Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*risk.Profile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if update == nil {
		return nil, errors.InvalidParam("profile update must not be nil")
	}

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.Age != nil {
		p.Age = *update.Age
	}
	if update.DietaryPreferences != nil {
		p.DietaryPreferences = risk.ParsePreferences(*update.DietaryPreferences)
	}
	if update.PregnancyStatus != nil {
		p.PregnancyStatus = risk.PregnancyStatus(*update.PregnancyStatus)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.profiles.Save(ctx, userID, p); err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to save profile")
	}
	s.logger.Info("Profile updated", logging.String("user_id", userID), logging.Int("age", p.Age))
	return &p, nil
}

func (s *serviceImpl) GetHistory(ctx context.Context, userID string, limit int) (risk.History, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, errors.New(errors.ErrCodeHistoryInvalid, "limit must be >= 0")
	}
	h, err := s.history.Load(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnknown, "failed to load scan history")
	}
	recent := h.Recent(limit)
	out := make(risk.History, len(recent))
	copy(out, recent)
	return out, nil
}

func (s *serviceImpl) ListSubstances(_ context.Context) []substance.Record {
	return s.resolver.Catalog().Records()
}

func (s *serviceImpl) GetSubstance(_ context.Context, id string) (*substance.Record, error) {
	rec, err := s.resolver.Lookup(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func validateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.InvalidParam("user id must not be empty")
	}
	return nil
}

//Personal.AI order the ending
