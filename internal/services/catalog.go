package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/costopro/internal/market"
	"github.com/diewo77/costopro/internal/models"
	"github.com/diewo77/costopro/internal/policy"
	"github.com/diewo77/costopro/internal/pricing"
	"github.com/diewo77/costopro/internal/store"
	"github.com/diewo77/costopro/validation"
	"github.com/rs/zerolog"
)

// recentCount is the number of records shown on the dashboard.
const recentCount = 3

// Quote is a priced form snapshot, not persisted.
type Quote struct {
	Result       pricing.Result     `json:"result"`
	Assessment   *market.Assessment `json:"assessment"`
	ExchangeRate float64            `json:"exchange_rate"`
}

// Dashboard summarizes the catalog for the current caller.
// CompetitiveCount is the number of records priced inside their zone band.
type Dashboard struct {
	InventoryValue   float64                  `json:"inventory_value"`
	ProductCount     int                      `json:"product_count"`
	CompetitiveCount int                      `json:"competitive_count"`
	Role             models.Role              `json:"role"`
	Recent           []models.InventoryRecord `json:"recent"`
}

// CatalogService prices form snapshots and owns the inventory.
type CatalogService struct {
	repo  store.CatalogRepository
	rates *RateBook
	log   zerolog.Logger
	now   func() time.Time

	// mu serializes load-modify-save cycles and guards lastID.
	mu     sync.Mutex
	lastID int64
}

func NewCatalogService(repo store.CatalogRepository, rates *RateBook, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, rates: rates, log: log, now: time.Now}
}

// WithClock replaces the time source. Intended for tests.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

func (s *CatalogService) quote(in pricing.Input) Quote {
	rate := s.rates.Rate()
	r := pricing.Compute(in, rate)
	return Quote{
		Result:       r,
		Assessment:   market.Classify(r.UnitCost, r.SuggestedPrice, in.Zone),
		ExchangeRate: rate,
	}
}

// Preview computes and classifies in with the current exchange rate.
func (s *CatalogService) Preview(session *Session, in pricing.Input) (*Quote, error) {
	if err := policy.Authorize(session.Role(), policy.OpComputePricing); err != nil {
		return nil, err
	}
	q := s.quote(in)
	return &q, nil
}

// Save freezes in with its computed result and assessment as a new record
// at the head of the inventory. Nothing is written on error.
func (s *CatalogService) Save(ctx context.Context, session *Session, in pricing.Input) (*models.InventoryRecord, error) {
	if err := policy.Authorize(session.Role(), policy.OpSaveRecord); err != nil {
		return nil, err
	}
	q := s.quote(in)

	v := validation.Violations{}
	validation.Required("product_name", in.ProductName, v)
	validation.PositiveFloat("unit_cost", q.Result.UnitCost, v)
	if err := validationErr(v); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	in.ProductName = strings.TrimSpace(in.ProductName)
	rec := models.InventoryRecord{
		ID:         s.nextID(now, records),
		CreatedAt:  now.UTC(),
		AuthorName: session.AuthorName(),
		Input:      in,
		Result:     q.Result,
		Assessment: q.Assessment,
	}
	next := make([]models.InventoryRecord, 0, len(records)+1)
	next = append(next, rec)
	next = append(next, records...)
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	s.lastID = rec.ID
	s.log.Info().Int64("record_id", rec.ID).Str("product", in.ProductName).Str("zone", in.Zone).Msg("record saved")
	return &rec, nil
}

// nextID is the creation time in ms, bumped past every id already issued.
func (s *CatalogService) nextID(now time.Time, records []models.InventoryRecord) int64 {
	id := now.UnixMilli()
	floor := s.lastID
	for _, r := range records {
		if r.ID > floor {
			floor = r.ID
		}
	}
	if id <= floor {
		id = floor + 1
	}
	return id
}

// Remove deletes the record with id; an unknown id is a no-op.
func (s *CatalogService) Remove(ctx context.Context, session *Session, id int64) error {
	if err := policy.Authorize(session.Role(), policy.OpDeleteRecord); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.InventoryRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}
	s.log.Info().Int64("record_id", id).Msg("record removed")
	return nil
}

// List returns the inventory, most recent first.
func (s *CatalogService) List(ctx context.Context) ([]models.InventoryRecord, error) {
	return s.repo.Load(ctx)
}

// AggregateAcquisitionCost sums the total acquisition cost of every record.
func (s *CatalogService) AggregateAcquisitionCost(ctx context.Context) (float64, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, r := range records {
		total += r.Result.TotalAcquisitionCost
	}
	return total, nil
}

// Dashboard reports the inventory value and the most recent records.
func (s *CatalogService) Dashboard(ctx context.Context, session *Session) (*Dashboard, error) {
	// one snapshot for the value and the records
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	value, err := s.AggregateAcquisitionCost(ctx)
	if err != nil {
		return nil, err
	}
	competitive := 0
	for i := range records {
		if records[i].IsCompetitive() {
			competitive++
		}
	}
	recent := records
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	return &Dashboard{
		InventoryValue:   value,
		ProductCount:     len(records),
		CompetitiveCount: competitive,
		Role:             session.Role(),
		Recent:           recent,
	}, nil
}
