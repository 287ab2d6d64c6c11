// internal/domain/catalog/seeder.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/infrastructure/storage"
	"gorm.io/gorm"
)

// RawVinyl is one record of the catalog export consumed by the seeder.
// Numeric fields arrive either as numbers or as display strings
// (e.g. "S/ 1,299.90"), so they are decoded loosely and cleaned here.
type RawVinyl struct {
	Name      string   `json:"nombre"`
	Slug      string   `json:"slug"`
	Artist    string   `json:"artista"`
	Price     any      `json:"precio"`
	RealPrice any      `json:"precio_real"`
	Genre     string   `json:"genero"`
	Tracklist []string `json:"tracklist"`
	Image     string   `json:"imagen"`
	Type      string   `json:"type"`
	Stock     any      `json:"stock"`
}

// SeedSummary accounts for a seeding run
type SeedSummary struct {
	Total    int
	Inserted int
	Failed   int
}

// Seeder loads catalog exports into the vinyls table in fixed-size
// batches, falling back to per-record inserts when a batch fails.
// Re-running is not idempotent; the unique slug index is what turns a
// duplicate run into per-row failures instead of duplicate rows.
type Seeder struct {
	db        *gorm.DB
	images    *storage.ImageResolver
	batchSize int
	logger    *logrus.Logger
}

// NewSeeder creates a new catalog seeder
func NewSeeder(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Seeder {
	return &Seeder{
		db:        db,
		images:    storage.NewImageResolver(cfg),
		batchSize: cfg.Seed.BatchSize,
		logger:    logger,
	}
}

// Transform converts a raw export record into a catalog entity
func (s *Seeder) Transform(raw RawVinyl) (*Vinyl, error) {
	price, err := parsePrice(raw.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price for %q: %w", raw.Name, err)
	}

	realPrice, err := parsePrice(raw.RealPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid real price for %q: %w", raw.Name, err)
	}

	stock, err := parseStock(raw.Stock)
	if err != nil {
		return nil, fmt.Errorf("invalid stock for %q: %w", raw.Name, err)
	}

	vinyl := &Vinyl{
		Title:     raw.Name,
		Slug:      raw.Slug,
		Artist:    raw.Artist,
		Price:     price,
		RealPrice: realPrice,
		Genre:     raw.Genre,
		Img:       s.images.PublicURL(storage.ImageNameFromPath(raw.Image)),
		Stock:     stock,
	}
	if err := vinyl.SetTracks(raw.Tracklist); err != nil {
		return nil, fmt.Errorf("invalid tracklist for %q: %w", raw.Name, err)
	}
	if t := strings.TrimSpace(raw.Type); t != "" {
		vinyl.Type = &t
	}

	return vinyl, nil
}

// Run transforms and inserts all records, batch by batch
func (s *Seeder) Run(records []RawVinyl) SeedSummary {
	summary := SeedSummary{Total: len(records)}

	s.logger.WithField("count", len(records)).Info("Starting catalog seeding")

	var transformed []Vinyl
	for _, raw := range records {
		vinyl, err := s.Transform(raw)
		if err != nil {
			s.logger.WithError(err).WithField("title", raw.Name).Error("Skipping malformed record")
			summary.Failed++
			continue
		}
		transformed = append(transformed, *vinyl)
	}

	totalBatches := (len(transformed) + s.batchSize - 1) / s.batchSize
	for i := 0; i < len(transformed); i += s.batchSize {
		end := i + s.batchSize
		if end > len(transformed) {
			end = len(transformed)
		}
		batch := transformed[i:end]
		batchNumber := i/s.batchSize + 1

		s.logger.WithFields(logrus.Fields{
			"batch":   batchNumber,
			"batches": totalBatches,
			"size":    len(batch),
		}).Info("Inserting batch")

		if err := s.db.Create(&batch).Error; err != nil {
			s.logger.WithError(err).WithField("batch", batchNumber).Warn("Batch insert failed, retrying records individually")
			inserted, failed := s.insertIndividually(batch)
			summary.Inserted += inserted
			summary.Failed += failed
			continue
		}

		summary.Inserted += len(batch)
	}

	s.logger.WithFields(logrus.Fields{
		"total":    summary.Total,
		"inserted": summary.Inserted,
		"failed":   summary.Failed,
	}).Info("Catalog seeding finished")

	return summary
}

// insertIndividually is the per-record fallback after a failed batch
func (s *Seeder) insertIndividually(batch []Vinyl) (inserted, failed int) {
	for i := range batch {
		vinyl := batch[i]
		vinyl.ID = 0
		if err := s.db.Create(&vinyl).Error; err != nil {
			s.logger.WithError(err).WithField("title", vinyl.Title).Error("Record insert failed")
			failed++
			continue
		}
		inserted++
	}
	return inserted, failed
}

// Verify reads back the table and logs a short sample of what landed
func (s *Seeder) Verify() error {
	var count int64
	if err := s.db.Model(&Vinyl{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count vinyls: %w", err)
	}

	var sample []Vinyl
	if err := s.db.Order("id ASC").Limit(3).Find(&sample).Error; err != nil {
		return fmt.Errorf("failed to read back vinyls: %w", err)
	}

	s.logger.WithField("count", count).Info("Vinyls in database")
	for _, vinyl := range sample {
		s.logger.WithFields(logrus.Fields{
			"title":  vinyl.Title,
			"artist": vinyl.Artist,
			"price":  vinyl.Price,
			"stock":  vinyl.Stock,
		}).Info("Seeded vinyl")
	}

	return nil
}

func parsePrice(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(v, "S/", ""), ",", ""))
		return strconv.ParseFloat(cleaned, 64)
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func parseStock(value any) (int, error) {
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}
