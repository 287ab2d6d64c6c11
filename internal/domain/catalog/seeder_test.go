package catalog

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/vinyl-store/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func seedTestConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			BaseURL: "https://cdn.example.com",
			Bucket:  "Vinyl_images",
		},
		Seed: config.SeedConfig{BatchSize: 2},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Vinyl{}))

	return NewSeeder(db, seedTestConfig(), quietLogger()), db
}

func TestTransformCleansDisplayPrices(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	vinyl, err := seeder.Transform(RawVinyl{
		Name:      "Abbey Road",
		Slug:      "abbey-road",
		Artist:    "The Beatles",
		Price:     "S/ 1,299.90",
		RealPrice: "S/ 1,499.00",
		Genre:     "Rock",
		Image:     "/images/covers/abbey-road.webp",
		Stock:     "5",
	})

	require.NoError(t, err)
	assert.InDelta(t, 1299.90, vinyl.Price, 0.001)
	assert.InDelta(t, 1499.00, vinyl.RealPrice, 0.001)
	assert.Equal(t, 5, vinyl.Stock)
}

func TestTransformAcceptsNumericFields(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	vinyl, err := seeder.Transform(RawVinyl{
		Name:      "Kind of Blue",
		Slug:      "kind-of-blue",
		Artist:    "Miles Davis",
		Price:     95.5,
		RealPrice: 110.0,
		Stock:     3.0,
	})

	require.NoError(t, err)
	assert.InDelta(t, 95.5, vinyl.Price, 0.001)
	assert.Equal(t, 3, vinyl.Stock)
}

func TestTransformDerivesImageURL(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	vinyl, err := seeder.Transform(RawVinyl{
		Name:  "Rumours",
		Slug:  "rumours",
		Price: 105.0, RealPrice: 130.0, Stock: 1.0,
		Image: "/images/covers/rumours.webp",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/storage/v1/object/public/Vinyl_images/rumours.webp", vinyl.Img)
}

func TestTransformBlankTypeBecomesNil(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	vinyl, err := seeder.Transform(RawVinyl{
		Name: "A", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0,
		Type: "  ",
	})

	require.NoError(t, err)
	assert.Nil(t, vinyl.Type)
}

func TestTransformKeepsTrackOrder(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	vinyl, err := seeder.Transform(RawVinyl{
		Name: "A", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0,
		Tracklist: []string{"Come Together", "Something", "Here Comes the Sun"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Come Together", "Something", "Here Comes the Sun"}, vinyl.Tracks())
}

func TestTransformRejectsMissingPrice(t *testing.T) {
	seeder, _ := newTestSeeder(t)

	_, err := seeder.Transform(RawVinyl{Name: "A", Slug: "a", RealPrice: 1.0, Stock: 1.0})

	assert.Error(t, err)
}

func TestRunInsertsAllRecords(t *testing.T) {
	seeder, db := newTestSeeder(t)

	records := []RawVinyl{
		{Name: "A", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0},
		{Name: "B", Slug: "b", Price: 2.0, RealPrice: 2.0, Stock: 2.0},
		{Name: "C", Slug: "c", Price: 3.0, RealPrice: 3.0, Stock: 3.0},
	}

	summary := seeder.Run(records)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Inserted)
	assert.Zero(t, summary.Failed)

	var count int64
	db.Model(&Vinyl{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestRunFallsBackPerRecordOnBatchFailure(t *testing.T) {
	seeder, db := newTestSeeder(t)

	// The duplicate slug breaks its batch; the fallback salvages the rest.
	records := []RawVinyl{
		{Name: "A", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0},
		{Name: "A again", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0},
	}

	summary := seeder.Run(records)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Failed)

	var count int64
	db.Model(&Vinyl{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunSkipsMalformedRecords(t *testing.T) {
	seeder, db := newTestSeeder(t)

	records := []RawVinyl{
		{Name: "A", Slug: "a", Price: 1.0, RealPrice: 1.0, Stock: 1.0},
		{Name: "Broken", Slug: "broken", Price: "not a price", RealPrice: 1.0, Stock: 1.0},
	}

	summary := seeder.Run(records)

	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 1, summary.Failed)

	var count int64
	db.Model(&Vinyl{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
