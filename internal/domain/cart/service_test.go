package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMirrorService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Vinyl{}, &ShopCartItem{}))

	return NewService(db, &config.Config{}), db
}

func mirrorVinyl(t *testing.T, db *gorm.DB, id uint, title string, price float64, stock int) {
	t.Helper()
	require.NoError(t, db.Create(&catalog.Vinyl{
		ID: id, Title: title, Slug: title, Artist: "x", Price: price, Stock: stock,
	}).Error)
}

func TestAddItemCreatesLine(t *testing.T) {
	svc, db := newMirrorService(t)
	mirrorVinyl(t, db, 1, "abbey-road", 50, 5)

	require.NoError(t, svc.AddItem(3, 1))

	response, err := svc.GetUserCart(3)
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	assert.Equal(t, 1, response.Items[0].Quantity)
	assert.InDelta(t, 50, response.Total, 0.001)
}

func TestAddItemIncrementsUpToStock(t *testing.T) {
	svc, db := newMirrorService(t)
	mirrorVinyl(t, db, 1, "abbey-road", 50, 2)

	require.NoError(t, svc.AddItem(3, 1))
	require.NoError(t, svc.AddItem(3, 1))

	err := svc.AddItem(3, 1)

	var insufficient *catalog.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	response, _ := svc.GetUserCart(3)
	assert.Equal(t, 2, response.Items[0].Quantity)
}

func TestAddItemUnknownVinyl(t *testing.T) {
	svc, _ := newMirrorService(t)

	err := svc.AddItem(3, 42)

	var notFound *catalog.VinylNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestUpdateItemZeroRemovesLine(t *testing.T) {
	svc, db := newMirrorService(t)
	mirrorVinyl(t, db, 1, "abbey-road", 50, 5)
	require.NoError(t, svc.AddItem(3, 1))

	require.NoError(t, svc.UpdateItem(3, 1, 0))

	response, _ := svc.GetUserCart(3)
	assert.Empty(t, response.Items)
}

func TestUpdateItemRejectsAboveStock(t *testing.T) {
	svc, db := newMirrorService(t)
	mirrorVinyl(t, db, 1, "abbey-road", 50, 3)
	require.NoError(t, svc.AddItem(3, 1))

	err := svc.UpdateItem(3, 1, 4)

	var insufficient *catalog.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	response, _ := svc.GetUserCart(3)
	assert.Equal(t, 1, response.Items[0].Quantity)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, db := newMirrorService(t)
	mirrorVinyl(t, db, 1, "abbey-road", 50, 5)

	require.NoError(t, svc.AddItem(3, 1))
	require.NoError(t, svc.AddItem(4, 1))
	require.NoError(t, svc.ClearUserCart(3))

	forThree, _ := svc.GetUserCart(3)
	forFour, _ := svc.GetUserCart(4)
	assert.Empty(t, forThree.Items)
	assert.Len(t, forFour.Items, 1)
}
