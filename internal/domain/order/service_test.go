package order

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/vinyl-store/internal/config"
	"github.com/your-org/vinyl-store/internal/domain/cart"
	"github.com/your-org/vinyl-store/internal/domain/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-that-is-long-enough-0",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
		Seed:     config.SeedConfig{BatchSize: 50},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Vinyl{},
		&cart.ShopCartItem{},
		&Order{},
		&OrderItem{},
	))

	cfg := testConfig()
	catalogService := catalog.NewService(db, cfg)
	cartService := cart.NewService(db, cfg)

	return NewService(db, cfg, catalogService, cartService, quietLogger()), db
}

func seedVinyl(t *testing.T, db *gorm.DB, id uint, title string, price float64, stock int) {
	t.Helper()
	vinyl := catalog.Vinyl{
		ID:     id,
		Title:  title,
		Slug:   title,
		Artist: "Test Artist",
		Price:  price,
		Stock:  stock,
	}
	require.NoError(t, db.Create(&vinyl).Error)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Checkout(nil, &CheckoutRequest{Items: []CheckoutItem{}, Total: 0})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUnknownVinyl(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Checkout(nil, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 42, Quantity: 1, Price: 50}},
		Total: 50,
	})

	var notFound *catalog.VinylNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(42), notFound.ID)

	var count int64
	db.Model(&Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 2)

	_, err := svc.Checkout(nil, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 7, Quantity: 3, Price: 50.00, Title: "Abbey Road"}},
		Total: 150.00,
	})

	var insufficient *catalog.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Abbey Road", insufficient.Title)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 3, insufficient.Requested)

	var orderCount, itemCount int64
	db.Model(&Order{}).Count(&orderCount)
	db.Model(&OrderItem{}).Count(&itemCount)
	assert.Zero(t, orderCount, "no order may be recorded on a failed checkout")
	assert.Zero(t, itemCount)

	var vinyl catalog.Vinyl
	require.NoError(t, db.First(&vinyl, 7).Error)
	assert.Equal(t, 2, vinyl.Stock, "stock must be untouched on a failed checkout")
}

func TestCheckoutTotalMismatch(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)

	_, err := svc.Checkout(nil, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 7, Quantity: 2, Price: 50.00}},
		Total: 80.00,
	})

	assert.ErrorIs(t, err, ErrTotalMismatch)

	var count int64
	db.Model(&Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutSuccess(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)
	userID := uint(3)

	result, err := svc.Checkout(&userID, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 7, Quantity: 2, Price: 50.00, Title: "Abbey Road"}},
		Total: 100.00,
	})

	require.NoError(t, err)
	require.NotZero(t, result.OrderID)
	assert.InDelta(t, 100.00, result.Total, 0.001)

	var ord Order
	require.NoError(t, db.Preload("Items").First(&ord, result.OrderID).Error)
	assert.Equal(t, OrderStatusCompleted, ord.Status)
	require.NotNil(t, ord.UserID)
	assert.Equal(t, userID, *ord.UserID)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, uint(7), ord.Items[0].VinylID)
	assert.Equal(t, 2, ord.Items[0].Quantity)
	assert.InDelta(t, 50.00, ord.Items[0].PurchasePrice, 0.001)

	var vinyl catalog.Vinyl
	require.NoError(t, db.First(&vinyl, 7).Error)
	assert.Equal(t, 3, vinyl.Stock)
}

func TestCheckoutGuestOrderKeepsBodyUserID(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)
	bodyUserID := uint(9)

	result, err := svc.Checkout(nil, &CheckoutRequest{
		Items:  []CheckoutItem{{ID: 7, Quantity: 1, Price: 50.00}},
		Total:  50.00,
		UserID: &bodyUserID,
	})

	require.NoError(t, err)

	var ord Order
	require.NoError(t, db.First(&ord, result.OrderID).Error)
	require.NotNil(t, ord.UserID)
	assert.Equal(t, bodyUserID, *ord.UserID)
}

func TestCheckoutSessionIdentityWinsOverBody(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)
	sessionUserID := uint(3)
	bodyUserID := uint(9)

	result, err := svc.Checkout(&sessionUserID, &CheckoutRequest{
		Items:  []CheckoutItem{{ID: 7, Quantity: 1, Price: 50.00}},
		Total:  50.00,
		UserID: &bodyUserID,
	})

	require.NoError(t, err)

	var ord Order
	require.NoError(t, db.First(&ord, result.OrderID).Error)
	require.NotNil(t, ord.UserID)
	assert.Equal(t, sessionUserID, *ord.UserID)
}

func TestCheckoutClearsUserCartMirror(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)
	userID := uint(3)
	require.NoError(t, db.Create(&cart.ShopCartItem{UserID: userID, VinylID: 7, Quantity: 2}).Error)

	_, err := svc.Checkout(&userID, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 7, Quantity: 2, Price: 50.00}},
		Total: 100.00,
	})

	require.NoError(t, err)

	var count int64
	db.Model(&cart.ShopCartItem{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutGuestLeavesOtherCartsAlone(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 5)
	require.NoError(t, db.Create(&cart.ShopCartItem{UserID: 4, VinylID: 7, Quantity: 1}).Error)

	_, err := svc.Checkout(nil, &CheckoutRequest{
		Items: []CheckoutItem{{ID: 7, Quantity: 1, Price: 50.00}},
		Total: 50.00,
	})

	require.NoError(t, err)

	var count int64
	db.Model(&cart.ShopCartItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetUserOrdersNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	seedVinyl(t, db, 7, "Abbey Road", 50.00, 10)
	userID := uint(3)

	for i := 0; i < 3; i++ {
		_, err := svc.Checkout(&userID, &CheckoutRequest{
			Items: []CheckoutItem{{ID: 7, Quantity: 1, Price: 50.00}},
			Total: 50.00,
		})
		require.NoError(t, err)
	}

	response, err := svc.GetUserOrders(userID, 1, 20)

	require.NoError(t, err)
	assert.Len(t, response.Orders, 3)
	assert.Equal(t, int64(3), response.Pagination.Total)
}
