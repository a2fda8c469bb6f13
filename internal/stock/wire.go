//go:build wireinject
// +build wireinject

package stock

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/delivery/http"
)

// InitializeHTTPHandler initializes the stock HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, deps Deps) (*http.StockHandler, error) {
	wire.Build(
		RepositorySet,
		ServiceSet,
		http.NewStockHandler,
	)
	return nil, nil
}

// InitializeMovementHandler initializes the movement log HTTP handler
func InitializeMovementHandler(db *gorm.DB) (*http.MovementHandler, error) {
	wire.Build(
		ProvideMovementRepository,
		http.NewMovementHandler,
	)
	return nil, nil
}

// InitializeDepotHandler initializes the depot HTTP handler
func InitializeDepotHandler(db *gorm.DB) (*http.DepotHandler, error) {
	wire.Build(
		ProvideDepotRepository,
		http.NewDepotHandler,
	)
	return nil, nil
}
