package stock

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fleetops/depot-backend/internal/stock/cache"
	"github.com/fleetops/depot-backend/internal/stock/client"
	"github.com/fleetops/depot-backend/internal/stock/domain"
	"github.com/fleetops/depot-backend/internal/stock/repository"
	"github.com/fleetops/depot-backend/internal/stock/usecase/command"
)

// Deps carries the external service dependencies the stock handler
// needs besides the database
type Deps struct {
	UserServiceURL string
	RedisClient    *redis.Client
	Publisher      command.MovementPublisher
}

// ProvideResourceRepository provides the resource repository
func ProvideResourceRepository(db *gorm.DB) domain.ResourceRepository {
	return repository.NewGormResourceRepository(db)
}

// ProvideLedgerRepository provides the attribution ledger repository
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepository(db)
}

// ProvideMovementRepository provides the movement log repository
func ProvideMovementRepository(db *gorm.DB) domain.MovementRepository {
	return repository.NewGormMovementRepository(db)
}

// ProvideDepotRepository provides the depot repository
func ProvideDepotRepository(db *gorm.DB) domain.DepotRepository {
	return repository.NewGormDepotRepository(db)
}

// ProvideReservationStore provides the traced reservation store
func ProvideReservationStore(db *gorm.DB) domain.ReservationStore {
	return repository.NewGormReservationStoreWithTracing(db)
}

// ProvideTechnicianDirectory provides the user service client, or nil
// when no user service is configured
func ProvideTechnicianDirectory(deps Deps) command.TechnicianDirectory {
	if deps.UserServiceURL == "" {
		return nil
	}
	return client.NewUserServiceClient(deps.UserServiceURL)
}

// ProvideAggregateCache provides the redis-backed aggregate cache
func ProvideAggregateCache(deps Deps) domain.AggregateCache {
	return cache.NewAggregateCache(deps.RedisClient)
}

// ProvidePublisher passes through the optional kafka publisher
func ProvidePublisher(deps Deps) command.MovementPublisher {
	return deps.Publisher
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideResourceRepository,
	ProvideLedgerRepository,
	ProvideMovementRepository,
	ProvideDepotRepository,
	ProvideReservationStore,
)

var ServiceSet = wire.NewSet(
	ProvideTechnicianDirectory,
	ProvideAggregateCache,
	ProvidePublisher,
)
