package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UnitOfWorkIntegrationTestSuite exercises transactions, role routing and the
// outbox against whatever database open returns.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	open    func() (*gorm.DB, func())
	closeDB func()
	db      *gorm.DB
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	suite.db, suite.closeDB = suite.open()
	suite.Require().NoError(postgres_adapter.Migrate(suite.db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, table := range []string{"outbox_messages", "order_status_history", "order_items", "orders"} {
		suite.Require().NoError(suite.db.Exec("DELETE FROM " + table).Error)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.closeDB != nil {
		suite.closeDB()
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create(ports.PrimaryRole)
	uow2 := suite.factory.Create(ports.PrimaryRole)

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.PrimaryRole)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.PrimaryRole)

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWritesOutbox() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.PrimaryRole)
	testOrder := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	saved, err := uow.OrderRepository().Save(ctx, testOrder)
	suite.Require().NoError(err)
	suite.Require().NoError(saved.Confirm())
	_, err = uow.OrderRepository().Save(ctx, saved)
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertOutboxCount(2)
	suite.Empty(testOrder.Events())

	found, err := suite.factory.Create(ports.ReplicaRole).OrderRepository().FindByID(ctx, saved.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, found.Status())
	suite.Equal(2, found.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsOrderAndOutbox() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.PrimaryRole)
	testOrder := createTestOrder(suite)

	suite.Require().NoError(uow.Begin(ctx))
	saved, err := uow.OrderRepository().Save(ctx, testOrder)
	suite.Require().NoError(err)
	_, err = uow.OrderRepository().FindByID(ctx, saved.ID())
	suite.Require().NoError(err, "the order is visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create(ports.PrimaryRole).OrderRepository().FindByID(ctx, saved.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertOutboxCount(0)
	suite.Len(testOrder.Events(), 1, "events survive a rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.PrimaryRole)

	saved, err := uow.OrderRepository().Save(ctx, createTestOrder(suite))
	suite.Require().NoError(err)

	_, err = suite.factory.Create(ports.ReplicaRole).OrderRepository().FindByID(ctx, saved.ID())
	suite.Require().NoError(err)
	suite.assertOutboxCount(1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReplicaRoleIsReadOnly() {
	ctx := context.Background()
	uow := suite.factory.Create(ports.ReplicaRole)

	_, err := uow.OrderRepository().Save(ctx, createTestOrder(suite))
	suite.Require().ErrorIs(err, ports.ErrReadOnlyUnitOfWork)

	err = uow.OutboxRepository().MarkPublished(ctx, []kernel.UUID{kernel.NewUUID()}, time.Now())
	suite.Require().ErrorIs(err, ports.ErrReadOnlyUnitOfWork)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOutbox_FetchAndMarkPublished() {
	ctx := context.Background()
	repo := suite.factory.Create(ports.PrimaryRole).OrderRepository()
	for range 3 {
		_, err := repo.Save(ctx, createTestOrder(suite))
		suite.Require().NoError(err)
	}

	uow := suite.factory.Create(ports.PrimaryRole)
	suite.Require().NoError(uow.Begin(ctx))
	pending, err := uow.OutboxRepository().FetchPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.Equal("order.status_changed", pending[0].EventName)
	suite.NotEmpty(pending[0].Payload)

	err = uow.OutboxRepository().MarkPublished(ctx, []kernel.UUID{pending[0].ID, pending[1].ID}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	rest, err := suite.factory.Create(ports.PrimaryRole).OutboxRepository().FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(rest, 1)

	var published int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.MessageDTO{}).
		Where("published_at IS NOT NULL").Count(&published).Error)
	suite.Equal(int64(2), published)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOutboxCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.MessageDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "3 Mill Lane", order.DebitCard, "")
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), nil, 1, kernel.MoneyFromInt(12000))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItem(item))
	return testOrder
}

func TestUnitOfWork_SQLite(t *testing.T) {
	suite.Run(t, &UnitOfWorkIntegrationTestSuite{open: func() (*gorm.DB, func()) {
		db, err := postgres_adapter.OpenSQLite(postgres_adapter.InMemorySQLite, logger.Discard)
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("sqlite handle: %v", err)
		}
		return db, func() { _ = sqlDB.Close() }
	}})
}

func TestUnitOfWork_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	suite.Run(t, &UnitOfWorkIntegrationTestSuite{open: func() (*gorm.DB, func()) {
		ctx := context.Background()
		container, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
		)
		if err != nil {
			t.Fatalf("start postgres: %v", err)
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("postgres dsn: %v", err)
		}
		db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		return db, func() { _ = container.Terminate(context.Background()) }
	}})
}
