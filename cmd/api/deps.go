package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"centavo/internal/domain/account"
	"centavo/internal/domain/budget"
	"centavo/internal/domain/category"
	"centavo/internal/domain/goal"
	"centavo/internal/domain/recurring"
	"centavo/internal/domain/report"
	"centavo/internal/domain/transaction"
	"centavo/internal/domain/transfer"
	"centavo/internal/infrastructure/postgres"
	"centavo/internal/infrastructure/rates"
	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/auth"
	"centavo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	UserHandler        *httphandlers.UserHandler
	AccountHandler     *httphandlers.AccountHandler
	TransactionHandler *httphandlers.TransactionHandler
	TransferHandler    *httphandlers.TransferHandler
	CategoryHandler    *httphandlers.CategoryHandler
	BudgetHandler      *httphandlers.BudgetHandler
	RecurringHandler   *httphandlers.RecurringHandler
	GoalHandler        *httphandlers.GoalHandler
	ReportHandler      *httphandlers.ReportHandler

	// Auth
	JWT *auth.JWT

	// Rates cache (for the scheduler's refresh job)
	RatesCache *rates.Cache

	// Redis client for idempotency (nil when REDIS_ADDR is unset)
	Redis *redis.Client

	// Recurring components (for the scheduler job provider)
	RecurringRepo    *postgres.RecurringRepository
	RecurringService *recurring.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	recurringRepo := postgres.NewRecurringRepository(db)
	goalRepo := postgres.NewGoalRepository(db)

	// Initialize the exchange rate provider and snapshot cache
	ratesClient := rates.NewClient(cfg.Rates.URL, cfg.Rates.APIKey, cfg.Rates.BaseCurrency)
	ratesCache := rates.NewCache(ratesClient, cfg.Rates.TTL)

	// Initialize domain services
	accountService := account.NewService(accountRepo)
	transactionService := transaction.NewService(transactionRepo, accountRepo)
	transferService := transfer.NewService(transferRepo, ratesCache, transfer.NewPolicy(cfg.Transfers.OverdraftKinds))
	categoryService := category.NewService(categoryRepo)
	budgetService := budget.NewService(budgetRepo, transactionRepo, ratesCache)
	recurringService := recurring.NewService(recurringRepo, transactionRepo, accountRepo)
	goalService := goal.NewService(goalRepo, accountRepo, ratesCache)
	reportService := report.NewService(accountRepo, ratesCache)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Redis backs the transfer idempotency middleware; without it transfers
	// still work, retries just are not deduplicated
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Printf("Redis idempotency store configured at %s", cfg.Redis.Addr)
	} else {
		log.Println("REDIS_ADDR not set, transfer idempotency disabled")
	}

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		UserHandler:        httphandlers.NewUserHandler(userRepo),
		AccountHandler:     httphandlers.NewAccountHandler(accountService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		TransferHandler:    httphandlers.NewTransferHandler(transferService),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService),
		BudgetHandler:      httphandlers.NewBudgetHandler(budgetService, userRepo),
		RecurringHandler:   httphandlers.NewRecurringHandler(recurringService),
		GoalHandler:        httphandlers.NewGoalHandler(goalService),
		ReportHandler:      httphandlers.NewReportHandler(reportService, userRepo),
		JWT:                jwt,
		RatesCache:         ratesCache,
		Redis:              rdb,
		RecurringRepo:      recurringRepo,
		RecurringService:   recurringService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
