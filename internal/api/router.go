package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/librisys/library-system/internal/api/handler"
	"github.com/librisys/library-system/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// db and rdb may be nil when the service runs on the in-memory driver; they
// are only consulted by the readiness probe.
func NewRouter(
	books ports.BookService,
	users ports.UserService,
	loans ports.LoanService,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	bookHandler := handler.NewBookHandler(books)
	userHandler := handler.NewUserHandler(users)
	loanHandler := handler.NewLoanHandler(loans)

	// --- Book routes ---
	v1 := e.Group("/v1")
	v1.POST("/books", bookHandler.Register)
	v1.GET("/books", bookHandler.List)
	v1.GET("/books/:isbn", bookHandler.Get)
	v1.PUT("/books/:isbn", bookHandler.Update)
	v1.DELETE("/books/:isbn", bookHandler.Delete)
	v1.GET("/books/:isbn/loans", loanHandler.ListByBook)

	// --- User routes ---
	v1.POST("/users", userHandler.Register)
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.PUT("/users/:id", userHandler.Update)
	v1.GET("/users/:id/loans", loanHandler.ListByUser)

	// --- Loan routes ---
	v1.POST("/loans", loanHandler.Create)
	v1.GET("/loans", loanHandler.List)
	v1.GET("/loans/overdue", loanHandler.ListOverdue)
	v1.GET("/loans/:id", loanHandler.Get)
	v1.GET("/loans/:id/overdue", loanHandler.GetOverdue)
	v1.POST("/loans/:id/return", loanHandler.Return)

	// --- Reports ---
	v1.GET("/reports/loans", loanHandler.Report)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
