package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	shopserver "github.com/Apurer/go-gin-shop-api/go"

	itemsobs "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/observability"
	itemspostgres "github.com/Apurer/go-gin-shop-api/internal/domains/items/adapters/persistence/postgres"
	itemsapp "github.com/Apurer/go-gin-shop-api/internal/domains/items/application"
	itemports "github.com/Apurer/go-gin-shop-api/internal/domains/items/ports"
	membersobs "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/observability"
	memberspostgres "github.com/Apurer/go-gin-shop-api/internal/domains/members/adapters/persistence/postgres"
	membersapp "github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	ordersobs "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application/query"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-shop-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-api/internal/platform/postgres"
)

// Dependencies are the process-wide resources the application is built on.
type Dependencies struct {
	DB          *gorm.DB
	Instruments *platformobservability.Instruments
	// Workflows, when set, takes over order placement from the inline path.
	Workflows        orderports.WorkflowOrchestrator
	OrderSearchLimit int
	DefaultPageLimit int
}

// Application holds the decorated services and the HTTP handlers over them.
type Application struct {
	Members  memberports.Service
	Items    itemports.Service
	Orders   orderports.Service
	Queries  orderports.QueryService
	Handlers shopserver.ApiHandleFunctions
	logger   *slog.Logger
}

// Build wires repositories, services, decorators and handlers over one database.
func Build(deps Dependencies) *Application {
	instruments := deps.Instruments
	logger := slog.New(slog.DiscardHandler)
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	tx := platformpostgres.NewTransactor(deps.DB)

	memberRepo := memberspostgres.NewRepository(deps.DB)
	itemRepo := itemspostgres.NewRepository(deps.DB)
	orderRepo := orderspostgres.NewRepository(deps.DB)

	members := membersobs.New(
		membersapp.NewService(memberRepo, tx),
		membersobs.WithLogger(logger),
		membersobs.WithTracer(instruments.Tracer("internal.members.application")),
		membersobs.WithMeter(instruments.Meter("internal.members.application")),
	)
	items := itemsobs.New(
		itemsapp.NewService(itemRepo, tx),
		itemsobs.WithLogger(logger),
		itemsobs.WithTracer(instruments.Tracer("internal.items.application")),
		itemsobs.WithMeter(instruments.Meter("internal.items.application")),
	)
	orders := ordersobs.New(
		ordersapp.NewService(orderRepo, memberRepo, itemRepo, tx,
			ordersapp.WithIdempotencyStore(orderspostgres.NewIdempotencyStore(deps.DB))),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	queries := ordersobs.NewQueries(
		query.NewBuilder(orderRepo, orderspostgres.NewLoader(deps.DB), orderspostgres.NewQueryRepository(deps.DB), tx,
			query.WithSearchLimit(deps.OrderSearchLimit)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.query")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.query")),
	)

	workflows := deps.Workflows
	if workflows == nil {
		workflows = ordersworkflows.NewInlineOrderWorkflows(orders)
	}

	return &Application{
		Members: members,
		Items:   items,
		Orders:  orders,
		Queries: queries,
		Handlers: shopserver.ApiHandleFunctions{
			MemberAPI:     shopserver.NewMemberAPI(members),
			ItemAPI:       shopserver.NewItemAPI(items),
			OrderAPI:      shopserver.NewOrderAPI(orders, workflows, queries),
			OrderQueryAPI: shopserver.NewOrderQueryAPI(queries, deps.DefaultPageLimit),
		},
		logger: logger,
	}
}

// Router returns the gin engine serving the application.
func (a *Application) Router(serviceName string) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		shopserver.RequestID(a.logger),
		shopserver.QueryCount(),
	)
	return shopserver.NewRouterWithGinEngine(router, a.Handlers)
}
