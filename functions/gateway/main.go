package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/awslabs/aws-lambda-go-api-proxy/gorillamux"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/meetnearme/identity-api/functions/gateway/config"
	"github.com/meetnearme/identity-api/functions/gateway/constants"
	"github.com/meetnearme/identity-api/functions/gateway/handlers"
	"github.com/meetnearme/identity-api/functions/gateway/helpers"
	"github.com/meetnearme/identity-api/functions/gateway/logging"
	"github.com/meetnearme/identity-api/functions/gateway/services"
	"github.com/meetnearme/identity-api/functions/gateway/services/cognito_service"
	"github.com/meetnearme/identity-api/functions/gateway/transport"
)

var local = flag.Bool("local", false, "serve the API over plain HTTP instead of starting the Lambda runtime")

type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

func UserRoutes(h *handlers.UserHandler) []Route {
	return []Route{
		{"/user", http.MethodPost, h.CreateUser},
		// answers a lookup without an identifier with 400 rather than 405
		{"/user", http.MethodGet, h.GetUser},
		{"/user/{" + constants.CPF_KEY + "}", http.MethodGet, h.GetUser},
	}
}

type App struct {
	Router *mux.Router
	Logger *zap.Logger
}

func NewApp(logger *zap.Logger) *App {
	app := &App{
		Router: mux.NewRouter(),
		Logger: logger,
	}
	app.Router.Use(app.withRequestLogger)
	return app
}

func (app *App) SetupRoutes(routes []Route) {
	for _, route := range routes {
		app.Router.HandleFunc(route.Path, route.Handler).Methods(route.Method).Name(route.Method + " " + route.Path)
	}
}

// SetupFallbackHandlers answers unmatched requests. mux skips middleware for
// these, so the request logger is attached explicitly.
func (app *App) SetupFallbackHandlers() {
	app.Router.NotFoundHandler = app.withRequestLogger(http.HandlerFunc(handlers.NotFound))
	app.Router.MethodNotAllowedHandler = app.withRequestLogger(http.HandlerFunc(handlers.MethodNotAllowed))
}

// Middleware to inject a request scoped logger and request id into the context
func (app *App) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := helpers.ResolveRequestID(r)
		logger := app.Logger.With(zap.String("request_id", requestID))

		ctx := helpers.WithRequestID(r.Context(), requestID)
		ctx = logging.WithContext(ctx, logger)
		w.Header().Set(constants.REQUEST_ID_HEADER, requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Debug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// LambdaHandler adapts the router to API Gateway REST proxy events.
func LambdaHandler(router *mux.Router) func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	adapter := gorillamux.New(router)
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = context.WithValue(ctx, constants.ApiGwReqKey, request)
		res, err := adapter.ProxyWithContext(ctx, *core.NewSwitchableAPIGatewayRequestV1(&request))
		if res == nil || res.Version1() == nil {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
		}
		return *res.Version1(), err
	}
}

func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func() error, error) {
	cognitoClient, err := transport.CreateCognitoClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	publisher, err := services.GetUserEventPublisher(logging.WithContext(ctx, logger), cfg)
	if err != nil {
		return nil, nil, err
	}

	userService := cognito_service.NewUserService(cognitoClient, publisher, cognito_service.UserServiceConfig{
		UserPoolID:            cfg.UserPoolID,
		IdentifierAttribute:   cfg.IdentifierAttribute,
		PageSize:              cfg.ListUsersPageSize,
		Timeout:               cfg.UpstreamTimeout,
		SuppressInviteMessage: cfg.SuppressInviteMessage,
	})

	app := NewApp(logger)
	app.SetupRoutes(UserRoutes(handlers.NewUserHandler(userService, cfg.ExposeUpstreamErrors)))
	app.SetupFallbackHandlers()
	return app, publisher.Close, nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ERR: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		log.Fatalf("ERR: %v", err)
	}
	defer logger.Sync()

	app, closeApp, err := BuildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}
	defer closeApp()

	if *local {
		addr := fmt.Sprintf(":%d", cfg.LocalPort)
		logger.Info("serving locally", zap.String("addr", addr))
		server := &http.Server{
			Addr:              addr,
			Handler:           app.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("local server stopped", zap.Error(err))
		}
		return
	}

	lambda.Start(LambdaHandler(app.Router))
}
