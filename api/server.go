package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alex-pricope/nomination-board/api/controllers"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/reconcile"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// OpenBackend connects the storage backend named in the config.
func OpenBackend(ctx context.Context, conf StorageConfig) (*storage.Backend, error) {
	switch conf.Backend {
	case "", "memory":
		logging.Log.Warn("Using the in-memory backend, data is lost on restart")
		return storage.NewMemoryBackend(), nil
	case "relational":
		db, err := storage.OpenRelational(conf.DSN)
		if err != nil {
			return nil, err
		}
		return storage.NewRelationalBackend(db), nil
	case "keyvalue":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if conf.DynamoEndpoint != "" {
				o.BaseEndpoint = &conf.DynamoEndpoint
			}
		})
		if err := storage.EnsureDynamoTables(ctx, client, conf.Tables); err != nil {
			return nil, err
		}
		return storage.NewDynamoBackend(client, conf.Tables), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
	}
}

// SeedBackend installs the default persons and admin when the backend is empty.
func SeedBackend(ctx context.Context, b *storage.Backend, conf *Config) error {
	return storage.Seed(ctx, b, storage.SeedOptions{
		AdminUsername: conf.DefaultAdminUser,
		AdminPassword: conf.DefaultAdminPassword,
	})
}

// BuildEngine registers every controller on a new router.
func BuildEngine(ginMode string, b *storage.Backend, issuer *auth.TokenIssuer, reconciler *reconcile.Reconciler) *gin.Engine {
	r := transport.NewRouter(ginMode)
	service := voting.NewService(b)

	//Register controllers
	controllers.NewPersonsController(service, issuer).RegisterRoutes(r)
	controllers.NewNominationsController(service, issuer).RegisterRoutes(r)
	controllers.NewPointsController(service, issuer).RegisterRoutes(r)
	controllers.NewAdminController(b.Admins, issuer, reconciler).RegisterRoutes(r)

	return r
}

func (s *Server) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := OpenBackend(ctx, s.config.StorageConfig)
	if err != nil {
		cancel()
		logging.Log.Fatalf("failed to open %s storage: %v", s.config.Backend, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logging.Log.Errorf("failed to close storage: %v", err)
		}
	}()

	if s.config.SeedEnabled {
		if err := SeedBackend(ctx, backend, s.config); err != nil {
			cancel()
			logging.Log.Fatalf("failed to seed storage: %v", err)
		}
	}
	cancel()

	issuer, err := auth.NewTokenIssuer(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		logging.Log.Fatalf("failed to create token issuer: %v", err)
	}
	reconciler := reconcile.NewReconciler(backend)
	r := BuildEngine(s.config.Mode, backend, issuer, reconciler)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		if s.config.ReconcileSchedule != "" {
			c, err := reconciler.Schedule(s.config.ReconcileSchedule)
			if err != nil {
				logging.Log.Fatalf("failed to schedule reconciliation: %v", err)
			}
			defer c.Stop()
		}
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
