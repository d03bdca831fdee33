package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	awsx "github.com/fbrdigital/invoice-relay/internal/aws"
	"github.com/fbrdigital/invoice-relay/internal/clients"
	"github.com/fbrdigital/invoice-relay/internal/config"
	"github.com/fbrdigital/invoice-relay/internal/fbr"
	"github.com/fbrdigital/invoice-relay/internal/handlers"
	"github.com/fbrdigital/invoice-relay/internal/logger"
	"github.com/fbrdigital/invoice-relay/internal/metrics"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterInvoiceRoutes(r, cfg)

	return r
}

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}

	conf, err := config.New()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	table, err := clients.LoadTable()
	if err != nil {
		// Fail closed: run with an empty table so every request is
		// rejected instead of crashing or serving a partial table.
		log.Errorf("client table unusable, all submissions will be unauthorized: %v", err)
	}
	if len(table) == 0 {
		log.Warnf("client table is empty; set %s to authorize callers", clients.EnvVar)
	}

	var pub *metrics.Publisher
	if conf.Metrics.Enabled {
		awsClients, err := awsx.NewClients(context.Background())
		if err != nil {
			log.Fatalf("failed to init aws clients: %v", err)
		}
		pub = metrics.NewPublisher(awsClients.CloudWatch)
	}

	gw := fbr.NewHTTPGateway(
		conf.Gateway.URL,
		time.Duration(conf.Gateway.TimeoutSeconds)*time.Second,
		conf.Gateway.InsecureSkipVerify,
	)

	r := setupRouter(handlers.HandlerConfig{
		Profiles: table,
		Gateway:  gw,
		Metrics:  pub,
		Logger:   log,
	})

	// if RUN_LOCAL is set to "true", run a local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		log.Infof("running local server on %s", conf.Server.Address)
		if err := r.Run(conf.Server.Address); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
