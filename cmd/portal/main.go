package main

import (
	stdlog "log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fbrdigital/invoice-relay/internal/auth"
	"github.com/fbrdigital/invoice-relay/internal/config"
	"github.com/fbrdigital/invoice-relay/internal/handlers"
	"github.com/fbrdigital/invoice-relay/internal/logger"
	"github.com/fbrdigital/invoice-relay/internal/refdata"
	"github.com/fbrdigital/invoice-relay/internal/session"
)

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

	ref, err := refdata.Load(conf.Portal.ReferenceCSV)
	if err != nil {
		// The form is unusable without its dropdowns.
		log.Fatalf("cannot load reference data from %q: %v", conf.Portal.ReferenceCSV, err)
	}

	authn, err := auth.NewStaticFromEnv()
	if err != nil {
		log.Errorf("portal user table unusable, all logins will fail: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterPortalRoutes(r, handlers.PortalConfig{
		Auth:      authn,
		Sessions:  session.NewStore(),
		Reference: ref,
		RelayURL:  conf.Portal.RelayURL,
		Client:    &http.Client{Timeout: 30 * time.Second},
		Logger:    log,
	})

	log.Infof("portal listening on %s", conf.Portal.Address)
	if err := r.Run(conf.Portal.Address); err != nil {
		log.Fatalf("failed to run portal server: %v", err)
	}
}
