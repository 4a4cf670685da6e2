package main

import (
	"fmt"
	"log"

	"costledger/internal/billing"
	"costledger/internal/burden"
	"costledger/internal/capitalization"
	"costledger/internal/collector"
	"costledger/internal/config"
	"costledger/internal/crosscharge"
	"costledger/internal/database"
	"costledger/internal/distribution"
	"costledger/internal/handlers"
	"costledger/internal/performance"
	"costledger/internal/reporting"
	"costledger/internal/server"
	"costledger/internal/template"
	"costledger/internal/workflow"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	h := &handlers.Handler{
		Collector:      collector.New(db),
		Burden:         burden.New(db),
		Distribution:   distribution.New(db, distribution.StaticResolver{}),
		Capitalization: capitalization.New(db, capitalization.UUIDRegister{}),
		CrossCharge:    crosscharge.New(db),
		Performance:    performance.New(db),
		Workflow:       workflow.New(db),
		Billing:        billing.New(db),
		Template:       template.New(db),
		Reporting:      reporting.New(db),
	}

	r := server.NewRouter(h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
