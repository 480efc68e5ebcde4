package main

import (
	"fmt"
	"log"

	"github.com/Dev-Pakorn/CKLab/internal/config"
	"github.com/Dev-Pakorn/CKLab/internal/database"
	"github.com/Dev-Pakorn/CKLab/internal/poll"
	"github.com/Dev-Pakorn/CKLab/internal/registry"
	"github.com/Dev-Pakorn/CKLab/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// load desk/zone registry
	store, err := registry.Load(db)
	if err != nil {
		log.Fatalf("load registry: %v", err)
	}

	// setup router
	r, monitor := router.SetupRouter(cfg, db, store)

	// periodic monitor snapshot refresh, held off during admin edits
	monitor.Refresh()
	scheduler, err := poll.New(cfg.Monitor.Interval(), monitor.RefreshAllowed, monitor.Refresh)
	if err != nil {
		log.Fatalf("start poller: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
