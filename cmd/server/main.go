package main

import (
	"github.com/sirupsen/logrus"

	"autoshop-erp/internal/config"
	"autoshop-erp/internal/database"
	"autoshop-erp/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	r := server.NewRouter(cfg)

	addr := ":" + cfg.ServerPort
	logrus.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}
