package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/tnqbao/gau-file-metadata/config"
	"github.com/tnqbao/gau-file-metadata/http/controller"
	routes "github.com/tnqbao/gau-file-metadata/http/route"
	infraPkg "github.com/tnqbao/gau-file-metadata/infra"
	"github.com/tnqbao/gau-file-metadata/repository"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitAPIInfra(cfg)
	repo := repository.InitRepository(infra)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :" + cfg.EnvConfig.Server.Port)
	if err := router.Run(":" + cfg.EnvConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
