package main

import (
	"github.com/orgtarefas/planner/internal/config"
	"github.com/orgtarefas/planner/internal/logger"
	"github.com/orgtarefas/planner/internal/mongo"
	"github.com/orgtarefas/planner/internal/mysql"
	"github.com/orgtarefas/planner/internal/routing"
	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/auth"
	"github.com/orgtarefas/planner/pkg/middleware"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	mongoDB := mongo.LoadDB()
	log := logger.Load()

	var accounts account.Directory
	if config.CredStore() == "mysql" {
		db := mysql.LoadDB()
		defer db.Close()
		accounts = account.NewMySQLRepo(db)
	} else {
		accounts = account.NewMongoRepo(mongoDB)
	}

	validator := auth.NewValidator(accounts, nil, log)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(log))
	api.Use(middleware.CheckSession(validator))

	routing.InitRoutes(api, accounts, validator, mongoDB, log)
	routing.ServeStaticFiles(r)
	routing.ServeFallback(r, log)
	routing.StartServer(r) // start server on localhost:8082
}
