package routing

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orgtarefas/planner/internal/config"
	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/auth"
	"github.com/orgtarefas/planner/pkg/handlers"
	"github.com/orgtarefas/planner/pkg/task"
)

const staticPath = "./static"

func InitRoutes(api *mux.Router, accounts account.Directory, validator *auth.Validator, mongoDB *mongo.Database, logger *slog.Logger) {

	authService := auth.NewService(accounts, nil, logger)
	if ttl := config.SessionLifetime(); ttl > 0 {
		authService.Lifetime = ttl
		validator.Lifetime = ttl
	}
	authHandler := handlers.NewAuthHandler(authService, validator, accounts, logger)

	taskService := task.NewService(task.NewMongoRepo(mongoDB))
	taskHandler := handlers.NewTaskHandler(taskService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("").Subrouter()
	usersRouter := api.PathPrefix("/users").Subrouter()
	tasksRouter := api.PathPrefix("/tasks").Subrouter()
	taskRouter := api.PathPrefix("/task").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/login", authHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/logout", authHandler.Logout).Methods("POST").Name("logout")
	authRouter.HandleFunc("/session", authHandler.Session).Methods("GET").Name("session")

	/* users routers */
	usersRouter.HandleFunc("", authHandler.Users).Methods("GET")

	/* tasks routers */
	tasksRouter.HandleFunc("", taskHandler.CreateTask).Methods("POST")
	tasksRouter.HandleFunc("", taskHandler.GetTasks).Methods("GET")
	tasksRouter.HandleFunc("/stats", taskHandler.GetStats).Methods("GET")

	/* task routers */
	taskRouter.HandleFunc("/{task_id:[a-zA-Z0-9]+}", taskHandler.GetTaskByID).Methods("GET")
	taskRouter.HandleFunc("/{task_id:[a-zA-Z0-9]+}", taskHandler.UpdateTask).Methods("PUT")
	taskRouter.HandleFunc("/{task_id:[a-zA-Z0-9]+}", taskHandler.DeleteTask).Methods("DELETE")
}

func ServeStaticFiles(r *mux.Router) {
	fs := http.FileServer(http.Dir(staticPath))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("[]")); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, "static/html/index.html")
	})
}

func StartServer(r *mux.Router) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost:8082", "\033[0m")
	if err := http.ListenAndServe(":8082", r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
