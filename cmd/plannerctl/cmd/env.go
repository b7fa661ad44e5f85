package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orgtarefas/planner/pkg/account"
	"github.com/orgtarefas/planner/pkg/session"
)

const connectTimeout = 10 * time.Second

func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{}))
}

// openStore connects to the credential store directly, no
// intermediary server.
func openStore(ctx context.Context) (account.Directory, func(), error) {
	_ = godotenv.Load()

	uri := os.Getenv("MONGO_URI")
	dbName := os.Getenv("MONGO_DB_NAME")
	if uri == "" || dbName == "" {
		return nil, nil, errors.New("MONGO_URI and MONGO_DB_NAME must be set")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		_ = client.Disconnect(context.Background())
	}
	return account.NewMongoRepo(client.Database(dbName)), closer, nil
}

// openCache opens the durable local session cache under the user's
// config directory.
func openCache() (*session.SQLiteCache, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	base := filepath.Join(dir, "planner")
	if err := os.MkdirAll(base, 0o700); err != nil {
		return nil, err
	}

	return session.NewSQLiteCache(filepath.Join(base, "session.db"))
}
