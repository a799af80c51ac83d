// backfill is a one-shot maintenance job: it assigns every card that
// predates per-user accounts (owner_id IS NULL) to a named account,
// creating the account first if it does not exist yet.
//
// Usage:
//
//	backfill -username admin -password s3cret [-display "Admin"]
package main

import (
	"context"
	"errors"
	"flag"

	"github.com/ilyakaznacheev/cleanenv"
	configs "github.com/pokebinder/binder-services/configs"
	"github.com/pokebinder/binder-services/internal/collectionsvc/db"
	"github.com/pokebinder/binder-services/internal/collectionsvc/models"
	"github.com/pokebinder/binder-services/internal/collectionsvc/service"
	"github.com/pokebinder/binder-services/internal/collectionsvc/store"
	log "github.com/sirupsen/logrus"
)

// The job only needs the database; the rest of the service configuration
// stays out of scope.
type jobConfig struct {
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
}

const SERVICE_NAME = "backfill"

var instanceId string

func init() {
	instanceId = configs.CreateUniqueInstance(SERVICE_NAME)
	configs.Logging(SERVICE_NAME + "_job_" + instanceId)
	configs.LoadEnv(SERVICE_NAME)
}

func main() {
	username := flag.String("username", "", "account to receive the orphaned cards")
	password := flag.String("password", "", "password for the account if it has to be created")
	display := flag.String("display", "", "display name for a newly created account")
	flag.Parse()

	if *username == "" {
		log.Fatal("-username is required")
	}

	var cfg jobConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbpool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()

	ctx := context.Background()
	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)
	cardStore := store.NewCardStore(dbpool)

	user, err := resolveUser(ctx, userService, *username, *display, *password)
	if err != nil {
		log.Fatalf("Failed to resolve account %q: %v", *username, err)
	}

	assigned, err := cardStore.AssignOrphans(ctx, user.ID)
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}

	log.Infof("backfill complete: %d orphaned cards assigned to %s (id %d)", assigned, user.Username, user.ID)
}

// resolveUser looks the account up and creates it when missing. Creation
// needs a password so the account stays usable afterwards.
func resolveUser(ctx context.Context, users *service.UserService, username, display, password string) (*models.User, error) {
	user, err := users.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, service.ErrNotFound) {
		return nil, err
	}

	if password == "" {
		return nil, errors.New("account does not exist and -password was not given")
	}
	return users.Register(ctx, username, display, password)
}
