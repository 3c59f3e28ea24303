package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/at-ishikawa/vocadrill/internal/config"
	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/database"
	"github.com/at-ishikawa/vocadrill/internal/dictionary"
	"github.com/at-ishikawa/vocadrill/internal/planapi"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// unavailableRepository fails every read with the error that kept the
// dictionary database from opening.
type unavailableRepository struct {
	err error
}

func (r unavailableRepository) FindAll(context.Context) ([]dictionary.WordRecord, error) {
	return nil, r.err
}

// openStore loads the whole dictionary into memory. A dictionary that cannot
// be opened or read is logged and leaves the store empty, with the cause in
// store.LoadErr. closeDB releases the database and is never nil.
func openStore(ctx context.Context, cfg *config.Config) (store *dictionary.Store, closeDB func() error) {
	store = dictionary.NewStore()
	closeDB = func() error { return nil }

	var repo dictionary.WordRepository
	db, err := database.Open(ctx, cfg.Dictionary, cfg.Database)
	if err != nil {
		repo = unavailableRepository{err: fmt.Errorf("database.Open() > %w", err)}
	} else {
		closeDB = db.Close
		dbRepo, err := dictionary.NewDBWordRepository(db, cfg.Dictionary.Table)
		if err != nil {
			repo = unavailableRepository{err: fmt.Errorf("dictionary.NewDBWordRepository() > %w", err)}
		} else {
			repo = dbRepo
		}
	}

	if err := store.Load(ctx, repo); err != nil {
		slog.Default().Warn("failed to load the dictionary, continuing with an empty one",
			slog.String("driver", cfg.Dictionary.Driver),
			slog.String("table", cfg.Dictionary.Table),
			slog.Any("error", err),
		)
	}
	return store, closeDB
}

// storeUnavailable wraps err with the dictionary's load error, if any.
func storeUnavailable(store *dictionary.Store, err error) error {
	if loadErr := store.LoadErr(); loadErr != nil {
		return fmt.Errorf("%w: the dictionary failed to load: %v", err, loadErr)
	}
	return err
}

var errNoPlanAPI = errors.New("plan API is not configured, set plan_api.base_url or VOCADRILL_API_URL")

func newPlanClient(cfg *config.Config) (*planapi.Client, error) {
	if cfg.PlanAPI.BaseURL == "" {
		return nil, errNoPlanAPI
	}
	return planapi.NewClient(cfg.PlanAPI), nil
}

func startPolicy(cfg *config.Config) coordinator.StartPolicy {
	if cfg.Session.OnConcurrentStart == config.ConcurrentStartReplace {
		return coordinator.ReplaceActive
	}
	return coordinator.RejectWhileActive
}

func parsePlanID(arg string) (int64, error) {
	planID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || planID <= 0 {
		return 0, fmt.Errorf("invalid plan id: %s", arg)
	}
	return planID, nil
}
