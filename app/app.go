// Package app wires the client core together: config, the local session
// database, the API client, and the session/profile/access/feed layers.
// The App is the single injection point the UI tree consumes; it lives for
// the whole process, so there is no dispose step beyond Close.
package app

import (
	"context"

	"github.com/circleapp/circle-client/access"
	"github.com/circleapp/circle-client/client"
	"github.com/circleapp/circle-client/config"
	"github.com/circleapp/circle-client/feed"
	"github.com/circleapp/circle-client/logging"
	"github.com/circleapp/circle-client/profile"
	"github.com/circleapp/circle-client/session"
	"github.com/circleapp/circle-client/tokenstore"
)

type App struct {
	Config   *config.Config
	Session  *session.Manager
	Profiles *profile.Cache
	Gate     *access.Gate
	Feed     *feed.Feed

	api   client.Client
	store *tokenstore.SQLiteStore
	log   logging.Logger
}

// New builds the dependency graph. The session database is opened (and
// migrated) here; the session itself is restored later via Initialize.
func New(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	store, err := tokenstore.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)
	profiles := profile.NewCache(apiClient, log)
	sess := session.NewManager(store, apiClient, profiles, log)
	gate := access.NewGate(sess)
	posts := feed.New(apiClient, gate, log)

	return &App{
		Config:   cfg,
		Session:  sess,
		Profiles: profiles,
		Gate:     gate,
		Feed:     posts,
		api:      apiClient,
		store:    store,
		log:      log,
	}, nil
}

// Initialize restores the persisted session. Call exactly once at startup,
// before any UI event handlers run.
func (a *App) Initialize(ctx context.Context) {
	a.Session.Initialize(ctx)
}

func (a *App) Close() error {
	if err := a.api.Close(); err != nil {
		return err
	}
	return a.store.Close()
}
