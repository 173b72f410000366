package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chiraggahujaa/metaverse-workspace/internal/api"
	"github.com/chiraggahujaa/metaverse-workspace/internal/api/handler"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/service"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/config"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/db/redis"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/http/handlers"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/identity"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/session"
)

const shutdownTimeout = 15 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	if err := cfg.RequireSession(); err != nil {
		return err
	}

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer repos.close(context.Background())

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	providers, names := identityProviders(cfg)
	codec := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)

	e, err := api.NewRouter(api.Deps{
		Auth: service.NewAuthService(repos.users, codec, service.Federation{
			States:    redis.NewStateStore(rdb),
			Providers: providers,
		}, log),
		Avatars:  service.NewAvatarService(repos.avatars, redis.NewAvatarCache(rdb, cfg.Redis.AvatarCacheTTL), log),
		Elements: service.NewElementService(repos.elements),
		Maps:     service.NewMapService(repos.maps, repos.elements),
		Spaces:   service.NewSpaceService(repos.spaces, repos.maps, repos.elements, log),
		Users:    service.NewUserService(repos.users, repos.avatars),
		Codec:    codec,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		Providers: names,
		Health: map[string]handlers.Pinger{
			cfg.StoreDriver: repos.ping,
			"redis":         redis.Pinger(rdb),
		},
		Log: log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Strs("providers", names).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// identityProviders returns the configured federated providers and their names.
func identityProviders(cfg *config.Config) ([]ports.IdentityProvider, []string) {
	candidates := []*identity.Provider{
		identity.NewGoogle(identity.Credentials{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.CallbackURL("google"),
		}),
		identity.NewFacebook(identity.Credentials{
			ClientID:     cfg.OAuth.FacebookClientID,
			ClientSecret: cfg.OAuth.FacebookClientSecret,
			RedirectURL:  cfg.CallbackURL("facebook"),
		}),
	}

	var (
		providers []ports.IdentityProvider
		names     []string
	)
	for _, p := range candidates {
		if p == nil {
			continue
		}
		providers = append(providers, p)
		names = append(names, p.Name())
	}
	return providers, names
}
