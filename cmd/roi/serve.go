package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/komsit37/roi/pkg/roi/api"
	"github.com/komsit37/roi/pkg/roi/cache"
	"github.com/komsit37/roi/pkg/roi/config"
)

const redisPingTimeout = 2 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// newCache prefers redis when configured and reachable, otherwise memory.
func newCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) (cache.Cache, func() error) {
	if cfg.RedisAddr != "" {
		r := cache.NewRedis(&redis.Options{Addr: cfg.RedisAddr}, cfg.Prefix, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		err := r.Ping(pingCtx)
		if err == nil {
			log.Info("projection cache: redis", zap.String("addr", cfg.RedisAddr))
			return r, r.Close
		}
		log.Warn("redis unreachable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = r.Close()
	}
	log.Info("projection cache: memory", zap.Int("size", cfg.Size), zap.Duration("ttl", cfg.TTL))
	return cache.NewMemory(cfg.TTL, cfg.Size), func() error { return nil }
}

func runServe(ctx context.Context, a *app) error {
	cfg, log := a.cfg, a.log

	c, closeCache := newCache(ctx, cfg.Cache, log)
	defer func() {
		if err := closeCache(); err != nil {
			log.Warn("close cache", zap.Error(err))
		}
	}()

	limiter := api.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.Burst)
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	svc := api.NewProjectionService(cfg.Model, c, log)
	h := api.NewHandler(svc, cfg.Defaults, cfg.AnimateConfig(), log)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(h, log, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("server exited")
		return nil
	})
	return g.Wait()
}
