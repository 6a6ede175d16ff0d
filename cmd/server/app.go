package main

import (
	"context"
	"fmt"

	"cv-renderer/internal/adapter/cache"
	"cv-renderer/internal/adapter/repository"
	"cv-renderer/internal/config"
	"cv-renderer/internal/usecase"
	infra "cv-renderer/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// app holds the long-lived resources of one process.
type app struct {
	pool      *pgxpool.Pool
	redis     *redis.Client
	processor *usecase.Processor
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func newRenderer(c *config.Config) usecase.Renderer {
	chrome := infra.NewChromedpRenderer(infra.RendererOptions{
		ChromePath:   c.ChromePath,
		LoadTimeout:  c.LoadTimeout,
		PrintTimeout: c.PrintTimeout,
	}, infra.WithRendererLogger(logger.With("component", "renderer")))
	return infra.NewBoundedRenderer(chrome, c.RenderConcurrency, c.RenderQueueTimeout)
}

func newTemplateCache(ctx context.Context, c *config.Config) (usecase.TemplateCache, *redis.Client) {
	if c.RedisURL == "" {
		return usecase.NewMemoryCache(), nil
	}
	client, err := infra.NewRedisClient(ctx, c.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, using in-process template cache", "error", err)
		return usecase.NewMemoryCache(), nil
	}
	return cache.NewRedisCache(client, c.TemplateCacheTTL, logger), client
}

// buildApp wires the full pipeline. withDB is false for offline rendering.
func buildApp(ctx context.Context, c *config.Config, withDB bool) (*app, error) {
	a := &app{}
	tplCache, redisClient := newTemplateCache(ctx, c)
	a.redis = redisClient

	opts := []usecase.ProcessorOption{
		usecase.WithLogger(logger),
		usecase.WithAggregator(usecase.NewAggregator(c.DefaultLanguage, logger)),
		usecase.WithResolver(usecase.NewResolver(c.TemplatesDir, tplCache, logger)),
		usecase.WithCompiler(usecase.NewCompiler(usecase.NewHelperRegistry(), logger)),
		usecase.WithPageCounter(infra.NewPDFInspector()),
	}

	var cvs usecase.CVStore
	var templates usecase.TemplateStore
	if withDB {
		pool, err := infra.NewPool(ctx, c.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.pool = pool
		cvs = repository.NewCVRepo(pool)
		templates = repository.NewTemplateRepo(pool)

		if c.UploadEnabled() {
			sink, err := infra.NewS3Sink(ctx, infra.S3Config{
				Bucket:    c.S3Bucket,
				Region:    c.S3Region,
				Endpoint:  c.S3Endpoint,
				AccessKey: c.S3AccessKey,
				SecretKey: c.S3SecretKey,
				PublicURL: c.S3PublicURL,
			})
			if err != nil {
				a.Close()
				return nil, err
			}
			opts = append(opts, usecase.WithUploader(sink))
		} else {
			logger.Info("S3_BUCKET not set, generated pdfs will not be uploaded")
		}
	}

	a.processor = usecase.NewProcessor(newRenderer(c), cvs, templates, opts...)
	return a, nil
}
