package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/diaglens/internal/server"
	"github.com/matzehuels/diaglens/pkg/cache"
	"github.com/matzehuels/diaglens/pkg/config"
	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		redisAddr  string
		mongoURI   string
		mongoDB    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Serve exposes diagram analysis over HTTP: POST markdown or diagram
blocks to /v1/analyze, fetch stored runs from /v1/runs/{id}.

Without --redis-addr the server caches results on local disk; without
--mongo-uri runs are kept in memory and lost on restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var file *config.File
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				file = loaded
			}

			var (
				resultCache cache.Cache
				err         error
			)
			if redisAddr != "" {
				resultCache, err = cache.NewRedisCache(ctx, redisAddr, "", 0)
				if err != nil {
					return err
				}
				c.Logger.Info("using redis cache", "addr", redisAddr)
			} else {
				resultCache, err = newCache(false)
				if err != nil {
					return err
				}
			}

			var runStore store.Store
			if mongoURI != "" {
				runStore, err = store.NewMongoStore(ctx, mongoURI, mongoDB)
				if err != nil {
					return err
				}
				defer runStore.Close(ctx)
				c.Logger.Info("using mongodb run store", "database", mongoDB)
			}

			runner := pipeline.NewRunner(resultCache, nil, c.Logger)
			defer runner.Close()

			srv := server.New(runner, runStore, file, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for shared result caching")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongodb connection URI for run storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "diaglens", "mongodb database name")

	return cmd
}
