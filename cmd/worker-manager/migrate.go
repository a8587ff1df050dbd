package main

import (
	"consultancy-workers/internal/common/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, zapLog, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLog.Sync()

	ctx := cmd.Context()

	pg, err := connectPostgres(ctx, cfg, zapLog)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := database.Migrate(ctx, pg.GetDB()); err != nil {
		zapLog.Error("migration failed", zap.Error(err))
		return err
	}
	zapLog.Info("database schema applied", zap.Strings("tables", database.Tables))

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return err
	}
	if err := es.EnsureIndex(ctx, cfg.Search.CaseStudyIndex, database.CaseStudyMapping); err != nil {
		zapLog.Error("index creation failed", zap.String("index", cfg.Search.CaseStudyIndex), zap.Error(err))
		return err
	}
	zapLog.Info("case study index ready", zap.String("index", cfg.Search.CaseStudyIndex))
	return nil
}
