package replication

import (
	"context"
	"fmt"
	"log"

	"news-sitemap/pkg/db"
	"news-sitemap/pkg/domain"
)

// Config wires the replication dependencies.
type Config struct {
	Mongo    *db.Client
	Postgres db.DBProvider
}

// Replicator replicates crawled article records from MongoDB to Postgres.
//
// This is intentionally a one-shot, "copy everything" flow.
type Replicator struct {
	mongo *db.Client
	pg    db.DBProvider
}

// NewReplicator validates the config and builds a Replicator
func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Replicator{
		mongo: cfg.Mongo,
		pg:    cfg.Postgres,
	}, nil
}

// ReplicateRecords reads all article records from Mongo and inserts them
// into the Postgres article table. Rows whose URL already exists in
// Postgres are skipped.
func (r *Replicator) ReplicateRecords(ctx context.Context) error {
	if err := db.EnsureSchema(ctx, r.pg); err != nil {
		return err
	}

	cursor, err := r.mongo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("query mongo records: %w", err)
	}
	defer cursor.Close(ctx)

	copied := 0
	failed := 0
	for cursor.Next(ctx) {
		var record domain.ArticleRecord
		if err := cursor.Decode(&record); err != nil {
			failed++
			continue
		}
		if record.URL == "" {
			continue
		}

		if err := db.SaveRecordPostgres(ctx, r.pg, &record); err != nil {
			log.Printf("Replicator: failed to copy %s: %v", record.URL, err)
			failed++
			continue
		}
		copied++
		if copied%500 == 0 {
			log.Printf("Replicator: copied %d records so far", copied)
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %w", err)
	}

	log.Printf("Replicator: done, %d copied, %d failed", copied, failed)
	return nil
}
