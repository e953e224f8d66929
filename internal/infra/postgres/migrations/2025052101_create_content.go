package migrations

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()

const createContentSQL = `
CREATE TABLE IF NOT EXISTS quests (
	domain       text NOT NULL,
	age_category text NOT NULL,
	subject_id   text NOT NULL,
	id           text NOT NULL,
	data         jsonb NOT NULL,
	PRIMARY KEY (domain, age_category, subject_id, id)
);

CREATE TABLE IF NOT EXISTS quest_items (
	domain       text NOT NULL,
	age_category text NOT NULL,
	subject_id   text NOT NULL,
	quest_id     text NOT NULL,
	kind         text NOT NULL,
	id           text NOT NULL,
	data         jsonb NOT NULL,
	PRIMARY KEY (domain, age_category, subject_id, quest_id, kind, id)
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id        text PRIMARY KEY,
	recommendation text
);
`

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createContentSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS quest_items; DROP TABLE IF EXISTS quests; DROP TABLE IF EXISTS profiles`)
			return err
		},
	)
}
