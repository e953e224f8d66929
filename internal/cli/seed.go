package cli

import (
	"context"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"bloom-quest-service/internal/config"
	"bloom-quest-service/internal/content"
	"bloom-quest-service/internal/domain"
	"bloom-quest-service/internal/infra/postgres"
)

// NewSeedCmd loads the built-in fallback content into Postgres so a fresh
// database serves the default astronaut quests.
func NewSeedCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed default quest content into Postgres",
	}
	subject := cmd.Flags().String("subject", "mars", "subject (planet) to seed")
	age := cmd.Flags().String("age-category", "Kids", "age category to seed")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
			return err
		}
		return seedContent(cmd.Context(), cfg, *subject, *age)
	}
	return cmd
}

func seedContent(ctx context.Context, cfg config.Config, subject, age string) error {
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStore(pool, cfg.ContentDomain())
	for _, quest := range content.FallbackQuests() {
		if err := store.UpsertQuest(ctx, subject, age, quest); err != nil {
			return err
		}
		switch quest.Kind() {
		case domain.TypeCard:
			for _, card := range content.FallbackCards() {
				if err := store.UpsertCard(ctx, subject, age, quest.ID, card); err != nil {
					return err
				}
			}
		case domain.TypeQuiz:
			for _, question := range content.FallbackQuestions() {
				if err := store.UpsertQuestion(ctx, subject, age, quest.ID, question); err != nil {
					return err
				}
			}
		}
	}
	log.Printf("seeded default content for %s/%s", subject, age)
	return nil
}
