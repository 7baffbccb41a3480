package seeds

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

//go:embed badges.yaml
var badgesYAML []byte

type badgeEntry struct {
	ConditionType  string            `yaml:"condition_type"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Icon           string            `yaml:"icon"`
	Rarity         types.BadgeRarity `yaml:"rarity"`
	ConditionValue *int              `yaml:"condition_value"`
}

type badgeCatalog struct {
	Badges []badgeEntry `yaml:"badges"`
}

// SeedBadges inserts the built-in badge catalog when the badges table is
// empty. An already-seeded database is left untouched, so catalog edits
// in a running deployment survive restarts.
func SeedBadges(ctx context.Context, log *logger.Logger, badgeRepo repos.BadgeRepo) error {
	count, err := badgeRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("count badges: %w", err)
	}
	if count > 0 {
		return nil
	}

	var catalog badgeCatalog
	if err := yaml.Unmarshal(badgesYAML, &catalog); err != nil {
		return fmt.Errorf("parse badge catalog: %w", err)
	}

	rows := make([]*types.Badge, 0, len(catalog.Badges))
	for _, entry := range catalog.Badges {
		rows = append(rows, &types.Badge{
			ID:             uuid.New(),
			Name:           entry.Name,
			Description:    entry.Description,
			Icon:           entry.Icon,
			ConditionType:  entry.ConditionType,
			ConditionValue: entry.ConditionValue,
			Rarity:         entry.Rarity,
		})
	}
	if err := badgeRepo.CreateBatch(ctx, nil, rows); err != nil {
		return fmt.Errorf("insert badge catalog: %w", err)
	}

	log.Info("seeded badge catalog", "count", len(rows))
	return nil
}
