package repository

import (
	"context"
	"fmt"

	"github.com/verastrelkova/coaching-platform/internal/models"
)

// ListContentItems возвращает весь каталог контента в порядке недель программы.
// Каталог задаётся миграциями, но хранилище не делает на это ставку:
// источник может быть любым.
func (s *Storage) ListContentItems(ctx context.Context) ([]*models.ContentItem, error) {
	const op = "storage.ListContentItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, week_number, required_tier
			  FROM content_items
			  ORDER BY week_number, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		var tier string
		if err = rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.WeekNumber, &tier); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		parsed, err := models.ParseTier(tier)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.RequiredTier = parsed
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
