package usecase

import (
	"context"
	"log/slog"
	"strings"

	"orderup_backend/internal/feature/catalog/domain/entity"
)

// ImportResult counts the outcome of a menu import.
type ImportResult struct {
	Created int
	Skipped int
	Failed  int
}

// ImportMenu creates every item whose name is not already on the menu.
// A failing item is logged and the import continues with the next one.
func (u *CatalogUsecase) ImportMenu(ctx context.Context, items []CreateInput) (ImportResult, error) {
	existing, err := u.repo.List(ctx, entity.Filter{})
	if err != nil {
		return ImportResult{}, err
	}
	seen := make(map[string]bool, len(existing))
	for _, it := range existing {
		seen[strings.ToLower(it.Name)] = true
	}

	var res ImportResult
	for _, in := range items {
		key := strings.ToLower(strings.TrimSpace(in.Name))
		if seen[key] {
			res.Skipped++
			continue
		}
		if _, err := u.Create(ctx, in); err != nil {
			slog.Error("failed to import food item", "name", in.Name, "error", err)
			res.Failed++
			continue
		}
		seen[key] = true
		res.Created++
	}
	return res, nil
}
