package checkout

import (
	"context"
	"errors"
	"fmt"

	"tsurigu_back_end/internal/models"
)

// ValidatedLine pairs a cart line with the live catalog snapshot it was
// priced against.
type ValidatedLine struct {
	Line    models.CartLine
	Product models.ProductSnapshot
}

// ValidateLines fetches the current snapshot for every cart line and filters
// out listings that are gone or no longer purchasable. Dropped ids are
// returned for UI messaging — it is expected churn between browsing and
// checkout, not an error — and the underlying cart is left untouched.
func (s *Service) ValidateLines(ctx context.Context, lines []models.CartLine) ([]ValidatedLine, []string, error) {
	var merged []models.CartLine
	for _, line := range lines {
		if line.Quantity < 1 || line.ProductID == "" {
			continue
		}
		merged = models.MergeLine(merged, line)
	}

	var validated []ValidatedLine
	var dropped []string
	for _, line := range merged {
		product, err := s.Catalog.Snapshot(ctx, line.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			dropped = append(dropped, line.ProductID)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("catalog read for %s: %w", line.ProductID, err)
		}
		if !product.Purchasable() {
			dropped = append(dropped, line.ProductID)
			continue
		}
		validated = append(validated, ValidatedLine{Line: line, Product: *product})
	}
	return validated, dropped, nil
}
