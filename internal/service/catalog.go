package service

import (
	"context"
	"errors"
	"fmt"

	"tsurigu_back_end/internal/checkout"
	"tsurigu_back_end/internal/database"
	"tsurigu_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ScyllaCatalog reads listing snapshots from the catalog keyspace and owns
// the available → sold transition. The transition is a lightweight
// transaction so that two settlements racing for the same rod can never both
// win.
type ScyllaCatalog struct{}

var _ checkout.ProductCatalog = (*ScyllaCatalog)(nil)

func (ScyllaCatalog) Snapshot(ctx context.Context, productID string) (*models.ProductSnapshot, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, checkout.ErrProductNotFound
	}

	var (
		title, status, shippingPayer       string
		sellerID                           gocql.UUID
		sellerName, category, condition    string
		imageURL                           string
		price                              int64
	)
	err = session.Query(`SELECT title, price, status, shipping_payer, seller_id, seller_name, category, condition, image_url
	                     FROM products WHERE product_id = ?`, gocql.UUID(pid)).
		WithContext(ctx).
		Scan(&title, &price, &status, &shippingPayer, &sellerID, &sellerName, &category, &condition, &imageURL)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, checkout.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}

	return &models.ProductSnapshot{
		ID:            productID,
		Title:         title,
		Price:         price,
		Status:        status,
		ShippingPayer: shippingPayer,
		SellerID:      sellerID.String(),
		SellerName:    sellerName,
		Category:      category,
		Condition:     condition,
		ImageURL:      imageURL,
	}, nil
}

// MarkSold applies the single-writer-wins rule: the LWT only succeeds while
// the listing is still available.
func (ScyllaCatalog) MarkSold(ctx context.Context, productID string) (bool, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return false, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return false, nil
	}

	applied, err := session.Query(
		`UPDATE products SET status = ? WHERE product_id = ? IF status = ?`,
		models.ProductSold, gocql.UUID(pid), models.ProductAvailable).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return false, fmt.Errorf("mark sold: %w", err)
	}
	return applied, nil
}

// Release reverts a MarkSold from an aborted settlement. Conditional as well,
// so a listing sold by a concurrent winner stays sold.
func (ScyllaCatalog) Release(ctx context.Context, productID string) error {
	session, err := database.GetCatalogSession()
	if err != nil {
		return err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil
	}

	_, err = session.Query(
		`UPDATE products SET status = ? WHERE product_id = ? IF status = ?`,
		models.ProductAvailable, gocql.UUID(pid), models.ProductSold).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return nil
}
