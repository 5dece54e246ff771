package service

import (
	"context"
	"log"

	"tsurigu_back_end/internal/database"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// DeindexListing removes a sold listing from the search index so it stops
// appearing in browse results. Best effort: search is eventually consistent
// with the catalog anyway.
func DeindexListing(ctx context.Context, productID string) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic not initialized, cannot de-index:", productID)
		return
	}

	req := esapi.DeleteRequest{
		Index:      "listings",
		DocumentID: productID,
		Refresh:    "true",
	}

	res, err := req.Do(ctx, database.Elastic)
	if err != nil {
		log.Println("❌ Elastic de-index request failed:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		log.Printf("⚠️ Elastic returned an error for %s: %s", productID, res.String())
	} else {
		log.Printf("✅ Listing de-indexed from search: %s", productID)
	}
}
