package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"tsurigu_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

func receiptsBucket() string {
	if b := os.Getenv("MINIO_RECEIPTS_BUCKET"); b != "" {
		return b
	}
	return "receipts"
}

func receiptObject(orderID string) string {
	return fmt.Sprintf("orders/%s.pdf", orderID)
}

// ArchiveReceipt stores the rendered PDF receipt of an order.
func ArchiveReceipt(ctx context.Context, orderID string, pdf []byte) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO not initialized")
	}

	_, err := database.MinIO.PutObject(ctx, receiptsBucket(), receiptObject(orderID),
		bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	return err
}

// SignedReceiptURL returns a time-limited download link for an archived
// receipt.
func SignedReceiptURL(ctx context.Context, orderID string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}

	u, err := database.MinIO.PresignedGetObject(ctx, receiptsBucket(), receiptObject(orderID), duration, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
