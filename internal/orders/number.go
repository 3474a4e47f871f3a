package orders

import (
	"context"
	"fmt"
	"time"
)

// GenerateOrderNumber builds the next order number for the given day:
// ORD-YYYYMMDD-NNNN where NNNN is the 1-based position within the day.
func GenerateOrderNumber(day time.Time, existingToday int64) string {
	return fmt.Sprintf("ORD-%s-%04d", day.UTC().Format("20060102"), existingToday+1)
}

// NextOrderNumber counts today's orders through the repository and derives
// the next number. Callers run this inside the order-placement transaction.
func NextOrderNumber(ctx context.Context, repo Repository, now time.Time) (string, error) {
	dayStart := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	count, err := repo.CountCreatedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return "", err
	}
	return GenerateOrderNumber(now, count), nil
}
