// Package mongo provides the MongoDB backed account statement read model.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banking-transfer-api/internal/domain/statement"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const StatementCollectionName = "statement_entries"

// StatementRepository implements the statement.Repository interface for MongoDB
type StatementRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewStatementRepository(logger *slog.Logger, db *mongo.Database) statement.Repository {
	return &StatementRepository{
		collection: db.Collection(StatementCollectionName),
		logger:     logger,
	}
}

// EnsureIndexes creates the unique (event_id, account_id) index that makes
// Create idempotent, plus the index serving statement pagination.
func (r *StatementRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "account_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_account"),
		},
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options: options.Index().SetName("account_occurred_at"),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		r.logger.Error("Failed to create statement indexes", "error", err)
		return fmt.Errorf("failed to create statement indexes: %w", err)
	}
	return nil
}

// Create inserts the entry. A redelivered event hits the unique index and is
// reported as ErrDuplicateEntry.
func (r *StatementRepository) Create(ctx context.Context, entry *statement.Entry) error {
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return statement.ErrDuplicateEntry{EventID: entry.EventID, AccountID: entry.AccountID}
		}
		r.logger.Error("Failed to create statement entry",
			"event_id", entry.EventID,
			"account_id", entry.AccountID,
			"error", err)
		return fmt.Errorf("failed to create statement entry: %w", err)
	}
	return nil
}

// ListByAccountID returns the account's entries, newest first.
func (r *StatementRepository) ListByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*statement.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		r.logger.Error("Failed to get statement entries", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to get statement entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]*statement.Entry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode statement entries", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to decode statement entries: %w", err)
	}
	return entries, nil
}

func (r *StatementRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"account_id": accountID})
	if err != nil {
		r.logger.Error("Failed to count statement entries", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count statement entries: %w", err)
	}
	return count, nil
}
