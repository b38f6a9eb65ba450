// Package mongostore keeps transactions and budgets in MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repository"
	"finance-tracker/pkg/lazy"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	transactionsCollection = "transactions"
	budgetsCollection      = "budgets"
)

type transactionDoc struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Date        time.Time            `bson:"date"`
	Description string               `bson:"description"`
	Category    string               `bson:"category"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type budgetDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Month     string               `bson:"month"`
	Category  string               `bson:"category"`
	Budget    primitive.Decimal128 `bson:"budget"`
	CreatedAt time.Time            `bson:"created_at"`
}

// Store resolves its collections through the shared client handle, so the
// first query is what dials the server.
type Store struct {
	client   *lazy.Handle[*mongo.Client]
	database string
	logger   *zap.Logger
}

func New(client *lazy.Handle[*mongo.Client], database string, logger *zap.Logger) *Store {
	return &Store{client: client, database: database, logger: logger}
}

func (s *Store) Transactions() repository.TransactionStore { return &TransactionRepository{s} }
func (s *Store) Budgets() repository.BudgetStore           { return &BudgetRepository{s} }

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	client, err := s.client.Get(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.database).Collection(name), nil
}

// EnsureIndexes creates the listing indexes. It is safe to call repeatedly.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	txs, err := s.collection(ctx, transactionsCollection)
	if err != nil {
		return err
	}
	if _, err := txs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create transactions index: %w", err)
	}

	budgets, err := s.collection(ctx, budgetsCollection)
	if err != nil {
		return err
	}
	if _, err := budgets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "month", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create budgets index: %w", err)
	}
	return nil
}

type TransactionRepository struct{ s *Store }

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return err
	}
	amount, err := toDecimal128(tx.Amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := transactionDoc{
		ID:          primitive.NewObjectID(),
		Amount:      amount,
		Date:        tx.Date,
		Description: tx.Description,
		Category:    string(tx.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	tx.ID = doc.ID.Hex()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, filter repository.TransactionFilter) ([]*models.Transaction, error) {
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lt"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	transactions := make([]*models.Transaction, 0, len(docs))
	for i := range docs {
		tx, err := docs[i].model()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return nil, err
	}

	var doc transactionDoc
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.model()
}

func (r *TransactionRepository) Update(ctx context.Context, id string, tx *models.Transaction) (*models.Transaction, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return nil, err
	}
	amount, err := toDecimal128(tx.Amount)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"amount":      amount,
		"date":        tx.Date,
		"description": tx.Description,
		"category":    string(tx.Category),
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc transactionDoc
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return doc.model()
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.s.collection(ctx, transactionsCollection)
	if err != nil {
		return 0, err
	}
	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

type BudgetRepository struct{ s *Store }

func (r *BudgetRepository) Create(ctx context.Context, b *models.Budget) error {
	coll, err := r.s.collection(ctx, budgetsCollection)
	if err != nil {
		return err
	}
	amount, err := toDecimal128(b.Budget)
	if err != nil {
		return err
	}

	doc := budgetDoc{
		ID:        primitive.NewObjectID(),
		Month:     b.Month,
		Category:  string(b.Category),
		Budget:    amount,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}

	b.ID = doc.ID.Hex()
	b.CreatedAt = doc.CreatedAt
	return nil
}

func (r *BudgetRepository) List(ctx context.Context, month string) ([]*models.Budget, error) {
	coll, err := r.s.collection(ctx, budgetsCollection)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if month != "" {
		query["month"] = month
	}
	// ObjectIDs grow with insertion time.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []budgetDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode budgets: %w", err)
	}

	budgets := make([]*models.Budget, 0, len(docs))
	for _, doc := range docs {
		amount, err := fromDecimal128(doc.Budget)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, &models.Budget{
			ID:        doc.ID.Hex(),
			Month:     doc.Month,
			Category:  models.Category(doc.Category),
			Budget:    amount,
			CreatedAt: doc.CreatedAt.UTC(),
		})
	}

	r.s.logger.Debug("Budgets loaded", zap.Int("count", len(budgets)), zap.String("month", month))
	return budgets, nil
}

func (d transactionDoc) model() (*models.Transaction, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		ID:          d.ID.Hex(),
		Amount:      amount,
		Date:        d.Date.UTC(),
		Description: d.Description,
		Category:    models.Category(d.Category),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode amount %s: %w", v, err)
	}
	return d, nil
}
