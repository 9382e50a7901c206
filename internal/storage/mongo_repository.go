package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/stockfn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoCollection is the subset of *mongo.Collection used by the repository.
type mongoCollection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	UpdateByID(ctx context.Context, id any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// mongoStock is the stored shape: stock fields at top level next to _id.
type mongoStock struct {
	ID           primitive.ObjectID `bson:"_id"`
	models.Stock `bson:",inline"`
}

type mongoRepository struct {
	coll mongoCollection
	ping func(ctx context.Context) error
}

// NewMongoRepository returns a StockRepository backed by a MongoDB collection.
func NewMongoRepository(coll *mongo.Collection) StockRepository {
	client := coll.Database().Client()
	return &mongoRepository{
		coll: coll,
		ping: func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}
}

// FindByCode returns all documents whose code field equals code.
func (r *mongoRepository) FindByCode(ctx context.Context, code string) ([]models.StockDocument, error) {
	cur, err := r.coll.Find(ctx, bson.M{"code": code})
	if err != nil {
		return nil, fmt.Errorf("find stock by code: %w", err)
	}

	var found []mongoStock
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode stock cursor: %w", err)
	}

	docs := make([]models.StockDocument, 0, len(found))
	for _, f := range found {
		docs = append(docs, models.StockDocument{ID: f.ID.Hex(), Stock: f.Stock})
	}
	return docs, nil
}

// Get loads a single document by its hex ObjectID.
func (r *mongoRepository) Get(ctx context.Context, id string) (*models.StockDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}

	var found mongoStock
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock %s: %w", id, err)
	}
	return &models.StockDocument{ID: found.ID.Hex(), Stock: found.Stock}, nil
}

// Insert stores a new document and returns its hex ObjectID.
func (r *mongoRepository) Insert(ctx context.Context, stock models.Stock) (string, error) {
	doc := mongoStock{ID: primitive.NewObjectID(), Stock: stock}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert stock: %w", err)
	}
	return doc.ID.Hex(), nil
}

// InsertBatch inserts all stocks with a single ordered InsertMany.
func (r *mongoRepository) InsertBatch(ctx context.Context, stocks []models.Stock) (int, error) {
	if len(stocks) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(stocks))
	for _, s := range stocks {
		docs = append(docs, mongoStock{ID: primitive.NewObjectID(), Stock: s})
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert stock batch: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// Update applies the set patch fields with $set.
func (r *mongoRepository) Update(ctx context.Context, id string, patch models.StockPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}
	return nil
}

// Ping verifies connectivity to the primary.
func (r *mongoRepository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}
