package report

import (
	"context"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/cache"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DataAccess is the read-only view of the document store the assembler needs.
// FindMany returns matching documents in the collection's natural insertion
// order; FindByID returns (nil, nil) when no document matches.
type DataAccess interface {
	FindMany(ctx context.Context, collection string, p Predicate) ([]bson.M, error)
	FindByID(ctx context.Context, collection string, id interface{}) (bson.M, error)
}

type MongoDataAccess struct {
	db *mongo.Database
}

func NewMongoDataAccess(mongodb *database.MongodbDB) *MongoDataAccess {
	return &MongoDataAccess{db: mongodb.DB}
}

func (r *MongoDataAccess) FindMany(ctx context.Context, collection string, p Predicate) ([]bson.M, error) {
	// No explicit sort: report rows keep natural insertion order.
	cursor, err := r.db.Collection(collection).Find(ctx, p.ToBSON())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoDataAccess) FindByID(ctx context.Context, collection string, id interface{}) (bson.M, error) {
	var doc bson.M
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": normalizeID(id)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// normalizeID accepts foreign keys stored either as ObjectIDs or as their hex
// string form.
func normalizeID(id interface{}) interface{} {
	if s, ok := id.(string); ok {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
	}
	return id
}

// CachedDataAccess decorates a DataAccess with a cache-aside lookup for
// FindByID. FindMany is never cached: list results depend on the full
// predicate and must stay fresh.
type CachedDataAccess struct {
	next  DataAccess
	cache *cache.LookupCache
}

func NewCachedDataAccess(next DataAccess, lookupCache *cache.LookupCache) *CachedDataAccess {
	return &CachedDataAccess{next: next, cache: lookupCache}
}

func (r *CachedDataAccess) FindMany(ctx context.Context, collection string, p Predicate) ([]bson.M, error) {
	return r.next.FindMany(ctx, collection, p)
}

func (r *CachedDataAccess) FindByID(ctx context.Context, collection string, id interface{}) (bson.M, error) {
	key := idKey(id)
	if doc, ok := r.cache.Get(ctx, collection, key); ok {
		return doc, nil
	}

	doc, err := r.next.FindByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		r.cache.Set(ctx, collection, key, doc)
	}
	return doc, nil
}

func idKey(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return stringValue(id)
}
