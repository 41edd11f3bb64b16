package storage

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/niksmo/drago-decor/internal/core/domain"
	"github.com/niksmo/drago-decor/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ port.DocumentStore = (*MongoStore)(nil)

const (
	mongoConnectTimeout = 10 * time.Second
	mongoPingTimeout    = 2 * time.Second
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, dbName string) (MongoStore, error) {
	const op = "NewMongoStore"
	log := slog.With("op", op)

	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return MongoStore{}, fmt.Errorf("%s: failed to connect: %w", op, err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, mongoPingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(
			context.Background(), mongoConnectTimeout,
		)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return MongoStore{}, fmt.Errorf(
			"%s: database is unavailable: %w", op, err,
		)
	}

	log.Info("database is available", "database", dbName)
	return MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s MongoStore) Name() string {
	return s.db.Name()
}

func (s MongoStore) Insert(
	ctx context.Context, collection string, doc any,
) (string, error) {
	const op = "MongoStore.Insert"

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, port.ErrStoreWrite, err)
	}
	return idString(res.InsertedID), nil
}

func (s MongoStore) Find(
	ctx context.Context, collection string, f domain.Filter, limit int,
) ([]domain.Document, error) {
	const op = "MongoStore.Find"

	filter, err := mongoFilter(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	findOpts := options.Find()
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Error("failed to close cursor", "op", op, "err", err)
		}
	}()

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("%s: failed to decode: %w", op, err)
	}

	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

func (s MongoStore) Collections(
	ctx context.Context, limit int,
) ([]string, error) {
	const op = "MongoStore.Collections"

	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (s MongoStore) Close(ctx context.Context) {
	const op = "MongoStore.Close"
	log := slog.With("op", op)

	log.Info("closing mongo client...")
	if err := s.client.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect", "err", err)
		return
	}
	log.Info("mongo client is closed")
}

// mongoFilter merges predicates on the same field into one operator
// document, keeping the order in which fields first appear.
func mongoFilter(f domain.Filter) (bson.D, error) {
	filter := bson.D{}
	index := make(map[string]int)

	for _, p := range f {
		if err := checkField(p.Field); err != nil {
			return nil, err
		}

		i, ok := index[p.Field]
		if !ok {
			i = len(filter)
			index[p.Field] = i
			filter = append(filter, bson.E{Key: p.Field, Value: bson.D{}})
		}
		cond := filter[i].Value.(bson.D)

		switch p.Op {
		case domain.OpEq:
			cond = append(cond, bson.E{Key: "$eq", Value: p.Value})
		case domain.OpContainsFold:
			pattern := regexp.QuoteMeta(fmt.Sprint(p.Value))
			cond = append(cond,
				bson.E{Key: "$regex", Value: pattern},
				bson.E{Key: "$options", Value: "i"},
			)
		case domain.OpGTE:
			cond = append(cond, bson.E{Key: "$gte", Value: p.Value})
		case domain.OpLTE:
			cond = append(cond, bson.E{Key: "$lte", Value: p.Value})
		default:
			return nil, fmt.Errorf("unsupported predicate %s", p.Op)
		}
		filter[i].Value = cond
	}
	return filter, nil
}

func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

func toDocument(m bson.M) domain.Document {
	doc := make(domain.Document, len(m))
	for k, v := range m {
		if k == "_id" {
			continue
		}
		doc[k] = fromBSON(v)
	}
	doc[domain.DocumentIDField] = idString(m["_id"])
	return doc
}

func fromBSON(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case bson.M:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = fromBSON(el)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSON(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = fromBSON(el)
		}
		return out
	}
	return v
}
