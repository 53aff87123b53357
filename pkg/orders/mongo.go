package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Collection names used by the Mongo repository.
const (
	ordersCollection  = "orders"
	archiveCollection = "orders_archive"
)

// defaultArchiveChunk bounds how many documents one archival round moves.
const defaultArchiveChunk = 200

// orderDoc is the persisted shape of a work order. Field shapes follow the
// repository contract: {status: string, priority?: string, start, end}.
type orderDoc struct {
	ID       string    `bson:"_id"`
	Label    string    `bson:"label"`
	Document string    `bson:"document,omitempty"`
	Status   string    `bson:"status"`
	Priority string    `bson:"priority,omitempty"`
	Start    time.Time `bson:"start"`
	End      time.Time `bson:"end"`
}

func (d orderDoc) toOrder() timeline.Order {
	return timeline.Order{
		ID:       d.ID,
		Label:    d.Label,
		Document: d.Document,
		Status:   timeline.ParseStatus(d.Status),
		Priority: timeline.ParsePriority(d.Priority),
		Start:    d.Start,
		End:      d.End,
	}
}

func toDoc(o timeline.Order) orderDoc {
	return orderDoc{
		ID:       o.ID,
		Label:    o.Label,
		Document: o.Document,
		Status:   string(o.Status),
		Priority: string(o.Priority),
		Start:    o.Start,
		End:      o.End,
	}
}

// Mongo is the production work-order repository backed by MongoDB.
type Mongo struct {
	client  *mongo.Client
	orders  *mongo.Collection
	archive *mongo.Collection
}

// NewMongo connects to the given MongoDB URI and verifies the connection.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "ping mongodb")
	}
	db := client.Database(database)
	return &Mongo{
		client:  client,
		orders:  db.Collection(ordersCollection),
		archive: db.Collection(archiveCollection),
	}, nil
}

// FetchOrders returns matching orders sorted by end instant ascending,
// bounded by the query limit.
func (m *Mongo) FetchOrders(ctx context.Context, q Query) ([]timeline.Order, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if q.Priority != "" {
		filter["priority"] = string(q.Priority)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "end", Value: 1}}).
		SetLimit(int64(q.EffectiveLimit()))

	cursor, err := m.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "fetch orders")
	}
	defer cursor.Close(ctx)

	var result []timeline.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRepository, err, "decode order document")
		}
		result = append(result, doc.toOrder())
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "iterate orders")
	}
	return result, nil
}

// Insert stores new orders.
func (m *Mongo) Insert(ctx context.Context, orders ...timeline.Order) error {
	if len(orders) == 0 {
		return nil
	}
	docs := make([]any, len(orders))
	for i, o := range orders {
		docs[i] = toDoc(o)
	}
	if _, err := m.orders.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "insert orders")
	}
	return nil
}

// ArchiveCompleted moves finished orders that ended before the cutoff into
// the archive collection, chunkSize documents at a time. Each round copies
// a chunk, then deletes exactly the copied documents, so an interrupted run
// never loses data (at worst a chunk exists in both collections until the
// next run). It returns the number of orders archived.
func (m *Mongo) ArchiveCompleted(ctx context.Context, before time.Time, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		chunkSize = defaultArchiveChunk
	}

	filter := bson.M{
		"status": bson.M{"$in": []string{
			string(timeline.StatusDone),
			string(timeline.StatusFinished),
			string(timeline.StatusCompleted),
		}},
		"end": bson.M{"$lt": before},
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		cursor, err := m.orders.Find(ctx, filter, options.Find().SetLimit(int64(chunkSize)))
		if err != nil {
			return total, errors.Wrap(errors.ErrCodeRepository, err, "find archivable orders")
		}
		var chunk []orderDoc
		if err := cursor.All(ctx, &chunk); err != nil {
			return total, errors.Wrap(errors.ErrCodeRepository, err, "read archivable chunk")
		}
		if len(chunk) == 0 {
			return total, nil
		}

		docs := make([]any, len(chunk))
		ids := make([]string, len(chunk))
		for i, d := range chunk {
			docs[i] = d
			ids[i] = d.ID
		}
		if _, err := m.archive.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
			// Duplicate keys mean a previous interrupted run already copied
			// part of this chunk; the delete below resolves it either way.
			if !mongo.IsDuplicateKeyError(err) {
				return total, errors.Wrap(errors.ErrCodeRepository, err, "copy chunk to archive")
			}
		}
		if _, err := m.orders.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
			return total, errors.Wrap(errors.ErrCodeRepository, err, "delete archived chunk")
		}
		total += len(chunk)
	}
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ensure Mongo implements Repository.
var _ Repository = (*Mongo)(nil)
