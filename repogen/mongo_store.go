package repogen

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/code19m/errx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a Store backed by a MongoDB collection.
//
// The identifier is stored in the _id field, so the entity must tag its id field
// with `bson:"_id"`. Identifiers of entities added with a zero ID are drawn from seq,
// typically a MongoCounter.
type MongoStore[E any, ID comparable, P Entity[E, ID]] struct {
	settings

	coll *mongo.Collection
	seq  Sequence[ID]
	now  func() time.Time
}

// NewMongoStore creates a store on the given collection.
func NewMongoStore[E any, ID comparable, P Entity[E, ID]](
	coll *mongo.Collection,
	seq Sequence[ID],
	opts ...Option,
) *MongoStore[E, ID, P] {
	return &MongoStore[E, ID, P]{
		settings: newSettings[E](opts),
		coll:     coll,
		seq:      seq,
		now:      time.Now,
	}
}

func (r *MongoStore[E, ID, P]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	entity := new(E)

	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errx.Wrap(err, errx.WithDetails(r.details("find_one", id)))
	}

	return entity, true, nil
}

func (r *MongoStore[E, ID, P]) GetAll(ctx context.Context) ([]E, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(r.details("find", nil)))
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entities := make([]E, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(r.details("find", nil)))
	}
	if entities == nil {
		entities = make([]E, 0)
	}

	return entities, nil
}

func (r *MongoStore[E, ID, P]) Add(ctx context.Context, entity *E) (ID, error) {
	var zero ID
	if entity == nil {
		return zero, r.invalid("add")
	}

	p := P(entity)
	if p.GetID() == zero {
		if r.seq == nil {
			return zero, r.noSequence()
		}
		id, err := r.seq.Next(ctx)
		if err != nil {
			return zero, errx.Wrap(err)
		}
		p.SetID(id)
	}
	stampCreated(entity, r.now())

	_, err := r.coll.InsertOne(ctx, entity)
	if err != nil {
		return zero, r.mapWriteErr(err, "creating", p.GetID())
	}

	return p.GetID(), nil
}

func (r *MongoStore[E, ID, P]) Update(ctx context.Context, entity *E) (int64, error) {
	if entity == nil {
		return 0, r.invalid("update")
	}

	id := P(entity).GetID()
	stampUpdated(entity, r.now())

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, entity)
	if err != nil {
		return 0, r.mapWriteErr(err, "updating", id)
	}

	if result.MatchedCount == 0 {
		return 0, r.notFound("update", id)
	}

	return result.MatchedCount, nil
}

func (r *MongoStore[E, ID, P]) Delete(ctx context.Context, id ID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(r.details("delete_one", id)))
	}

	if result.DeletedCount == 0 {
		return 0, r.notFound("delete", id)
	}

	return result.DeletedCount, nil
}

// mapWriteErr converts duplicate key errors into conflict errors. Unique index
// names registered through WithConflictCodes select the error code.
func (r *MongoStore[E, ID, P]) mapWriteErr(err error, op string, id ID) error {
	if !mongo.IsDuplicateKeyError(err) {
		return errx.Wrap(err, errx.WithDetails(r.details(op, id)))
	}

	details := r.details(op, id)
	details["mongo.error"] = err.Error()

	msg := err.Error()
	for index, code := range r.conflictCodes {
		if strings.Contains(msg, "index: "+index+" ") {
			return r.conflict(op, code, details)
		}
	}
	return r.conflict(op, "", details)
}

func (r *MongoStore[E, ID, P]) details(op string, id any) errx.D {
	d := errx.D{
		"mongo.collection": r.coll.Name(),
		"mongo.operation":  op,
	}
	if id != nil {
		d["id"] = id
	}
	return d
}

// MongoCounter returns a sequence backed by a document in the "counters"
// collection of db. Each call atomically increments the counter named name,
// so identifiers stay unique across processes.
func MongoCounter(db *mongo.Database, name string) Sequence[int64] {
	counters := db.Collection("counters")
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	return SequenceFunc[int64](func(ctx context.Context) (int64, error) {
		var doc struct {
			Seq int64 `bson:"seq"`
		}
		err := counters.FindOneAndUpdate(
			ctx,
			bson.M{"_id": name},
			bson.M{"$inc": bson.M{"seq": int64(1)}},
			opts,
		).Decode(&doc)
		if err != nil {
			return 0, errx.Wrap(err, errx.WithDetails(errx.D{"counter": name}))
		}
		return doc.Seq, nil
	})
}
