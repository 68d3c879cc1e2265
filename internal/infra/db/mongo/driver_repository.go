package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pinball19/bus-app-2/internal/domain/driver"
)

// DriverRepository implements driver.Repository on the "drivers" collection.
type DriverRepository struct {
	col *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) *DriverRepository {
	return &DriverRepository{col: db.Collection("drivers")}
}

func (r *DriverRepository) List(ctx context.Context, activeOnly bool) ([]driver.Record, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: find drivers: %w", err)
	}
	defer cur.Close(ctx)

	var recs []driver.Record
	for cur.Next(ctx) {
		var doc driverDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode driver: %w", err)
		}
		recs = append(recs, doc.toRecord())
	}
	return recs, cur.Err()
}

func (r *DriverRepository) ByName(ctx context.Context, name string) (*driver.Record, error) {
	var doc driverDocument
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, fmt.Errorf("mongo: find driver: %w", err)
	}
	rec := doc.toRecord()
	return &rec, nil
}

func (r *DriverRepository) Insert(ctx context.Context, rec *driver.Record) (string, error) {
	doc := driverDocument{Name: rec.Name, Memo: rec.Memo, IsActive: rec.IsActive}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: insert driver: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *DriverRepository) Update(ctx context.Context, id string, rec *driver.Record) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return driver.ErrDriverNotFound
	}
	update := bson.M{"$set": bson.M{"name": rec.Name, "memo": rec.Memo, "isActive": rec.IsActive}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("mongo: update driver: %w", err)
	}
	if res.MatchedCount == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return driver.ErrDriverNotFound
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return fmt.Errorf("mongo: deactivate driver: %w", err)
	}
	if res.MatchedCount == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

type driverDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Memo     string             `bson:"memo,omitempty"`
	IsActive bool               `bson:"isActive"`
}

func (d driverDocument) toRecord() driver.Record {
	return driver.Record{ID: d.ID.Hex(), Name: d.Name, Memo: d.Memo, IsActive: d.IsActive}
}
