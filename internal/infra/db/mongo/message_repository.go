package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pinball19/bus-app-2/internal/domain/message"
)

// MessageRepository stores booking threads in "schedule_messages", keyed by
// the owning schedule id and ordered by post time.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection("schedule_messages")}
}

func (r *MessageRepository) ForSchedule(ctx context.Context, scheduleID string) ([]message.Message, error) {
	if scheduleID == "" {
		return nil, message.ErrScheduleRequired
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"scheduleId": scheduleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find messages: %w", err)
	}
	defer cur.Close(ctx)

	var msgs []message.Message
	for cur.Next(ctx) {
		var doc messageDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode message: %w", err)
		}
		msgs = append(msgs, doc.toMessage())
	}
	return msgs, cur.Err()
}

func (r *MessageRepository) Append(ctx context.Context, msg message.Message) (string, error) {
	if msg.ScheduleID == "" {
		return "", message.ErrScheduleRequired
	}
	doc := messageDocument{
		ScheduleID: msg.ScheduleID,
		Username:   msg.Username,
		Text:       msg.Text,
		Kind:       string(msg.Kind),
		Timestamp:  primitive.NewDateTimeFromTime(time.Now().UTC()),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: insert message: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

type messageDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ScheduleID string             `bson:"scheduleId"`
	Username   string             `bson:"username"`
	Text       string             `bson:"text"`
	Kind       string             `bson:"type,omitempty"`
	Timestamp  primitive.DateTime `bson:"timestamp"`
}

func (d messageDocument) toMessage() message.Message {
	kind := message.Kind(d.Kind)
	if kind == "" {
		kind = message.KindUser
	}
	return message.Message{
		ID:         d.ID.Hex(),
		ScheduleID: d.ScheduleID,
		Username:   d.Username,
		Text:       d.Text,
		Kind:       kind,
		PostedAt:   d.Timestamp.Time().UTC(),
	}
}
