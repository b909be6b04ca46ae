package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cryptochat-backend/internal/features/message/models"
	"cryptochat-backend/internal/features/message/repository"
	platform "cryptochat-backend/internal/platform/mongo"
)

const collection = "messages"

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(client *platform.Client) repository.MessageRepository {
	return &mongoRepository{col: client.Collection(collection)}
}

func (r *mongoRepository) Insert(ctx context.Context, message *models.Message) error {
	res, err := r.col.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = oid
	}
	return nil
}

func (r *mongoRepository) ListByChannel(ctx context.Context, channel string, limit, skip int64) ([]*models.Message, error) {
	// Page from the newest end, then flip so the caller renders oldest
	// first.
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{"channel": channel}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]*models.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	reverse(messages)
	return messages, nil
}

func (r *mongoRepository) ListAll(ctx context.Context, limit int64) ([]*models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]*models.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	reverse(messages)
	return messages, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) DeleteByChannel(ctx context.Context, channel string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"channel": channel})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func reverse(messages []*models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
