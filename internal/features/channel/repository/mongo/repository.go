package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cryptochat-backend/internal/features/channel/models"
	"cryptochat-backend/internal/features/channel/repository"
	platform "cryptochat-backend/internal/platform/mongo"
)

const collection = "channels"

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(client *platform.Client) repository.ChannelRepository {
	return &mongoRepository{col: client.Collection(collection)}
}

func (r *mongoRepository) EnsureDefault(ctx context.Context, name, description string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{
			"name":         name,
			"description":  description,
			"isActive":     true,
			"messageCount": int64(0),
			"createdAt":    time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *mongoRepository) List(ctx context.Context) ([]*models.Channel, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	channels := make([]*models.Channel, 0)
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Channel, error) {
	var channel models.Channel
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&channel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *mongoRepository) FindByName(ctx context.Context, name string) (*models.Channel, error) {
	var channel models.Channel
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&channel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *mongoRepository) Create(ctx context.Context, channel *models.Channel) error {
	res, err := r.col.InsertOne(ctx, channel)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		channel.ID = oid
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *mongoRepository) RecordMessage(ctx context.Context, name string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{
			"$inc": bson.M{"messageCount": int64(1)},
			"$set": bson.M{"lastMessageAt": at},
		},
	)
	return err
}

func (r *mongoRepository) ResetMessageCount(ctx context.Context, name string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"messageCount": int64(0)}},
	)
	return err
}
