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

const voiceCollection = "voice_channels"

type voiceMongoRepository struct {
	col *mongo.Collection
}

func NewVoiceMongoRepository(client *platform.Client) repository.VoiceChannelRepository {
	return &voiceMongoRepository{col: client.Collection(voiceCollection)}
}

func (r *voiceMongoRepository) EnsureDefault(ctx context.Context, seed models.VoiceChannelSeed) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": seed.Name},
		bson.M{"$setOnInsert": bson.M{
			"name":            seed.Name,
			"description":     seed.Description,
			"isActive":        true,
			"participants":    bson.A{},
			"maxParticipants": seed.MaxParticipants,
			"isPrivate":       false,
			"createdAt":       time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *voiceMongoRepository) List(ctx context.Context) ([]*models.VoiceChannel, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	channels := make([]*models.VoiceChannel, 0)
	if err := cursor.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *voiceMongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.VoiceChannel, error) {
	var channel models.VoiceChannel
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&channel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *voiceMongoRepository) Create(ctx context.Context, channel *models.VoiceChannel) error {
	res, err := r.col.InsertOne(ctx, channel)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		channel.ID = oid
	}
	return nil
}

func (r *voiceMongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
