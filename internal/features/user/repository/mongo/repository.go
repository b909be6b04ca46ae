package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cryptochat-backend/internal/features/user/models"
	"cryptochat-backend/internal/features/user/repository"
	platform "cryptochat-backend/internal/platform/mongo"
)

const collection = "users"

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(client *platform.Client) repository.UserRepository {
	return &mongoRepository{col: client.Collection(collection)}
}

func (r *mongoRepository) FindByUsernameOrWallet(ctx context.Context, username, walletAddress string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": username},
		bson.M{"walletAddress": walletAddress},
	}}

	var user models.User
	err := r.col.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *mongoRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoRepository) BindSocket(ctx context.Context, id primitive.ObjectID, socketID, avatar, role string) error {
	set := bson.M{
		"isOnline": true,
		"socketId": socketID,
		"lastSeen": time.Now(),
	}
	if avatar != "" {
		set["avatar"] = avatar
	}
	if role != "" {
		set["role"] = role
	}

	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

func (r *mongoRepository) SetOffline(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set":   bson.M{"isOnline": false, "lastSeen": time.Now()},
		"$unset": bson.M{"socketId": ""},
	})
	return err
}

func (r *mongoRepository) ResetPresence(ctx context.Context) error {
	_, err := r.col.UpdateMany(ctx, bson.M{}, bson.M{
		"$set":   bson.M{"isOnline": false},
		"$unset": bson.M{"socketId": ""},
	})
	return err
}

func (r *mongoRepository) SetRole(ctx context.Context, id primitive.ObjectID, roleName string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": roleName}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context, onlineOnly bool) ([]*models.User, error) {
	filter := bson.M{}
	if onlineOnly {
		filter["isOnline"] = true
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]*models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *mongoRepository) CountOnline(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"isOnline": true})
}
