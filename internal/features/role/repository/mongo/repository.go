package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cryptochat-backend/internal/features/role/models"
	"cryptochat-backend/internal/features/role/repository"
	platform "cryptochat-backend/internal/platform/mongo"
)

const collection = "roles"

type mongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(client *platform.Client) repository.RoleRepository {
	return &mongoRepository{col: client.Collection(collection)}
}

func (r *mongoRepository) List(ctx context.Context) ([]*models.Role, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	roles := make([]*models.Role, 0)
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var role models.Role
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *mongoRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *mongoRepository) Create(ctx context.Context, role *models.Role) error {
	res, err := r.col.InsertOne(ctx, role)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		role.ID = oid
	}
	return nil
}
