package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo stores accounts in the "usuarios" collection.
type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("usuarios"),
	}
}

func (r *MongoRepo) Create(ctx context.Context, acct *UserAccount) error {
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}
	acct.Identifier = NormalizeIdentifier(acct.Identifier)

	_, err := r.collection.InsertOne(ctx, acct)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("account already exists")
		}
		return err
	}
	return nil
}

func (r *MongoRepo) FindByIdentifier(ctx context.Context, identifier string) (*UserAccount, error) {
	var acct UserAccount

	err := r.collection.FindOne(ctx, bson.M{"identifier": NormalizeIdentifier(identifier)}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	return &acct, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (*UserAccount, error) {
	var acct UserAccount

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &acct, nil
}

func (r *MongoRepo) UpdateSession(ctx context.Context, id, token string, expiry, lastLogin time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"sessionToken":  token,
			"sessionExpiry": expiry,
			"lastLogin":     lastLogin,
		},
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) ClearSession(ctx context.Context, id string, at time.Time) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"sessionToken":  nil,
			"sessionExpiry": nil,
			"lastLogout":    at,
		},
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]*UserAccount, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"active": true},
		options.Find().SetSort(bson.D{{Key: "identifier", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*UserAccount
	for cursor.Next(ctx) {
		var acct UserAccount
		if cursor.Decode(&acct) == nil {
			accounts = append(accounts, &acct)
		}
	}
	return accounts, nil
}
