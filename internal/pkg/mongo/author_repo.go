package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuthorRepo interface {
	// EnsureIndexes 建立 email 唯一索引，并发注册靠它兜底
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, author *Author) error
	GetByID(ctx context.Context, id string) (*Author, error)
	// GetByEmail 不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*Author, error)
}

type authorRepoImpl struct {
	col *mongo.Collection
}

func NewAuthorRepo(db *mongo.Database) AuthorRepo {
	return &authorRepoImpl{
		col: db.Collection("authors"),
	}
}

func (s *authorRepoImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *authorRepoImpl) Insert(ctx context.Context, author *Author) error {
	_, err := s.col.InsertOne(ctx, author)
	return err
}

func (s *authorRepoImpl) GetByID(ctx context.Context, id string) (*Author, error) {
	var author Author
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

func (s *authorRepoImpl) GetByEmail(ctx context.Context, email string) (*Author, error) {
	var author Author
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&author)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}
