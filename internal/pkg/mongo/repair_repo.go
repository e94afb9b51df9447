package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepairRepo 登记改名后未能删除的旧 slug，由定时任务兜底清理
type RepairRepo interface {
	Add(ctx context.Context, oldSlug, newSlug string) error
	List(ctx context.Context) ([]*SlugRepair, error)
	Remove(ctx context.Context, oldSlug string) error
}

type repairRepoImpl struct {
	col *mongo.Collection
}

func NewRepairRepo(db *mongo.Database) RepairRepo {
	return &repairRepoImpl{
		col: db.Collection("slug_repairs"),
	}
}

// Add 重复登记按 upsert 幂等处理
func (s *repairRepoImpl) Add(ctx context.Context, oldSlug, newSlug string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oldSlug},
		bson.M{"$set": bson.M{"new_slug": newSlug, "created_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *repairRepoImpl) List(ctx context.Context) ([]*SlugRepair, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var repairs []*SlugRepair
	if err := cursor.All(ctx, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (s *repairRepoImpl) Remove(ctx context.Context, oldSlug string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": oldSlug})
	return err
}
