package mongo

import (
	"Inkstone/internal/pkg/consts"
	"context"
	"errors"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	// Insert 原子的 insert-if-absent，slug 冲突时返回重复键错误（用 IsDupKey 判定）
	Insert(ctx context.Context, post *Post) error
	// Get 按 slug 点查，不存在时返回 (nil, nil)
	Get(ctx context.Context, slug string) (*Post, error)
	Exists(ctx context.Context, slug string) (bool, error)
	// Update $set 合并字段并由服务端刷新 updated_at，返回是否命中文档
	Update(ctx context.Context, slug string, fields bson.M) (bool, error)
	// Delete 返回是否确实删除了文档
	Delete(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, pageSize int, after *PageCursor) ([]*Post, error)
	ListAll(ctx context.Context, status string) ([]*Post, error)
	// ListByStatus 检索用的全量拉取，按 created_at 降序
	ListByStatus(ctx context.Context, status string) ([]*Post, error)
	ListByTag(ctx context.Context, tag string) ([]*Post, error)
	IncrementViews(ctx context.Context, slug string) error
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection("posts"),
	}
}

// IsDupKey 判断是否为主键（slug）冲突
func IsDupKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// Insert 两步写入：先以 slug 为 _id 插入（冲突即失败，天然的 insert-if-absent），
// 再用 $currentDate 让存储端写入自身时钟，避免客户端时钟漂移影响排序。
// 改名场景下 post.CreatedAt 已携带原值，此时只刷新 updated_at。
func (s *postRepoImpl) Insert(ctx context.Context, post *Post) error {
	touchCreated := post.CreatedAt.IsZero()

	if _, err := s.col.InsertOne(ctx, post); err != nil {
		return err
	}

	current := bson.M{"updated_at": true}
	if touchCreated {
		current["created_at"] = true
	}

	// 文档已落盘，时间戳回写失败不反悔；零值时间由展示层按 null 呈现
	if _, err := s.col.UpdateOne(ctx,
		bson.M{"_id": post.Slug},
		bson.M{"$currentDate": current},
	); err != nil {
		log.WarnContext(ctx, "服务端时间戳写入失败", "slug", post.Slug, "err", err)
	}
	return nil
}

func (s *postRepoImpl) Get(ctx context.Context, slug string) (*Post, error) {
	var post Post
	err := s.col.FindOne(ctx, bson.M{"_id": slug}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"_id": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *postRepoImpl) Update(ctx context.Context, slug string, fields bson.M) (bool, error) {
	update := bson.M{"$currentDate": bson.M{"updated_at": true}}
	if len(fields) > 0 {
		update["$set"] = fields
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": slug}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *postRepoImpl) Delete(ctx context.Context, slug string) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": slug})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// ListPublished 已发布列表，(created_at, _id) 双键降序 + search-after 式游标
func (s *postRepoImpl) ListPublished(ctx context.Context, pageSize int, after *PageCursor) ([]*Post, error) {
	filter := bson.M{"status": consts.PostStatusPublished}

	// 游标过滤：严格位于上一页末尾之后
	if after != nil {
		filter["$or"] = []bson.M{
			{"created_at": bson.M{"$lt": after.CreatedAt}},
			{"created_at": after.CreatedAt, "_id": bson.M{"$lt": after.Slug}},
		}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(pageSize))

	return s.find(ctx, filter, findOptions)
}

// ListAll 管理端全量列表，按 updated_at 降序，可选状态过滤
func (s *postRepoImpl) ListAll(ctx context.Context, status string) ([]*Post, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}})

	return s.find(ctx, filter, findOptions)
}

func (s *postRepoImpl) ListByStatus(ctx context.Context, status string) ([]*Post, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	return s.find(ctx, filter, findOptions)
}

// ListByTag 标签内的已发布文章，按 created_at 降序
func (s *postRepoImpl) ListByTag(ctx context.Context, tag string) ([]*Post, error) {
	filter := bson.M{
		"status": consts.PostStatusPublished,
		"tags":   tag,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	return s.find(ctx, filter, findOptions)
}

// IncrementViews 浏览数原子 +1
func (s *postRepoImpl) IncrementViews(ctx context.Context, slug string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": slug},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	return err
}

func (s *postRepoImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Post, error) {
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var posts []*Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
