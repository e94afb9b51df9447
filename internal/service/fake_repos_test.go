package service

import (
	"Inkstone/internal/pkg/mongo"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// fakePostRepo 内存版文章仓储，时钟按插入顺序单调递增，方便断言排序
type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[string]*mongo.Post
	clock     time.Time
	deleteErr map[string]error
	viewsErr  error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:     make(map[string]*mongo.Post),
		clock:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		deleteErr: make(map[string]error),
	}
}

func dupKeyErr() error {
	return driver.WriteException{WriteErrors: driver.WriteErrors{{Code: 11000}}}
}

func (f *fakePostRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakePostRepo) Insert(ctx context.Context, post *mongo.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.posts[post.Slug]; ok {
		return dupKeyErr()
	}

	stored := *post
	now := f.tick()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	f.posts[stored.Slug] = &stored
	return nil
}

func (f *fakePostRepo) Get(ctx context.Context, slug string) (*mongo.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[slug]
	if !ok {
		return nil, nil
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) Exists(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.posts[slug]
	return ok, nil
}

func (f *fakePostRepo) Update(ctx context.Context, slug string, fields bson.M) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[slug]
	if !ok {
		return false, nil
	}

	for key, value := range fields {
		switch key {
		case "title":
			post.Title = value.(string)
		case "content":
			post.Content = value.(string)
		case "excerpt":
			post.Excerpt = value.(string)
		case "status":
			post.Status = value.(string)
		case "tags":
			post.Tags = value.([]string)
		case "categories":
			post.Categories = value.([]string)
		case "featured_image":
			post.FeaturedImage = value.(string)
		}
	}
	post.UpdatedAt = f.tick()
	return true, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.deleteErr[slug]; err != nil {
		return false, err
	}
	_, ok := f.posts[slug]
	delete(f.posts, slug)
	return ok, nil
}

func (f *fakePostRepo) ListPublished(ctx context.Context, pageSize int, after *mongo.PageCursor) ([]*mongo.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*mongo.Post
	for _, post := range f.posts {
		if post.Status != "published" {
			continue
		}
		if after != nil {
			if post.CreatedAt.After(after.CreatedAt) {
				continue
			}
			if post.CreatedAt.Equal(after.CreatedAt) && post.Slug >= after.Slug {
				continue
			}
		}
		clone := *post
		result = append(result, &clone)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].Slug > result[j].Slug
	})

	if len(result) > pageSize {
		result = result[:pageSize]
	}
	return result, nil
}

func (f *fakePostRepo) ListAll(ctx context.Context, status string) ([]*mongo.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*mongo.Post
	for _, post := range f.posts {
		if status != "" && post.Status != status {
			continue
		}
		clone := *post
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (f *fakePostRepo) ListByStatus(ctx context.Context, status string) ([]*mongo.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*mongo.Post
	for _, post := range f.posts {
		if status != "" && post.Status != status {
			continue
		}
		clone := *post
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakePostRepo) ListByTag(ctx context.Context, tag string) ([]*mongo.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*mongo.Post
	for _, post := range f.posts {
		if post.Status != "published" {
			continue
		}
		for _, t := range post.Tags {
			if t == tag {
				clone := *post
				result = append(result, &clone)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakePostRepo) IncrementViews(ctx context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.viewsErr != nil {
		return f.viewsErr
	}
	if post, ok := f.posts[slug]; ok {
		post.Views++
	}
	return nil
}

type fakeRepairRepo struct {
	mu      sync.Mutex
	repairs map[string]string
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: make(map[string]string)}
}

func (f *fakeRepairRepo) Add(ctx context.Context, oldSlug, newSlug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repairs[oldSlug] = newSlug
	return nil
}

func (f *fakeRepairRepo) List(ctx context.Context) ([]*mongo.SlugRepair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*mongo.SlugRepair
	for old, fresh := range f.repairs {
		result = append(result, &mongo.SlugRepair{OldSlug: old, NewSlug: fresh})
	}
	return result, nil
}

func (f *fakeRepairRepo) Remove(ctx context.Context, oldSlug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.repairs, oldSlug)
	return nil
}

type fakeAuthorRepo struct {
	mu      sync.Mutex
	byID    map[string]*mongo.Author
	byEmail map[string]*mongo.Author

	// hideOnLookup 让 GetByEmail 装作没命中，模拟并发注册里
	// 先查后插之间被别人抢先的窗口，此时唯一索引兜底
	hideOnLookup bool
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{
		byID:    make(map[string]*mongo.Author),
		byEmail: make(map[string]*mongo.Author),
	}
}

func (f *fakeAuthorRepo) Insert(ctx context.Context, author *mongo.Author) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byEmail[author.Email]; ok {
		return dupKeyErr()
	}
	clone := *author
	f.byID[clone.ID] = &clone
	f.byEmail[clone.Email] = &clone
	return nil
}

func (f *fakeAuthorRepo) GetByID(ctx context.Context, id string) (*mongo.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	author, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *author
	return &clone, nil
}

func (f *fakeAuthorRepo) GetByEmail(ctx context.Context, email string) (*mongo.Author, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	author, ok := f.byEmail[email]
	if !ok || f.hideOnLookup {
		return nil, nil
	}
	clone := *author
	return &clone, nil
}

func (f *fakeAuthorRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}
