package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// MaxSearchDepth 深分页保护
const MaxSearchDepth = 400

type PostRepo interface {
	// IndexPost 以 updated_at 毫秒数作外部版本，旧版本写入被静默忽略
	IndexPost(ctx context.Context, post *PostES, version int64) error
	// DeletePost 文档不存在视为成功
	DeletePost(ctx context.Context, slug string) error
	SearchPosts(ctx context.Context, term, status string, from, size int) ([]*PostES, error)
}

type postRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &postRepoImpl{client: client}
}

func (s *postRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	_, err := s.client.Index(PostIndex).
		Id(post.Slug).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *postRepoImpl) DeletePost(ctx context.Context, slug string) error {
	_, err := s.client.Delete(PostIndex, slug).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

// SearchPosts 标题/正文/摘要/标签上的 multi_match，限定状态，相关度优先、时间兜底排序
func (s *postRepoImpl) SearchPosts(ctx context.Context, term, status string, from, size int) ([]*PostES, error) {
	if from >= MaxSearchDepth {
		return []*PostES{}, nil
	}

	searchReq := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:  term,
							Fields: []string{"title^3", "excerpt^2", "content", "tags^3"},
						},
					},
				},
				Filter: []types.Query{
					{
						Term: map[string]types.TermQuery{
							"status": {Value: status},
						},
					},
				},
			},
		}).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"_score": {Order: &sortorder.Desc},
			}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortorder.Desc},
			}},
		).
		From(from).
		Size(size)

	return s.executeSearch(ctx, searchReq)
}

func (s *postRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*PostES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var post PostES
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			continue
		}
		if len(hit.Sort) > 0 {
			post.Sort = make([]interface{}, len(hit.Sort))
			for i, v := range hit.Sort {
				post.Sort[i] = v
			}
		}
		results = append(results, &post)
	}
	return results, nil
}
