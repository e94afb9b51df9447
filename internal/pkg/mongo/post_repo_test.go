package mongo

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestInsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("时间戳回写失败不反悔", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11601,
				Name:    "Interrupted",
				Message: "operation was interrupted",
			}),
		)

		if err := repo.Insert(context.Background(), &Post{
			Slug:  "hello-world",
			Title: "Hello World",
		}); err != nil {
			mt.Fatalf("Insert: %v", err)
		}
	})

	mt.Run("slug 冲突返回重复键错误", func(mt *mtest.T) {
		repo := NewPostRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := repo.Insert(context.Background(), &Post{Slug: "hello-world"})
		if err == nil || !IsDupKey(err) {
			mt.Fatalf("expected duplicate key error, got %v", err)
		}
	})
}
