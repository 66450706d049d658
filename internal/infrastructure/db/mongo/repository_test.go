package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/fintrack/finance-api/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		now := time.Date(2026, 2, 1, 10, 0, 0, 123456789, time.UTC)
		got, err := repo.Create(context.Background(), &domain.User{
			Email: "a@x.com", Name: "Ana", PasswordHash: "hash", CreatedAt: now,
		})
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if got.ID == "" || got.Email != "a@x.com" || got.PasswordHash != "hash" {
			mt.Fatalf("unexpected user: %+v", got)
		}
		if !got.CreatedAt.Equal(now.Truncate(time.Millisecond)) {
			mt.Fatalf("expected millisecond precision, got %v", got.CreatedAt)
		}
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: fintrack.users index: users_email_unique",
		}))

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@x.com"})
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			mt.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	mt.Run("create command failure", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 91, Name: "ShutdownInProgress", Message: "shutting down",
		}))

		_, err := repo.Create(context.Background(), &domain.User{Email: "a@x.com"})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			mt.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	mt.Run("find by email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fintrack.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "a@x.com"},
			{Key: "name", Value: "Ana"},
			{Key: "password_hash", Value: "hash"},
			{Key: "created_at", Value: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		}))

		got, err := repo.FindByEmail(context.Background(), "a@x.com")
		if err != nil {
			mt.Fatalf("FindByEmail: %v", err)
		}
		if got.ID != oid.Hex() || got.Name != "Ana" || got.PasswordHash != "hash" {
			mt.Fatalf("unexpected user: %+v", got)
		}
	})

	mt.Run("find by email missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fintrack.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "ghost@x.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestEntryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "fintrack.entries", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "user_id", Value: "u1"},
				{Key: "kind", Value: "income"},
				{Key: "amount", Value: 100.0},
				{Key: "category", Value: "Salary"},
				{Key: "date", Value: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "user_id", Value: "u1"},
				{Key: "kind", Value: "expense"},
				{Key: "amount", Value: 40.5},
				{Key: "category", Value: "Food"},
				{Key: "date", Value: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			},
		))

		got, err := repo.ListByUser(context.Background(), "u1", "")
		if err != nil {
			mt.Fatalf("ListByUser: %v", err)
		}
		if len(got) != 2 || got[0].ID != first.Hex() || got[1].Kind != domain.KindExpense || got[1].Amount != 40.5 {
			mt.Fatalf("unexpected entries: %+v", got)
		}
	})

	mt.Run("find by invalid id", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		if _, err := repo.FindByID(context.Background(), "u1", "not-an-object-id"); !errors.Is(err, domain.ErrEntryNotFound) {
			mt.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), "u1", primitive.NewObjectID().Hex())
		if !errors.Is(err, domain.ErrEntryNotFound) {
			mt.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewEntryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		if err := repo.Delete(context.Background(), "u1", primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("Delete: %v", err)
		}
	})
}
