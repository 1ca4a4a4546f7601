package memdb

import (
	"context"
	"testing"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemDB_FindUserByIdentifier(t *testing.T) {
	store := New()
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))
	assert.False(t, user.ID.IsZero())

	byName, err := store.FindUserByIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := store.FindUserByIdentifier(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.FindUserByIdentifier(ctx, "bob")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMemDB_DeleteBookIsOwnerScoped(t *testing.T) {
	store := New()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	book := &models.Book{Title: "Dune", Author: "Frank Herbert", UserID: owner}
	require.NoError(t, store.InsertBook(ctx, book))

	_, err := store.DeleteBook(ctx, other, book.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 1, store.BookCount())

	deleted, err := store.DeleteBook(ctx, owner, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)
	assert.Equal(t, 0, store.BookCount())
}

func TestMemDB_ListedBooksDoNotAliasStore(t *testing.T) {
	store := New()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	genre := []string{"Fantasy"}
	require.NoError(t, store.InsertBook(ctx, &models.Book{Title: "Dune", UserID: owner, Genre: genre}))
	genre[0] = "changed by caller"

	books, err := store.ListBooksByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, books, 1)
	books[0].Genre[0] = "changed by reader"

	again, err := store.ListBooksByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fantasy"}, again[0].Genre)
}

func TestMemDB_ReadCountsKeepsFirstSeenAuthor(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.InsertBook(ctx, &models.Book{Title: "Emma", Author: "Jane Austen", Cover: "c1", UserID: primitive.NewObjectID()}))
	require.NoError(t, store.InsertBook(ctx, &models.Book{Title: "Dune", Author: "Frank Herbert", Cover: "c2", UserID: primitive.NewObjectID()}))
	require.NoError(t, store.InsertBook(ctx, &models.Book{Title: "Emma", Author: "J. Austen", Cover: "c3", UserID: primitive.NewObjectID()}))

	counts, err := store.ReadCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	assert.Equal(t, models.ReadCount{ID: "Dune", Author: "Frank Herbert", Cover: "c2", ReaderCount: 1}, counts[0])
	assert.Equal(t, models.ReadCount{ID: "Emma", Author: "Jane Austen", Cover: "c1", ReaderCount: 2}, counts[1])
}

func TestMemDB_ListCommentsNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store := New().WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, store.InsertComment(ctx, &models.Comment{
			OpenLibraryBookID: "OL1W", Username: "alice", Content: content, Rating: 4,
		}))
	}
	require.NoError(t, store.InsertComment(ctx, &models.Comment{
		OpenLibraryBookID: "OL2W", Username: "bob", Content: "elsewhere", Rating: 2,
	}))

	comments, err := store.ListComments(ctx, "OL1W")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)

	empty, err := store.ListComments(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
