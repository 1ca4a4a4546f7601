package memdb

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/arzan03/BookNook/internal/apperr"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ db.Store = (*MemDB)(nil)

// MemDB is an in-memory Store for local development and tests.
type MemDB struct {
	mu       sync.RWMutex
	users    []models.User
	books    []models.Book
	comments []models.Comment
	contacts []models.Contact
	now      func() time.Time
}

// New creates an empty in-memory store.
func New() *MemDB {
	return &MemDB{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the timestamp source; used by tests that need ordering.
func (m *MemDB) WithClock(now func() time.Time) *MemDB {
	m.now = now
	return m
}

func (m *MemDB) Ping(ctx context.Context) error  { return nil }
func (m *MemDB) Close(ctx context.Context) error { return nil }

func (m *MemDB) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *MemDB) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *MemDB) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *MemDB) FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return m.findUser(func(u models.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (m *MemDB) findUser(match func(models.User) bool) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, apperr.NewNotFound("User not found")
}

func (m *MemDB) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return m.updateUser(id, func(u *models.User) { u.Password = hash })
}

func (m *MemDB) TouchLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return m.updateUser(id, func(u *models.User) { u.LastLogin = &at })
}

func (m *MemDB) updateUser(id primitive.ObjectID, apply func(*models.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == id {
			apply(&m.users[i])
			return nil
		}
	}
	return apperr.NewNotFound("User not found")
}

func (m *MemDB) InsertBook(ctx context.Context, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	if book.CreatedAt.IsZero() {
		book.CreatedAt = m.now()
	}
	book.UpdatedAt = book.CreatedAt
	if book.Genre == nil {
		book.Genre = []string{}
	}
	m.books = append(m.books, cloneBook(*book))
	return nil
}

// cloneBook detaches Genre so stored books never share a backing array with callers.
func cloneBook(b models.Book) models.Book {
	b.Genre = slices.Clone(b.Genre)
	return b
}

func (m *MemDB) ListBooksByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := []models.Book{}
	for _, b := range m.books {
		if b.UserID == owner {
			books = append(books, cloneBook(b))
		}
	}
	return books, nil
}

func (m *MemDB) CountBooksByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	books, _ := m.ListBooksByOwner(ctx, owner)
	return int64(len(books)), nil
}

func (m *MemDB) DeleteBook(ctx context.Context, owner, id primitive.ObjectID) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.books {
		if b.ID == id && b.UserID == owner {
			m.books = append(m.books[:i], m.books[i+1:]...)
			return b, nil
		}
	}
	return models.Book{}, apperr.NewNotFound("Book not found")
}

func (m *MemDB) ReadCounts(ctx context.Context) ([]models.ReadCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byTitle := make(map[string]*models.ReadCount)
	for _, b := range m.books {
		rc, ok := byTitle[b.Title]
		if !ok {
			rc = &models.ReadCount{ID: b.Title, Author: b.Author, Cover: b.Cover}
			byTitle[b.Title] = rc
		}
		rc.ReaderCount++
	}

	counts := make([]models.ReadCount, 0, len(byTitle))
	for _, rc := range byTitle {
		counts = append(counts, *rc)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].ID < counts[j].ID })
	return counts, nil
}

func (m *MemDB) InsertComment(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = m.now()
	}
	comment.UpdatedAt = comment.CreatedAt
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *MemDB) ListComments(ctx context.Context, catalogID string) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range m.comments {
		if c.OpenLibraryBookID == catalogID {
			comments = append(comments, c)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (m *MemDB) InsertContact(ctx context.Context, contact *models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = m.now()
	}
	m.contacts = append(m.contacts, *contact)
	return nil
}

// Contacts returns a copy of the stored contact messages.
func (m *MemDB) Contacts() []models.Contact {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Contact(nil), m.contacts...)
}

// CommentCount reports how many comments are stored across all catalog ids.
func (m *MemDB) CommentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.comments)
}

// BookCount reports how many books are stored across all owners.
func (m *MemDB) BookCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books)
}
