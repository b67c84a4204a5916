package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"bookshelf/internal/apiclient"
	"bookshelf/internal/paginate"
	"bookshelf/pkg/domain"
)

// BookAPI is the part of the API client the shelf uses.
type BookAPI interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	CreateBook(ctx context.Context, in domain.BookInput) (domain.Book, string, error)
	UpdateBook(ctx context.Context, id string, in domain.BookInput) (domain.Book, error)
	DeleteBook(ctx context.Context, id string) (apiclient.Confirmation, error)
	GetBook(ctx context.Context, id string) (domain.Book, error)
}

const deleteConcurrency = 4

// Shelf is the non-authoritative local copy of the user's books. The list
// keeps server order and changes only after a successful response.
type Shelf struct {
	api    BookAPI
	logger *slog.Logger

	mu    sync.RWMutex
	books []domain.Book
}

// NewShelf returns an empty shelf.
func NewShelf(api BookAPI, logger *slog.Logger) *Shelf {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shelf{api: api, logger: logger}
}

// Refresh replaces the local list with the server's.
func (s *Shelf) Refresh(ctx context.Context) error {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.books = append([]domain.Book(nil), books...)
	s.mu.Unlock()
	s.logger.Debug("shelf refreshed", "count", len(books))
	return nil
}

// Books returns a copy of the local list.
func (s *Shelf) Books() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Book(nil), s.books...)
}

// Len returns the number of books held locally.
func (s *Shelf) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Get fetches one book from the service.
func (s *Shelf) Get(ctx context.Context, id string) (domain.Book, error) {
	return s.api.GetBook(ctx, strings.TrimSpace(id))
}

// Add creates a book and appends it locally. The server message is returned
// for display.
func (s *Shelf) Add(ctx context.Context, in domain.BookInput) (domain.Book, string, error) {
	in, err := cleanInput(in)
	if err != nil {
		return domain.Book{}, "", err
	}
	book, msg, err := s.api.CreateBook(ctx, in)
	if err != nil {
		return domain.Book{}, "", err
	}
	s.mu.Lock()
	s.books = append(s.books, book)
	s.mu.Unlock()
	return book, msg, nil
}

// Update changes a book and replaces the local entry with the same id.
func (s *Shelf) Update(ctx context.Context, id string, in domain.BookInput) (domain.Book, error) {
	id = strings.TrimSpace(id)
	in, err := cleanInput(in)
	if err != nil {
		return domain.Book{}, err
	}
	book, err := s.api.UpdateBook(ctx, id, in)
	if err != nil {
		return domain.Book{}, err
	}
	s.mu.Lock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i] = book
			break
		}
	}
	s.mu.Unlock()
	return book, nil
}

// Delete removes a book remotely, then locally.
func (s *Shelf) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.api.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.remove(id)
	return nil
}

// DeleteMany issues the deletes concurrently. Each success is applied
// locally as it arrives; the first failure is returned.
func (s *Shelf) DeleteMany(ctx context.Context, ids []string) error {
	var g errgroup.Group
	g.SetLimit(deleteConcurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := s.Delete(ctx, id); err != nil {
				s.logger.Warn("delete book failed", "id", id, "err", err)
				return fmt.Errorf("delete %s: %w", id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Page returns the visible page for a viewport width.
func (s *Shelf) Page(width, page int) paginate.Page[domain.Book] {
	return s.PageSized(paginate.PageSizeForWidth(width), page)
}

// PageSized returns the visible page for an explicit page size.
func (s *Shelf) PageSized(size, page int) paginate.Page[domain.Book] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return paginate.Paginate(s.books, size, page)
}

func (s *Shelf) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return
		}
	}
}

func cleanInput(in domain.BookInput) (domain.BookInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Author = strings.TrimSpace(in.Author)
	if in.Name == "" || in.Author == "" {
		return in, ErrInvalidBook
	}
	return in, nil
}
