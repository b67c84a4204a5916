package app

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"bookshelf/internal/apiclient"
	"bookshelf/pkg/domain"
)

type fakeAPI struct {
	mu        sync.Mutex
	books     []domain.Book
	nextID    int
	failNext  error
	failIDs   map[string]error
	loginUser domain.User
	token     string
}

func newFakeAPI(books ...domain.Book) *fakeAPI {
	return &fakeAPI{
		books:     books,
		nextID:    100,
		failIDs:   map[string]error{},
		loginUser: domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
		token:     "tok-1",
	}
}

func (f *fakeAPI) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (apiclient.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return apiclient.LoginResult{}, err
	}
	if password != "secret" {
		return apiclient.LoginResult{}, &apiclient.AuthError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return apiclient.LoginResult{Token: f.token, User: f.loginUser}, nil
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (apiclient.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return apiclient.Confirmation{}, err
	}
	return apiclient.Confirmation{Message: "User registered"}, nil
}

func (f *fakeAPI) ListBooks(context.Context) ([]domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	return append([]domain.Book(nil), f.books...), nil
}

func (f *fakeAPI) CreateBook(_ context.Context, in domain.BookInput) (domain.Book, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return domain.Book{}, "", err
	}
	b := domain.Book{ID: strconv.Itoa(f.nextID), Name: in.Name, Author: in.Author}
	f.nextID++
	f.books = append(f.books, b)
	return b, "Book added", nil
}

func (f *fakeAPI) UpdateBook(_ context.Context, id string, in domain.BookInput) (domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return domain.Book{}, err
	}
	for i := range f.books {
		if f.books[i].ID == id {
			f.books[i].Name, f.books[i].Author = in.Name, in.Author
			return f.books[i], nil
		}
	}
	return domain.Book{}, &apiclient.APIError{Status: http.StatusNotFound, Message: "Book not found"}
}

func (f *fakeAPI) DeleteBook(_ context.Context, id string) (apiclient.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return apiclient.Confirmation{}, err
	}
	if err := f.failIDs[id]; err != nil {
		return apiclient.Confirmation{}, err
	}
	for i := range f.books {
		if f.books[i].ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return apiclient.Confirmation{Message: "Book deleted"}, nil
		}
	}
	return apiclient.Confirmation{}, &apiclient.APIError{Status: http.StatusNotFound, Message: "Book not found"}
}

func (f *fakeAPI) GetBook(_ context.Context, id string) (domain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, &apiclient.APIError{Status: http.StatusNotFound, Message: "Book not found"}
}

func books(n int) []domain.Book {
	out := make([]domain.Book, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Book{ID: strconv.Itoa(i), Name: "Book " + strconv.Itoa(i), Author: "Author"})
	}
	return out
}
