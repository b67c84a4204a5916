package domain

import "encoding/json"

// Book is the client-side copy of a book owned by the bookshelf service.
type Book struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
}

// UnmarshalJSON accepts both "id" and the Mongo-style "_id" the service may send.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
		Author  string `json:"author"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.ID = raw.ID
	if b.ID == "" {
		b.ID = raw.MongoID
	}
	b.Name = raw.Name
	b.Author = raw.Author
	return nil
}

// BookInput is the request body for creating or updating a book.
type BookInput struct {
	Name   string `json:"name"`
	Author string `json:"author"`
}

// User is the account profile returned at login and cached alongside the token.
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is what survives between runs: the bearer token and the
// profile snapshot captured at login.
type Credential struct {
	Token string
	User  *User
}
