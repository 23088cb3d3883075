// Package store implements the document database underneath the board: a
// single sqlite table of (collection, id, body) rows with query and
// subscribe primitives, plus typed accessors for each record kind.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultTimeout = 5 * time.Second

// Collection names.
const (
	ColTasks    = "tasks"
	ColClients  = "clients"
	ColProjects = "projects"
	ColPeople   = "people"
	ColFocus    = "dailyFocus"
	ColStandups = "standups"
)

// Document is one raw record as returned by Query.
type Document struct {
	ID   string
	Body []byte
}

// Store is the document database. Safe for concurrent use.
type Store struct {
	DB     *sql.DB
	dbFile string

	mu   sync.Mutex
	subs map[int64]*subscription
	next int64
}

type subscription struct {
	query *Query
	fn    func(Document)
}

// Open opens (or creates) the store at the given path.
func Open(ctx context.Context, filepath string) (*Store, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, wrapErr("open", "store", "", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapErr("open", "store", "", err)
	}
	s := &Store{DB: db, dbFile: filepath, subs: make(map[int64]*subscription)}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, id)
		);`)
	return wrapErr("migrate", "documents", "", err)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}

// Get fetches one document body. Returns ErrNotFound for missing ids.
func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var body string
	err := s.DB.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND id = ?",
		collection, id).Scan(&body)
	if err == sql.ErrNoRows {
		return wrapErr("get", collection, id, ErrNotFound)
	}
	if err != nil {
		return wrapErr("get", collection, id, err)
	}
	return wrapErr("get", collection, id, json.Unmarshal([]byte(body), out))
}

// Put upserts a full document, replacing any existing body.
func (s *Store) Put(ctx context.Context, collection, id string, doc any) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	body, err := json.Marshal(doc)
	if err != nil {
		return wrapErr("put", collection, id, err)
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(collection, id)
		DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		collection, id, string(body))
	if err != nil {
		return wrapErr("put", collection, id, err)
	}
	s.notify(collection, Document{ID: id, Body: body})
	return nil
}

// Merge overlays the given fields onto an existing document, creating it
// when absent.
func (s *Store) Merge(ctx context.Context, collection, id string, fields map[string]any) error {
	var current map[string]any
	err := s.Get(ctx, collection, id, &current)
	if err != nil && !IsNotFound(err) {
		return err
	}
	if current == nil {
		current = make(map[string]any)
	}
	for k, v := range fields {
		current[k] = v
	}
	return s.Put(ctx, collection, id, current)
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.DB.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	return wrapErr("delete", collection, id, err)
}

// Run executes a query, returning matching raw documents.
func (s *Store) Run(ctx context.Context, q *Query) ([]Document, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, body FROM documents WHERE collection = ? ORDER BY id ASC",
		q.collection)
	if err != nil {
		return nil, wrapErr("query", q.collection, "", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var body string
		if err := rows.Scan(&doc.ID, &body); err != nil {
			return nil, wrapErr("query", q.collection, "", err)
		}
		doc.Body = []byte(body)
		var decoded map[string]any
		if err := json.Unmarshal(doc.Body, &decoded); err != nil {
			return nil, wrapErr("query", q.collection, doc.ID, err)
		}
		if !q.matches(decoded) {
			continue
		}
		out = append(out, doc)
		if q.limit > 0 && len(out) >= q.limit {
			break
		}
	}
	return out, wrapErr("query", q.collection, "", rows.Err())
}

// Subscribe registers a callback fired after every write matching the
// query. The returned function unsubscribes.
func (s *Store) Subscribe(q *Query, fn func(Document)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.subs[id] = &subscription{query: q, fn: fn}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(collection string, doc Document) {
	s.mu.Lock()
	var fire []func(Document)
	for _, sub := range s.subs {
		if sub.query.collection != collection {
			continue
		}
		var decoded map[string]any
		if err := json.Unmarshal(doc.Body, &decoded); err != nil {
			continue
		}
		if sub.query.matches(decoded) {
			fire = append(fire, sub.fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range fire {
		fn(doc)
	}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
