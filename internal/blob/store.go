// Package blob stores uploaded product images and issues their public URLs.
package blob

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNotFound = errors.New("object not found")
	ErrExists   = errors.New("object already exists")
)

// unique_violation
const pgUniqueViolation = "23505"

type Object struct {
	Key         string
	ContentType string
	Data        []byte
	Checksum    string
	CreatedAt   time.Time
}

type Store interface {
	// Upload writes a new object. Keys are never overwritten.
	Upload(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Object, error)
	// PublicURL is pure: it does not check that the key exists.
	PublicURL(key string) string
}

// PathPrefix is where the product service serves objects.
const PathPrefix = "/store/blobs/"

type SQLStore struct {
	db      *sql.DB
	baseURL string
}

func NewSQLStore(db *sql.DB, publicBaseURL string) *SQLStore {
	return &SQLStore{db: db, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

func (s *SQLStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_blobs (key, content_type, data, checksum, created_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, key, contentType, data, Checksum(data))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrExists
		}
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (*Object, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var o Object
	err := s.db.QueryRowContext(ctx, `
		SELECT key, content_type, data, checksum, created_at
		FROM store_blobs WHERE key=$1
	`, key).Scan(&o.Key, &o.ContentType, &o.Data, &o.Checksum, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *SQLStore) PublicURL(key string) string {
	return PublicURL(s.baseURL, key)
}

// PublicURL joins a base URL and an object key into the URL the product
// service answers on.
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + PathPrefix + url.PathEscape(key)
}

// Checksum is the hex BLAKE2b-256 digest of data, used as the object's ETag.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
