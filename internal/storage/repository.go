package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guttosm/stockfn/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrDocumentNotFound is returned when a document id does not resolve to a stored document.
var ErrDocumentNotFound = errors.New("document not found")

// StockRepository defines the contract for the stock record store.
//
// FindByCode is an equality filter and returns every match; deciding whether
// zero or several matches is an error belongs to the caller.
type StockRepository interface {
	FindByCode(ctx context.Context, code string) ([]models.StockDocument, error)
	Get(ctx context.Context, id string) (*models.StockDocument, error)
	Insert(ctx context.Context, stock models.Stock) (string, error)
	InsertBatch(ctx context.Context, stocks []models.Stock) (int, error)
	Update(ctx context.Context, id string, patch models.StockPatch) error
	Ping(ctx context.Context) error
}

// newID is an indirection for tests; Postgres documents are keyed by UUID.
var newID = uuid.NewString

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a StockRepository backed by the JSONB "stock" table.
func NewPostgresRepository(db *sql.DB) StockRepository {
	return &postgresRepository{db: db}
}

// FindByCode returns all documents whose data->>'code' equals code, oldest first.
func (r *postgresRepository) FindByCode(ctx context.Context, code string) ([]models.StockDocument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM stock WHERE data->>'code' = $1 ORDER BY created_at`, code)
	if err != nil {
		return nil, fmt.Errorf("query stock by code: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []models.StockDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock rows: %w", err)
	}
	return docs, nil
}

// Get loads a single document by id.
func (r *postgresRepository) Get(ctx context.Context, id string) (*models.StockDocument, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, data FROM stock WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Insert stores a new document and returns its id.
func (r *postgresRepository) Insert(ctx context.Context, stock models.Stock) (string, error) {
	data, err := json.Marshal(stock)
	if err != nil {
		return "", fmt.Errorf("encode stock: %w", err)
	}
	id := newID()
	if _, err := r.db.ExecContext(ctx, `INSERT INTO stock (id, data) VALUES ($1, $2)`, id, string(data)); err != nil {
		return "", fmt.Errorf("insert stock: %w", err)
	}
	return id, nil
}

// InsertBatch inserts multiple documents in a single transaction using COPY.
func (r *postgresRepository) InsertBatch(ctx context.Context, stocks []models.Stock) (int, error) {
	if len(stocks) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("stock", "id", "data"))
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for _, s := range stocks {
		data, err := json.Marshal(s)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, fmt.Errorf("encode stock %s: %w", s.Code, err)
		}
		if _, err := stmt.ExecContext(ctx, newID(), string(data)); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return 0, err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(stocks), nil
}

// Update merges the set patch fields into the stored JSONB document.
func (r *postgresRepository) Update(ctx context.Context, id string, patch models.StockPatch) error {
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE stock SET data = data || $2::jsonb WHERE id = $1`, id, string(data))
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("stock %s: %w", id, ErrDocumentNotFound)
	}
	return nil
}

// Ping verifies connectivity.
func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(s rowScanner) (models.StockDocument, error) {
	var (
		doc models.StockDocument
		raw []byte
	)
	if err := s.Scan(&doc.ID, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doc, err
		}
		return doc, fmt.Errorf("scan stock row: %w", err)
	}
	if err := json.Unmarshal(raw, &doc.Stock); err != nil {
		return doc, fmt.Errorf("decode stock %s: %w", doc.ID, err)
	}
	return doc, nil
}
