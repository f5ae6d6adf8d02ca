package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
)

// DefaultPageSize is the number of objects returned per ListCatalog call.
const DefaultPageSize = 200

// catalogStore implements driven.CatalogArchive.
type catalogStore struct {
	store    *Store
	pageSize int
}

var _ driven.CatalogArchive = (*catalogStore)(nil)

// ReplaceCatalog atomically swaps the archived catalog for objects.
// Objects keep their listing order; repeats of the same type and ID keep the first.
func (s *catalogStore) ReplaceCatalog(ctx context.Context, objects []domain.CatalogObject) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning catalog replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_objects"); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO catalog_objects (seq, type, id, is_deleted, data)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing catalog insert: %w", err)
	}
	defer stmt.Close()

	for i := range objects {
		obj := &objects[i]
		if obj.ID == "" || !obj.Type.IsValid() {
			return fmt.Errorf("%w: catalog object %d has no valid type and id", domain.ErrInvalidInput, i)
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return fmt.Errorf("marshalling catalog object %s: %w", obj.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, i+1, string(obj.Type), obj.ID, boolToInt(obj.Deleted), string(data)); err != nil {
			return fmt.Errorf("inserting catalog object %s: %w", obj.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_archive (id, replaced_at, object_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			replaced_at = excluded.replaced_at,
			object_count = excluded.object_count
	`, time.Now().UTC().Format(time.RFC3339), len(objects)); err != nil {
		return fmt.Errorf("recording catalog replace: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog replace: %w", err)
	}
	return nil
}

// ListCatalog returns one page of archived objects. The cursor is the
// sequence number of the last object on the previous page.
func (s *catalogStore) ListCatalog(ctx context.Context, cursor string) (*domain.CatalogPage, error) {
	var after int64
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: catalog cursor %q", domain.ErrInvalidInput, cursor)
		}
		after = n
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT seq, data FROM catalog_objects
		WHERE seq > ?
		ORDER BY seq
		LIMIT ?
	`, after, s.pageSize+1)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	page := &domain.CatalogPage{}
	var lastSeq int64
	for rows.Next() {
		var seq int64
		var data string
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scanning catalog object: %w", err)
		}
		if len(page.Objects) == s.pageSize {
			page.Cursor = strconv.FormatInt(lastSeq, 10)
			break
		}
		var obj domain.CatalogObject
		if err := json.Unmarshal([]byte(data), &obj); err != nil {
			return nil, fmt.Errorf("decoding catalog object %d: %w", seq, err)
		}
		page.Objects = append(page.Objects, obj)
		lastSeq = seq
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog: %w", err)
	}

	return page, nil
}

// CountObjects returns the number of archived objects per type.
func (s *catalogStore) CountObjects(ctx context.Context) (map[domain.CatalogObjectType]int, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT type, COUNT(*) FROM catalog_objects GROUP BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("counting catalog objects: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.CatalogObjectType]int)
	for rows.Next() {
		var objType string
		var n int
		if err := rows.Scan(&objType, &n); err != nil {
			return nil, fmt.Errorf("scanning catalog count: %w", err)
		}
		counts[domain.CatalogObjectType(objType)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog counts: %w", err)
	}
	return counts, nil
}
