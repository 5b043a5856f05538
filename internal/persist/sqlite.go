package persist

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/vmunix/medialog/internal/library"
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores snapshots in a relational database. The caller owns the
// *sql.DB and its driver registration.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a sqlite provider and applies the schema.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (library.Snapshot, bool, error) {
	var initialized string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'initialized'`).Scan(&initialized)
	if err == sql.ErrNoRows {
		return library.Snapshot{}, false, nil
	}
	if err != nil {
		return library.Snapshot{}, false, fmt.Errorf("read meta: %w", err)
	}

	snap := library.Snapshot{Items: []*library.MediaItem{}, Collections: []*library.Collection{}}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, type, year, poster, rating, watched, description, genres, director, related_media
		FROM media ORDER BY position`)
	if err != nil {
		return library.Snapshot{}, false, fmt.Errorf("list media: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		m := &library.MediaItem{}
		var rating sql.NullInt64
		var watched int
		var genres, related string
		if err := rows.Scan(&m.ID, &m.Title, &m.Type, &m.Year, &m.Poster, &rating,
			&watched, &m.Description, &genres, &m.Director, &related); err != nil {
			return library.Snapshot{}, false, fmt.Errorf("scan media: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			m.Rating = &r
		}
		m.Watched = watched != 0
		if err := json.Unmarshal([]byte(genres), &m.Genres); err != nil {
			return library.Snapshot{}, false, fmt.Errorf("decode genres for %s: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(related), &m.RelatedMedia); err != nil {
			return library.Snapshot{}, false, fmt.Errorf("decode related media for %s: %w", m.ID, err)
		}
		snap.Items = append(snap.Items, m)
	}
	if err := rows.Err(); err != nil {
		return library.Snapshot{}, false, fmt.Errorf("iterate media: %w", err)
	}

	collections, err := s.loadCollections(ctx)
	if err != nil {
		return library.Snapshot{}, false, err
	}
	snap.Collections = collections

	return snap, true, nil
}

func (s *SQLite) loadCollections(ctx context.Context) ([]*library.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, image FROM collections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var collections []*library.Collection
	for rows.Next() {
		c := &library.Collection{MediaIDs: []string{}}
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}

	for _, c := range collections {
		memberRows, err := s.db.QueryContext(ctx,
			`SELECT media_id FROM collection_media WHERE collection_id = ? ORDER BY position`, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list members of %s: %w", c.ID, err)
		}
		for memberRows.Next() {
			var id string
			if err := memberRows.Scan(&id); err != nil {
				_ = memberRows.Close()
				return nil, fmt.Errorf("scan member: %w", err)
			}
			c.MediaIDs = append(c.MediaIDs, id)
		}
		if err := memberRows.Err(); err != nil {
			_ = memberRows.Close()
			return nil, fmt.Errorf("iterate members: %w", err)
		}
		_ = memberRows.Close()
	}
	return collections, nil
}

// Save replaces the stored snapshot inside a single transaction.
func (s *SQLite) Save(ctx context.Context, snap library.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"collection_media", "collections", "media"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, m := range snap.Items {
		genres, err := json.Marshal(m.Genres)
		if err != nil {
			return fmt.Errorf("encode genres for %s: %w", m.ID, err)
		}
		related, err := json.Marshal(m.RelatedMedia)
		if err != nil {
			return fmt.Errorf("encode related media for %s: %w", m.ID, err)
		}
		var rating any
		if m.Rating != nil {
			rating = *m.Rating
		}
		watched := 0
		if m.Watched {
			watched = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO media (id, position, title, type, year, poster, rating, watched, description, genres, director, related_media)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, i, m.Title, m.Type, m.Year, m.Poster, rating, watched,
			m.Description, string(genres), m.Director, string(related),
		); err != nil {
			return fmt.Errorf("insert media %s: %w", m.ID, err)
		}
	}

	for i, c := range snap.Collections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO collections (id, position, name, image) VALUES (?, ?, ?, ?)`,
			c.ID, i, c.Name, c.Image,
		); err != nil {
			return fmt.Errorf("insert collection %s: %w", c.ID, err)
		}
		for j, mediaID := range c.MediaIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO collection_media (collection_id, media_id, position) VALUES (?, ?, ?)`,
				c.ID, mediaID, j,
			); err != nil {
				return fmt.Errorf("insert member %s of %s: %w", mediaID, c.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('initialized', '1')
		 ON CONFLICT(key) DO UPDATE SET value = '1'`); err != nil {
		return fmt.Errorf("mark initialized: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
