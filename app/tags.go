package app

import (
	"errors"
	"fmt"

	"github.com/pmarin/filedex/models"
)

// AddTag attaches tag to path. Adding a pair that already exists is a
// successful no-op. The path is kept as given: tags are plain string
// associations and never require a matching archivos row.
func (s *Store) AddTag(path, tag string) error {
	if path == "" {
		return errors.New("path must not be empty")
	}
	if tag == "" {
		return errors.New("tag must not be empty")
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO tags(file_path, tag) VALUES (?, ?)`, path, tag)
	if err != nil {
		return fmt.Errorf("%w: add tag %q to %s: %v", ErrStorage, tag, path, err)
	}
	return nil
}

// RemoveTag deletes the pair if present. Removing an absent pair succeeds
// and changes nothing.
func (s *Store) RemoveTag(path, tag string) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE file_path = ? AND tag = ?`, path, tag)
	if err != nil {
		return fmt.Errorf("%w: remove tag %q from %s: %v", ErrStorage, tag, path, err)
	}
	return nil
}

// TagsFor returns the tags recorded for the literal path string, sorted so
// repeated listings print identically. Paths with no tags yield a nil slice.
func (s *Store) TagsFor(path string) ([]string, error) {
	rows, err := s.db.Query(`SELECT tag FROM tags WHERE file_path = ? ORDER BY tag`, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return tags, nil
}

// TagCounts returns every tag with the number of paths holding it, most
// used first. Ties resolve by tag name ascending so output is reproducible.
func (s *Store) TagCounts() ([]models.TagCount, error) {
	rows, err := s.db.Query(`
        SELECT tag, COUNT(*) AS cnt
        FROM tags
        GROUP BY tag
        ORDER BY cnt DESC, tag ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer rows.Close()

	var counts []models.TagCount
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return counts, nil
}
