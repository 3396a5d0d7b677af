package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s: visitor data lives in local_storage_entries (visitor_id, storage_key, value).
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- undo %[1]s
-- +goose StatementEnd
`

// migrationSlug turns "Add Contact Index" into "add_contact_index".
func migrationSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// NewMigration writes an empty goose migration named <version>_<slug>.sql into
// dir, versioned by at in UTC. An existing file with the same name is an error.
func NewMigration(dir, name string, at time.Time) (string, error) {
	if dir == "" {
		return "", errors.New("migrations dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir %q: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", at.UTC().Format(versionLayout), slug))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("migration already exists: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("open migration %q: %w", path, err)
	}
	if _, err := fmt.Fprintf(f, migrationTemplate, slug); err != nil {
		f.Close()
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close migration %q: %w", path, err)
	}
	return path, nil
}
