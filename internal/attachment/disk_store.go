package attachment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTooLarge = errors.New("attachment exceeds size limit")
	ErrNotFound = errors.New("attachment not found")
)

// Blob describes a stored file. It is written next to the file as
// {id}.json.
type Blob struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams r to disk. Bodies larger than limit are discarded and
// reported as ErrTooLarge.
func (s *DiskStore) Save(meta Blob, r io.Reader, limit int64) (*Blob, error) {
	meta.ID = uuid.NewString()
	meta.CreatedAt = time.Now().UTC()

	path := filepath.Join(s.dir, meta.ID)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > limit {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	meta.Size = n

	sidecar, err := json.Marshal(meta)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	if err := os.WriteFile(path+".json", sidecar, 0o644); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write blob metadata: %w", err)
	}

	return &meta, nil
}

// Open returns the metadata and content of a stored blob. Ids that are not
// uuids never touch the filesystem.
func (s *DiskStore) Open(id string) (*Blob, *os.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, ErrNotFound
	}
	path := filepath.Join(s.dir, id)

	raw, err := os.ReadFile(path + ".json")
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	var meta Blob
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, fmt.Errorf("read blob metadata: %w", err)
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return &meta, f, nil
}
