package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/longlongdada/lenskit/blobstore"
	"github.com/longlongdada/lenskit/store"
)

const (
	// SnapshotPrefix prefixes every snapshot object name.
	SnapshotPrefix = "snap-"

	// SnapshotExt is the snapshot file extension.
	SnapshotExt = ".lks"

	snapshotNameFormat = SnapshotPrefix + "%06d" + SnapshotExt
)

// Publisher writes versioned snapshots to a blob store and tracks the
// current one through a catalog. Snapshot names are monotonically
// numbered; readers resolve the latest via the catalog, so a snapshot
// becomes visible only after its catalog entry is committed.
type Publisher struct {
	store   blobstore.Store
	catalog blobstore.Catalog
}

// NewPublisher creates a Publisher over the given store and catalog.
func NewPublisher(st blobstore.Store, cat blobstore.Catalog) *Publisher {
	return &Publisher{store: st, catalog: cat}
}

// Publish writes a new snapshot of st and marks it current. It returns
// the name of the published snapshot. A snapshot that fails to write
// completely is deleted and never published.
func (p *Publisher) Publish(ctx context.Context, st *store.MemoryStore, optFns ...Option) (string, error) {
	id, err := p.nextID(ctx)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf(snapshotNameFormat, id)

	w, err := p.store.Create(ctx, name)
	if err != nil {
		return "", fmt.Errorf("create snapshot %s: %w", name, err)
	}
	if err := Write(w, st, optFns...); err != nil {
		_ = w.Close()
		_ = p.store.Delete(ctx, name)
		return "", fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		_ = p.store.Delete(ctx, name)
		return "", fmt.Errorf("close snapshot %s: %w", name, err)
	}

	if err := p.catalog.Publish(ctx, name); err != nil {
		return "", fmt.Errorf("publish snapshot %s: %w", name, err)
	}
	return name, nil
}

// Load reads the current snapshot and returns its ratings together
// with the snapshot name. It returns blobstore.ErrNotFound if no
// snapshot has been published yet.
func (p *Publisher) Load(ctx context.Context) (*store.MemoryStore, string, error) {
	name, err := p.catalog.Current(ctx)
	if err != nil {
		return nil, "", err
	}

	r, err := p.store.Open(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("open snapshot %s: %w", name, err)
	}
	defer r.Close()

	st, err := Read(r)
	if err != nil {
		return nil, "", fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return st, name, nil
}

// List returns the names of all snapshots in the store, oldest first.
func (p *Publisher) List(ctx context.Context) ([]string, error) {
	names, err := p.store.List(ctx, SnapshotPrefix)
	if err != nil {
		return nil, err
	}

	snapshots := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := parseSnapshotName(name); ok {
			snapshots = append(snapshots, name)
		}
	}
	return snapshots, nil
}

// Prune deletes old snapshots, keeping the newest keep snapshots. The
// current snapshot is never deleted. It returns the number of
// snapshots removed.
func (p *Publisher) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	names, err := p.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(names) <= keep {
		return 0, nil
	}

	current, err := p.catalog.Current(ctx)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return 0, err
	}

	deleted := 0
	for _, name := range names[:len(names)-keep] {
		if name == current {
			continue
		}
		if err := p.store.Delete(ctx, name); err != nil {
			return deleted, fmt.Errorf("delete snapshot %s: %w", name, err)
		}
		deleted++
	}
	return deleted, nil
}

func (p *Publisher) nextID(ctx context.Context) (int, error) {
	names, err := p.store.List(ctx, SnapshotPrefix)
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}

	maxID := 0
	for _, name := range names {
		if id, ok := parseSnapshotName(name); ok && id > maxID {
			maxID = id
		}
	}
	return maxID + 1, nil
}

func parseSnapshotName(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, SnapshotPrefix)
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, SnapshotExt)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
