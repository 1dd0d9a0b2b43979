package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"golang.org/x/sync/errgroup"
)

// File is a workout file found under an import directory.
type File struct {
	Path    string
	RelPath string
	Size    int64
	Hash    string
}

// isWorkoutFile reports whether name is a workout export: .json or .json.gz.
func isWorkoutFile(name string) bool {
	return strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".json.gz")
}

// ScanDir walks dir for workout files and hashes them in parallel. Files are
// returned sorted by relative path.
func ScanDir(ctx context.Context, dir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isWorkoutFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, File{Path: path, RelPath: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hash, err := HashFile(files[i].Path)
			if err != nil {
				return fmt.Errorf("hashing %s: %w", files[i].RelPath, err)
			}
			files[i].Hash = hash
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.RelPath, b.RelPath) })
	return files, nil
}

// Stats tracks import progress.
type Stats struct {
	FilesSeen      int
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsReceived int
	WorkoutsInserted int
	WorkoutsInvalid  int
	SetsInserted     int
}

// Store is the persistence the importer writes to. *storage.DB satisfies it.
type Store interface {
	InsertWorkout(ctx context.Context, w *models.WorkoutSession) error
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log storage.ImportLog) error
}

var _ Store = (*storage.DB)(nil)

// Options configures an Importer.
type Options struct {
	// UserID owns every imported session.
	UserID int

	// DryRun validates and counts without writing to the database or state.
	DryRun bool

	// State skips files imported by earlier runs. Optional.
	State *StateDB
}

// Importer reads workout JSON files from a directory and inserts them into the DB.
type Importer struct {
	store Store
	opts  Options
	log   *slog.Logger
	now   func() time.Time
	stats Stats
}

// New creates a new Importer.
func New(store Store, opts Options, log *slog.Logger) *Importer {
	return &Importer{store: store, opts: opts, log: log, now: time.Now}
}

// Import processes every workout file under dir. Invalid workouts and
// unreadable files are counted and skipped; storage failures abort the run.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	start := imp.now()
	logID := imp.startLog(ctx, dir)

	err := imp.run(ctx, dir)
	imp.finishLog(ctx, logID, start, err)
	return &imp.stats, err
}

func (imp *Importer) run(ctx context.Context, dir string) error {
	files, err := ScanDir(ctx, dir)
	if err != nil {
		return err
	}
	imp.stats.FilesSeen = len(files)

	for _, f := range files {
		if imp.opts.State != nil {
			done, err := imp.opts.State.IsImported(f)
			if err != nil {
				return fmt.Errorf("checking state for %s: %w", f.RelPath, err)
			}
			if done {
				imp.stats.FilesSkipped++
				continue
			}
		}

		inserted, err := imp.importFile(ctx, f)
		if errors.Is(err, errUnreadable) {
			imp.log.Warn("skipping file", "file", f.RelPath, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		if err != nil {
			return err
		}
		imp.stats.FilesProcessed++

		if imp.opts.State != nil && !imp.opts.DryRun {
			if err := imp.opts.State.MarkImported(f, inserted); err != nil {
				return fmt.Errorf("recording state for %s: %w", f.RelPath, err)
			}
		}
	}
	return nil
}

var errUnreadable = errors.New("unreadable workout file")

// importFile inserts every valid workout in f and returns how many were inserted.
func (imp *Importer) importFile(ctx context.Context, f File) (int, error) {
	inputs, err := ReadWorkouts(f.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errUnreadable, err)
	}

	inserted := 0
	for i, in := range inputs {
		imp.stats.WorkoutsReceived++

		session, err := in.Session(imp.opts.UserID, imp.now())
		if err != nil {
			imp.log.Warn("invalid workout", "file", f.RelPath, "index", i, "error", err)
			imp.stats.WorkoutsInvalid++
			continue
		}

		sets := 0
		for _, ex := range session.Exercises {
			sets += len(ex.Sets)
		}

		if !imp.opts.DryRun {
			if err := imp.store.InsertWorkout(ctx, &session); err != nil {
				return inserted, fmt.Errorf("inserting workout %d from %s: %w", i, f.RelPath, err)
			}
		}
		inserted++
		imp.stats.WorkoutsInserted++
		imp.stats.SetsInserted += sets
	}
	return inserted, nil
}

const importSource = "file_import"

func (imp *Importer) startLog(ctx context.Context, dir string) int64 {
	if imp.opts.DryRun {
		return 0
	}
	data, err := json.Marshal(map[string]string{"dir": dir})
	if err != nil {
		imp.log.Warn("encoding import metadata failed", "error", err)
		return 0
	}
	meta := json.RawMessage(data)
	id, err := imp.store.InsertImportLog(ctx, storage.ImportLog{
		UserID:   imp.opts.UserID,
		Source:   importSource,
		Status:   "running",
		Metadata: &meta,
	})
	if err != nil {
		imp.log.Warn("creating import log failed", "error", err)
		return 0
	}
	return id
}

func (imp *Importer) finishLog(ctx context.Context, id int64, start time.Time, runErr error) {
	if id == 0 {
		return
	}
	durationMs := int(imp.now().Sub(start).Milliseconds())
	entry := storage.ImportLog{
		Status:           "success",
		FilesSeen:        imp.stats.FilesSeen,
		WorkoutsReceived: imp.stats.WorkoutsReceived,
		WorkoutsInserted: imp.stats.WorkoutsInserted,
		SetsInserted:     imp.stats.SetsInserted,
		DurationMs:       &durationMs,
	}
	switch {
	case runErr != nil:
		entry.Status = "error"
		msg := runErr.Error()
		entry.ErrorMessage = &msg
	case imp.stats.FilesErrored > 0 || imp.stats.WorkoutsInvalid > 0:
		entry.Status = "partial"
	}
	if err := imp.store.UpdateImportLog(ctx, id, entry); err != nil {
		imp.log.Warn("updating import log failed", "id", id, "error", err)
	}
}
