package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/fsutil"
)

const sessionExt = ".json"

// Store is a file-backed session store. It assumes a single process and a
// single user: session files are read-modify-write with no cross-process
// locking, and concurrent writers to one id race with last-write-wins.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created lazily on
// the first Create call.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Create generates a fresh session id and persists an empty transcript
// immediately: a session is durable on disk before its first entry exists.
// Ids come from a cryptographically random source; collisions are not
// guaranteed impossible, merely improbable, and the last writer wins.
func (s *Store) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	sess := Session{
		ID:      id,
		Created: time.Now().UTC(),
		History: []Entry{},
	}
	if err := s.persist(sess); err != nil {
		return "", fmt.Errorf("failed to create session %s: %w", id, err)
	}
	ctxlog.FromContext(ctx).Debug("Session created.", "session_id", id)
	return id, nil
}

// Append stamps the entry with the current time and rewrites the session
// record. It never raises: a missing record is a silent no-op, and any
// storage failure is logged and swallowed.
func (s *Store) Append(ctx context.Context, id string, entry Entry) {
	logger := ctxlog.FromContext(ctx)

	sess, ok := s.read(id)
	if !ok {
		logger.Debug("Append to unknown session ignored.", "session_id", id)
		return
	}

	entry.Timestamp = time.Now().UTC()
	sess.History = append(sess.History, entry)

	if err := s.persist(sess); err != nil {
		logger.Warn("Failed to persist session entry.", "session_id", id, "error", err)
	}
}

// Get loads one session. Missing or unreadable records report ok=false; a
// storage fault never reaches the caller as an error.
func (s *Store) Get(ctx context.Context, id string) (Session, bool) {
	sess, ok := s.read(id)
	if !ok {
		ctxlog.FromContext(ctx).Debug("Session not readable.", "session_id", id)
	}
	return sess, ok
}

// MostRecent returns the id of the session file with the newest modification
// time, or ok=false when no sessions exist or the scan fails.
func (s *Store) MostRecent(ctx context.Context) (string, bool) {
	files, err := fsutil.FindFilesByExtension(s.dir, sessionExt)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Session scan failed.", "dir", s.dir, "error", err)
		return "", false
	}
	if len(files) == 0 {
		return "", false
	}

	newest := files[0]
	for _, f := range files[1:] {
		if f.Info.ModTime().After(newest.Info.ModTime()) {
			newest = f
		}
	}
	return idFromPath(newest.Path), true
}

// List returns up to limit session summaries, newest modification first. Any
// failure during the scan, or any individual record that fails to decode,
// degrades to a smaller (possibly empty) result.
func (s *Store) List(ctx context.Context, limit int) []Summary {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(s.dir, sessionExt)
	if err != nil {
		logger.Warn("Session scan failed.", "dir", s.dir, "error", err)
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Info.ModTime().After(files[j].Info.ModTime())
	})

	summaries := make([]Summary, 0, len(files))
	for _, f := range files {
		if limit > 0 && len(summaries) >= limit {
			break
		}
		sess, ok := s.read(idFromPath(f.Path))
		if !ok {
			continue
		}
		summaries = append(summaries, Summary{
			ID:         sess.ID,
			Created:    sess.Created,
			EntryCount: len(sess.History),
		})
	}
	return summaries
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+sessionExt)
}

func idFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), sessionExt)
}

func (s *Store) read(id string) (Session, bool) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	return sess, true
}

// persist rewrites the whole record through a temp file and rename so a
// partially written file never replaces a good one.
func (s *Store) persist(sess Session) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(sess.ID)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
