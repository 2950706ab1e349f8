package store

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fast/pkg/errors"
	"github.com/arthur-debert/fast/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// BackupSuffix is appended to the store path when a malformed file is kept aside.
const BackupSuffix = ".bak"

// Default column widths for rich entries in list output.
const (
	DefaultNameWidth = 15
	DefaultTagsWidth = 20
)

// Layout controls how entries are rendered as list lines.
type Layout struct {
	NameWidth int
	TagsWidth int
}

// DefaultLayout returns the layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{NameWidth: DefaultNameWidth, TagsWidth: DefaultTagsWidth}
}

// Line renders one entry. Simple entries read "name -> path", rich entries
// read "name |tags| -> link" with padded columns.
func (l Layout) Line(name string, e Entry) string {
	if e.Kind == KindRich {
		return fmt.Sprintf("%-*s |%-*s| -> %s", l.NameWidth, name, l.TagsWidth, strings.Join(e.Tags, ","), e.Link)
	}
	return fmt.Sprintf("%s -> %s", name, e.Path)
}

// Store persists Records as a single JSON object in one file.
type Store struct {
	path      string
	fs        afero.Fs
	logger    zerolog.Logger
	backup    bool
	layout    Layout
	malformed bool
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the store reads and writes.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

// WithLogger sets the logger used by the store.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithBackup enables keeping a copy of a malformed file before it is overwritten.
func WithBackup(enabled bool) Option {
	return func(s *Store) { s.backup = enabled }
}

// WithLayout sets the layout used by ListAll.
func WithLayout(layout Layout) Option {
	return func(s *Store) { s.layout = layout }
}

// New creates a Store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		fs:     afero.NewOsFs(),
		logger: logging.GetLogger("store"),
		backup: true,
		layout: DefaultLayout(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Fs returns the filesystem the store uses.
func (s *Store) Fs() afero.Fs { return s.fs }

// Layout returns the layout used to render list lines.
func (s *Store) Layout() Layout { return s.layout }

// Load reads the whole store.
//
// A missing file is created holding an empty object. A file that cannot be
// parsed yields empty Records together with an ErrMalformedStore error; the
// caller is expected to report it and carry on with the empty Records.
func (s *Store) Load() (Records, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("path", s.path).Msg("Store file missing, creating it")
		if err := s.write([]byte("{}\n")); err != nil {
			return nil, err
		}
		return Records{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read store %s", s.path)
	}

	var records Records
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		s.malformed = true
		if err == nil {
			err = fmt.Errorf("store holds null")
		}
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Store file is malformed")
		return Records{}, errors.Wrapf(err, errors.ErrMalformedStore,
			"malformed store file. Hint: check your %s file", s.path).
			WithDetail("path", s.path)
	}

	s.malformed = false
	s.logger.Debug().Str("path", s.path).Int("entries", len(records)).Msg("Store loaded")
	return records, nil
}

// Save replaces the store file with records.
func (s *Store) Save(records Records) error {
	if records == nil {
		records = Records{}
	}

	if s.malformed && s.backup {
		if err := s.keepMalformed(); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode store")
	}
	if err := s.write(append(data, '\n')); err != nil {
		return err
	}

	s.malformed = false
	s.logger.Debug().Str("path", s.path).Int("entries", len(records)).Msg("Store saved")
	return nil
}

// ListAll loads the store and returns its entries as rendered lines in name order.
// Lines are rendered as the sequence is consumed.
func (s *Store) ListAll() (iter.Seq[string], error) {
	records, err := s.Load()
	if err != nil && !errors.IsErrorCode(err, errors.ErrMalformedStore) {
		return nil, err
	}
	seq := func(yield func(string) bool) {
		for name, entry := range records.All() {
			if !yield(s.layout.Line(name, entry)) {
				return
			}
		}
	}
	return seq, err
}

// keepMalformed copies the unparsable file next to the store before it is
// overwritten.
func (s *Store) keepMalformed() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read store %s", s.path)
	}

	backupPath := s.path + BackupSuffix
	if err := afero.WriteFile(s.fs, backupPath, data, 0600); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to back up malformed store to %s", backupPath)
	}
	s.logger.Warn().Str("backup", backupPath).Msg("Kept a copy of the malformed store")
	return nil
}

// write replaces the store file through a temporary file and a rename.
func (s *Store) write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create directory %s", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", tmpName)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", s.path)
	}
	return nil
}
