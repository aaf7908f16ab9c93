package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/catalog"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/config"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/fs"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/logging"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

// app carries what every command needs once global flags and config are
// resolved.
type app struct {
	cfg     *config.Config
	catalog *catalog.MasterData
	fs      fs.FS
	log     *logging.Logger
	in      io.Reader
	env     map[string]string
}

func (a *app) store() *session.Store {
	return session.NewStore(a.fs, a.cfg.SessionAbs)
}

func (a *app) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(a.log)}

	if a.cfg.QueryFileAbs != "" {
		opts = append(opts, session.WithEmitter(session.NewFileEmitter(a.fs, a.cfg.QueryFileAbs)))
	}

	return opts
}

// update loads the session under its lock, applies fn, emits the query if
// fn changed anything that matters, and saves. Nothing is written when fn
// fails. A failed emission still saves the change; the session stays
// pending and the next command emits it.
func (a *app) update(fn func(s *session.Session) error) error {
	store := a.store()

	lock, err := store.Lock()
	if err != nil {
		return err
	}
	defer lock.Close()

	s, err := store.Load(a.catalog, a.sessionOptions()...)
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		return err
	}

	_, flushErr := s.Flush()

	if err := store.Save(s); err != nil {
		return err
	}

	a.log.Debug("session saved", "path", store.Path(), "session_id", s.ID().String())

	if flushErr != nil {
		return fmt.Errorf("%w (change saved, query is emitted on the next change)", flushErr)
	}

	return nil
}

// view loads the session read-only.
func (a *app) view(fn func(s *session.Session) error) error {
	s, err := a.store().Load(a.catalog, session.WithLogger(a.log))
	if err != nil {
		return err
	}

	return fn(s)
}

var (
	errMissingArg   = errors.New("missing argument")
	errTooManyArgs  = errors.New("too many arguments")
	errInvalidEntry = errors.New("invalid entry id")
	errInvalidIndex = errors.New("invalid index")
)

func requireArgs(args []string, names ...string) error {
	if len(args) < len(names) {
		return fmt.Errorf("%w: %s", errMissingArg, strings.Join(names[len(args):], ", "))
	}

	if len(args) > len(names) {
		return fmt.Errorf("%w: %s", errTooManyArgs, strings.Join(args[len(names):], " "))
	}

	return nil
}

// parseEntryID accepts a bare entry id or its chip form ("f12").
func parseEntryID(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "f"))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidEntry, s)
	}

	return n, nil
}

func checkLevel(name string, n int) error {
	if !filter.ValidLevel(n) {
		return fmt.Errorf("--%s: %w (got %d)", name, filter.ErrLevelOutOfRange, n)
	}

	return nil
}
