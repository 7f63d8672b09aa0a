package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/starford/carscout/internal/apperr"
	"github.com/starford/carscout/internal/car"
	"github.com/starford/carscout/internal/inventory"
	"github.com/starford/carscout/internal/view"
)

// Saver persists the inventory on Save & Exit.
type Saver interface {
	Save(s *inventory.Store) error
}

// ChangeNotifier reports, once per change, that the backing file was
// modified outside the session.
type ChangeNotifier interface {
	Changed() bool
}

// Session owns the inventory for the lifetime of one interactive run.
type Session struct {
	machine *Machine
	store   *inventory.Store
	saver   Saver
	in      *bufio.Reader
	view    *view.View

	logger   *slog.Logger
	changes  ChangeNotifier
	fileName string
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithChangeNotifier makes the session warn about external edits before
// each menu.
func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Session) { s.changes = n }
}

// WithFileName sets the file name used in messages.
func WithFileName(name string) Option {
	return func(s *Session) { s.fileName = name }
}

// New creates a Session over store, reading answers from in.
func New(store *inventory.Store, saver Saver, in io.Reader, v *view.View, opts ...Option) *Session {
	s := &Session{
		machine:  NewMachine(),
		store:    store,
		saver:    saver,
		in:       bufio.NewReader(in),
		view:     v,
		logger:   slog.Default(),
		fileName: "data file",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session state.
func (s *Session) State() State { return s.machine.State() }

// Run shows the menu and dispatches choices until Save & Exit succeeds.
// It returns an error wrapping apperr.ErrInputClosed if input ends first;
// unsaved additions are then lost.
func (s *Session) Run(ctx context.Context) error {
	for s.machine.State() == Running {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.changes != nil && s.changes.Changed() {
			s.view.Notice(fmt.Sprintf("%s changed on disk since it was loaded; Save & Exit will overwrite it.", s.fileName))
		}
		s.view.Menu()
		choice, err := s.readLine("Your choice")
		if err != nil {
			return err
		}
		if err := s.Dispatch(choice); err != nil {
			if errors.Is(err, apperr.ErrInputClosed) {
				return err
			}
			s.report(err)
		}
	}
	return nil
}

// Dispatch performs the menu choice.
func (s *Session) Dispatch(choice string) error {
	a, err := ParseAction(choice)
	if err != nil {
		return err
	}
	s.logger.Debug("session: dispatch", slog.String("action", a.String()))
	return s.machine.Fire(a, s.handler(a))
}

func (s *Session) handler(a Action) func() error {
	switch a {
	case ActionList:
		return s.listAll
	case ActionSearch:
		return s.searchByPrice
	case ActionAdd:
		return s.addCar
	default:
		return s.saveAndExit
	}
}

func (s *Session) listAll() error {
	s.view.Heading("ALL CARS")
	if s.view.Cars(s.store.All(), s.store.Layout()) == 0 {
		s.view.Info("No cars yet.")
	}
	return nil
}

func (s *Session) searchByPrice() error {
	raw, err := s.readLine("Enter max price")
	if err != nil {
		return err
	}
	limit, err := car.ParsePrice(raw)
	if err != nil {
		return err
	}
	s.view.Heading("Cars matching your budget")
	if s.view.Cars(s.store.WithinBudget(limit), s.store.Layout()) == 0 {
		s.view.Info("No cars found for your expected price.")
	}
	return nil
}

// addCar prompts for every column of the layout. The first bad answer
// discards the whole entry.
func (s *Session) addCar() error {
	s.view.Heading("ADD CAR")
	var r car.Record
	for _, c := range s.store.Layout() {
		raw, err := s.readLine(promptFor(c))
		if err != nil {
			return err
		}
		if c == car.ColTransmission {
			raw = strings.ToLower(raw)
		}
		if err := r.SetField(c, raw); err != nil {
			return err
		}
	}
	if err := s.store.Add(r); err != nil {
		return err
	}
	s.logger.Debug("session: car added", slog.String("car", r.String()), slog.Int("records", s.store.Len()))
	s.view.Info("Car added!")
	return nil
}

func (s *Session) saveAndExit() error {
	if err := s.saver.Save(s.store); err != nil {
		return err
	}
	s.view.Info("Saved. Goodbye!")
	return nil
}

// readLine returns the next answer without its line ending. Lines have no
// length limit; a final line without a newline still counts.
func (s *Session) readLine(label string) (string, error) {
	s.view.Prompt(label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("session: read input: %w", err)
		}
		if line == "" {
			return "", fmt.Errorf("session: %w before Save & Exit", apperr.ErrInputClosed)
		}
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) report(err error) {
	switch {
	case errors.Is(err, apperr.ErrUnknownChoice):
		s.view.Error("Invalid choice. Try again.")
	case errors.Is(err, apperr.ErrInvalidInput):
		s.view.Error(inputMessage(err))
	default:
		s.logger.Error("session: action failed", slog.String("error", err.Error()))
		s.view.Error("Could not complete the action: " + err.Error())
	}
}

// inputMessage drops the sentinel prefix from input errors.
func inputMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), apperr.ErrInvalidInput.Error()+": ")
	return "Input error: " + msg
}

func promptFor(c car.Column) string {
	if c == car.ColTransmission {
		return view.Label(c) + " (manual/automatic)"
	}
	return view.Label(c)
}
