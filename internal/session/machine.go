// Package session runs the interactive menu loop over an inventory.
package session

import (
	"fmt"
	"strings"

	"github.com/starford/carscout/internal/apperr"
)

// State is the lifecycle state of a session.
type State int

// Session states. Exited is terminal.
const (
	Running State = iota
	Exited
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Action is a menu operation.
type Action int

// Menu actions, numbered as shown to the user.
const (
	ActionList Action = iota + 1
	ActionSearch
	ActionAdd
	ActionSaveExit
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionSearch:
		return "search"
	case ActionAdd:
		return "add"
	case ActionSaveExit:
		return "save-exit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps a menu choice ("1".."4") to an Action.
func ParseAction(choice string) (Action, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		return ActionList, nil
	case "2":
		return ActionSearch, nil
	case "3":
		return ActionAdd, nil
	case "4":
		return ActionSaveExit, nil
	}
	return 0, fmt.Errorf("%w: %q", apperr.ErrUnknownChoice, choice)
}

// Machine is the finite-state core of a session. The only transition is
// Running -> Exited, taken when ActionSaveExit completes without error.
type Machine struct {
	state State
}

// NewMachine returns a Machine in the Running state.
func NewMachine() *Machine {
	return &Machine{state: Running}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Fire performs action a through run. A failed run leaves the state as is.
func (m *Machine) Fire(a Action, run func() error) error {
	if m.state == Exited {
		return fmt.Errorf("%w: cannot %s", apperr.ErrSessionClosed, a)
	}
	if err := run(); err != nil {
		return err
	}
	if a == ActionSaveExit {
		m.state = Exited
	}
	return nil
}
