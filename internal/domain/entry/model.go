package entry

import (
	"errors"
	"fmt"
)

var (
	ErrTeamSize         = errors.New("invalid number of managers for entry")
	ErrMissingSelection = errors.New("manager selection missing")
)

// TeamSize is the number of managers behind a team entry.
const TeamSize = 3

type Kind string

const (
	KindIndividual Kind = "individual"
	KindTeam       Kind = "team"
)

// Entry is a competitor in a league standing: one FPL manager, or a team of three.
type Entry struct {
	ID         int
	Name       string
	Kind       Kind
	ManagerIDs []int
}

// Individual builds the entry of a single FPL manager.
func Individual(managerID int, name string) Entry {
	return Entry{
		ID:         managerID,
		Name:       name,
		Kind:       KindIndividual,
		ManagerIDs: []int{managerID},
	}
}

func (e Entry) Validate() error {
	want := 1
	if e.Kind == KindTeam {
		want = TeamSize
	}
	if len(e.ManagerIDs) != want {
		return fmt.Errorf("%w: entry=%d kind=%s managers=%d", ErrTeamSize, e.ID, e.Kind, len(e.ManagerIDs))
	}
	return nil
}
