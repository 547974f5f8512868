package flags

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// EnumValue is a string flag value restricted to the choices in Enum.
type EnumValue struct {
	Name        string
	Usage       string
	Destination *string
	Enum        []string
	Value       string
}

func (e *EnumValue) allowed(value string) bool {
	for _, choice := range e.Enum {
		if choice == value {
			return true
		}
	}
	return false
}

// Set stores value in Destination when it is one of the choices.
func (e *EnumValue) Set(value string) error {
	if !e.allowed(value) {
		return errors.Errorf("allowed values are %s", strings.Join(e.Enum, ", "))
	}
	*e.Destination = value
	return nil
}

// String returns the stored choice, or Value while nothing is stored.
func (e *EnumValue) String() string {
	if e.Destination != nil && *e.Destination != "" {
		return *e.Destination
	}
	return e.Value
}

// GenericFlag turns the value into a cli.Flag. Destination starts out holding
// the default.
func (e EnumValue) GenericFlag() *cli.GenericFlag {
	*e.Destination = e.Value
	return &cli.GenericFlag{
		Name:  e.Name,
		Usage: e.Usage + " One of: " + strings.Join(e.Enum, ", "),
		Value: &e,
	}
}
