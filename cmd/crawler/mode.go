package main

import (
	"fmt"
)

// Mode selects what is crawled. It implements pflag.Value so that an unknown
// value fails while the command line is parsed.
type Mode string

const (
	ModeMeasurements Mode = "measurements"
	ModeMasterData   Mode = "master_data"
)

func (m *Mode) String() string {
	return string(*m)
}

func (m *Mode) Set(value string) error {
	switch Mode(value) {
	case ModeMeasurements, ModeMasterData:
		*m = Mode(value)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", ModeMeasurements, ModeMasterData)
	}
}

func (m *Mode) Type() string {
	return "mode"
}
