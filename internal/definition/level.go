package definition

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Level is how much of a definition a quiz prompt shows.
type Level string

const (
	LevelExtract    Level = "extract"
	LevelSimplified Level = "simplify"
	LevelUltra      Level = "ultra"
)

var (
	_         pflag.Value = (*Level)(nil)
	AllLevels             = []Level{LevelExtract, LevelSimplified, LevelUltra}
)

func (l *Level) Set(val string) error {
	for _, level := range AllLevels {
		if val == string(level) {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("invalid level: %s", val)
}

func (l Level) String() string {
	return string(l)
}

func (l *Level) Type() string {
	return "Level"
}
