package textdiff

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrTooLarge is returned by operations that need the full diff of a Result marked TooLarge.
var ErrTooLarge = errors.New("diff too large to render in full")

// ConfigError reports an option value outside its supported range. No computation is done when it is returned.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}
