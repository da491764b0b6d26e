package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkaminska/studycal/internal/domain"
	"github.com/spf13/pflag"
)

// displayModeValue is a pflag.Value that only accepts the known calendar
// display modes and rejects everything else at parse time.
type displayModeValue struct {
	mode *domain.DisplayMode
}

var _ pflag.Value = (*displayModeValue)(nil)

func newDisplayModeValue(def domain.DisplayMode, target *domain.DisplayMode) *displayModeValue {
	*target = def
	return &displayModeValue{mode: target}
}

func (v *displayModeValue) String() string {
	if v.mode == nil {
		return ""
	}
	return string(*v.mode)
}

func (v *displayModeValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidDisplayModes[s] {
		return fmt.Errorf("invalid display mode %q (valid: %s)", s, strings.Join(displayModeNames(), ", "))
	}
	*v.mode = domain.DisplayMode(s)
	return nil
}

func (v *displayModeValue) Type() string {
	return "mode"
}

func displayModeNames() []string {
	names := make([]string, 0, len(domain.ValidDisplayModes))
	for name := range domain.ValidDisplayModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
