package renderer

import (
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of glog
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}
