package httpsource

import (
	"fmt"
	"strings"

	"github.com/go-sif/geoprep/logging"
)

// leveled adapts a logging.Logger to retryablehttp.LeveledLogger
type leveled struct {
	log *logging.Logger
}

func format(msg string, keysAndValues []interface{}) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return b.String()
}

func (l leveled) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorf("%s", format(msg, keysAndValues))
}

func (l leveled) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infof("%s", format(msg, keysAndValues))
}

func (l leveled) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debugf("%s", format(msg, keysAndValues))
}

func (l leveled) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnf("%s", format(msg, keysAndValues))
}
