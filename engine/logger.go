package engine

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/boypt/simple-explorer/tree"
)

var (
	log *filteredLogger
)

// paths deeper than this are shortened in log lines
const maxLogDepth = 4

type filteredLogger struct {
	logger *stdlog.Logger
	debug  int32
}

func (f *filteredLogger) filteredArg(v ...interface{}) []interface{} {
	for idx, arg := range v {
		if s, ok := arg.(string); ok && strings.Count(s, tree.Separator) >= maxLogDepth {
			parts := strings.Split(s, tree.Separator)
			v[idx] = fmt.Sprintf("[%s/../%s]", parts[0], strings.Join(parts[len(parts)-2:], tree.Separator))
		}
		if k, ok := arg.(tree.Kind); ok {
			if k == tree.Directory {
				v[idx] = "[dir]"
			} else {
				v[idx] = "[file]"
			}
		}
	}

	return v
}

func (f *filteredLogger) Println(v ...interface{}) {
	f.logger.Println(f.filteredArg(v...)...)
}
func (f *filteredLogger) Printf(format string, v ...interface{}) {
	f.logger.Printf(format, f.filteredArg(v...)...)
}
func (f *filteredLogger) Debugf(format string, v ...interface{}) {
	if atomic.LoadInt32(&f.debug) == 1 {
		f.logger.Printf("[debug] "+format, f.filteredArg(v...)...)
	}
}
func (f *filteredLogger) Fatal(v ...interface{}) {
	f.logger.Fatal(f.filteredArg(v...)...)
}

func (f *filteredLogger) setDebug(on bool) {
	var d int32
	if on {
		d = 1
	}
	atomic.StoreInt32(&f.debug, d)
}

func init() {
	log = &filteredLogger{
		logger: stdlog.New(os.Stdout, "[engine]", stdlog.LstdFlags|stdlog.Lmsgprefix),
	}
}

func SetLoggerFlag(flag int) {
	log.logger.SetFlags(flag)
}
