package log

import "fmt"

type level byte

const (
	levelDebug level = 1 << iota
	levelInfo
	levelWarn
	levelError
)

type filter struct {
	next             Logger
	allowed          level
	initiallyAllowed level
	allowedKeyvals   map[keyval]level
}

type keyval struct {
	key   any
	value any
}

// NewFilter wraps next and implements filtering. See the commentary on the
// Option functions for a detailed description of how to configure levels. If
// no options are provided, all leveled log events created with Debug, Info,
// Warn or Error helper methods are squelched.
func NewFilter(next Logger, options ...Option) Logger {
	l := &filter{
		next:           next,
		allowedKeyvals: make(map[keyval]level),
	}
	for _, option := range options {
		option(l)
	}
	l.initiallyAllowed = l.allowed
	return l
}

func (l *filter) Debug(msg string, keyvals ...any) {
	if l.allowed&levelDebug != 0 {
		l.next.Debug(msg, keyvals...)
	}
}

func (l *filter) Info(msg string, keyvals ...any) {
	if l.allowed&levelInfo != 0 {
		l.next.Info(msg, keyvals...)
	}
}

func (l *filter) Warn(msg string, keyvals ...any) {
	if l.allowed&levelWarn != 0 {
		l.next.Warn(msg, keyvals...)
	}
}

func (l *filter) Error(msg string, keyvals ...any) {
	if l.allowed&levelError != 0 {
		l.next.Error(msg, keyvals...)
	}
}

// With implements Logger by constructing a new filter with keyvals appended
// to the logger.
//
// If a custom level was set for a keyval pair using one of the
// Allow*With methods, it is used as the logger's level. The last matching
// pair wins.
//
//	logger = log.NewFilter(next, log.AllowError(), log.AllowInfoWith("module", "store"))
//	logger.With("module", "store") // allows info
//	logger.With("module", "blscache") // allows error
func (l *filter) With(keyvals ...any) Logger {
	for i := len(keyvals) - 2; i >= 0; i -= 2 {
		keyAllowed := false
		for kv, allowed := range l.allowedKeyvals {
			if keyvals[i] != kv.key {
				continue
			}
			keyAllowed = true
			if keyvals[i+1] == kv.value {
				return l.derive(keyvals, allowed)
			}
		}
		// the key has a custom level but not for this value
		if keyAllowed {
			return l.derive(keyvals, l.initiallyAllowed)
		}
	}
	return l.derive(keyvals, l.allowed)
}

func (l *filter) derive(keyvals []any, allowed level) *filter {
	return &filter{
		next:             l.next.With(keyvals...),
		allowed:          allowed,
		initiallyAllowed: l.initiallyAllowed,
		allowedKeyvals:   l.allowedKeyvals,
	}
}

func (l *filter) Impl() any {
	return l.next.Impl()
}

// Option sets a parameter for the filter.
type Option func(*filter)

// AllowLevel returns an option for the given level or error if no option
// exists for such level.
func AllowLevel(lvl string) (Option, error) {
	switch lvl {
	case "debug":
		return AllowDebug(), nil
	case "info":
		return AllowInfo(), nil
	case "warn":
		return AllowWarn(), nil
	case "error":
		return AllowError(), nil
	case "none":
		return AllowNone(), nil
	default:
		return nil, fmt.Errorf("expected either \"info\", \"debug\", \"warn\", \"error\" or \"none\" level, given %s", lvl)
	}
}

// AllowAll is an alias for AllowDebug.
func AllowAll() Option {
	return AllowDebug()
}

// AllowDebug allows error, warn, info and debug level log events to pass.
func AllowDebug() Option {
	return allowed(levelError | levelWarn | levelInfo | levelDebug)
}

// AllowInfo allows error, warn and info level log events to pass.
func AllowInfo() Option {
	return allowed(levelError | levelWarn | levelInfo)
}

// AllowWarn allows error and warn level log events to pass.
func AllowWarn() Option {
	return allowed(levelError | levelWarn)
}

// AllowError allows only error level log events to pass.
func AllowError() Option {
	return allowed(levelError)
}

// AllowNone allows no leveled log events to pass.
func AllowNone() Option {
	return allowed(0)
}

func allowed(allowed level) Option {
	return func(l *filter) { l.allowed = allowed }
}

// AllowDebugWith allows error, warn, info and debug level log events to pass
// for a specific key value pair.
func AllowDebugWith(key any, value any) Option {
	return allowedWith(levelError|levelWarn|levelInfo|levelDebug, key, value)
}

// AllowInfoWith allows error, warn and info level log events to pass for a
// specific key value pair.
func AllowInfoWith(key any, value any) Option {
	return allowedWith(levelError|levelWarn|levelInfo, key, value)
}

// AllowWarnWith allows error and warn level log events to pass for a specific
// key value pair.
func AllowWarnWith(key any, value any) Option {
	return allowedWith(levelError|levelWarn, key, value)
}

// AllowErrorWith allows only error level log events to pass for a specific
// key value pair.
func AllowErrorWith(key any, value any) Option {
	return allowedWith(levelError, key, value)
}

// AllowNoneWith allows no leveled log events to pass for a specific key
// value pair.
func AllowNoneWith(key any, value any) Option {
	return allowedWith(0, key, value)
}

// AllowLevelWith is AllowLevel restricted to a key value pair.
func AllowLevelWith(lvl string, key any, value any) (Option, error) {
	switch lvl {
	case "debug":
		return AllowDebugWith(key, value), nil
	case "info":
		return AllowInfoWith(key, value), nil
	case "warn":
		return AllowWarnWith(key, value), nil
	case "error":
		return AllowErrorWith(key, value), nil
	case "none":
		return AllowNoneWith(key, value), nil
	default:
		return nil, fmt.Errorf("expected either \"info\", \"debug\", \"warn\", \"error\" or \"none\" level, given %s", lvl)
	}
}

func allowedWith(allowed level, key any, value any) Option {
	return func(l *filter) { l.allowedKeyvals[keyval{key, value}] = allowed }
}
