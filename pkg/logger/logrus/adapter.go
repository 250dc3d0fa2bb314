package logrus

import (
	"github.com/raykavin/chartkit/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Adapter adapts a logrus entry to the logger.Logger interface
type Adapter struct {
	entry *logrus.Entry
}

// New creates a logrus-backed logger
func New(level string) (*Adapter, error) {
	logMode, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(logMode)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return &Adapter{entry: logrus.NewEntry(log)}, nil
}

func NewAdapter(entry *logrus.Entry) *Adapter {
	return &Adapter{entry: entry}
}

// WithField implements logger.Logger.
func (l *Adapter) WithField(key string, value any) logger.Logger {
	return NewAdapter(l.entry.WithField(key, value))
}

// WithFields implements logger.Logger.
func (l *Adapter) WithFields(fields map[string]any) logger.Logger {
	return NewAdapter(l.entry.WithFields(fields))
}

// WithError implements logger.Logger.
func (l *Adapter) WithError(err error) logger.Logger {
	return NewAdapter(l.entry.WithError(err))
}

// GetLevel implements logger.Logger.
func (l *Adapter) GetLevel() logger.Level {
	switch l.entry.Logger.GetLevel() {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.InfoLevel:
		return logger.InfoLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel:
		return logger.ErrorLevel
	case logrus.FatalLevel:
		return logger.FatalLevel
	case logrus.PanicLevel:
		return logger.PanicLevel
	default:
		return logger.NoLevel
	}
}

// SetLevel implements logger.Logger.
func (l *Adapter) SetLevel(level logger.Level) {
	switch level {
	case logger.TraceLevel:
		l.entry.Logger.SetLevel(logrus.TraceLevel)
	case logger.DebugLevel:
		l.entry.Logger.SetLevel(logrus.DebugLevel)
	case logger.InfoLevel:
		l.entry.Logger.SetLevel(logrus.InfoLevel)
	case logger.WarnLevel:
		l.entry.Logger.SetLevel(logrus.WarnLevel)
	case logger.ErrorLevel:
		l.entry.Logger.SetLevel(logrus.ErrorLevel)
	case logger.FatalLevel:
		l.entry.Logger.SetLevel(logrus.FatalLevel)
	case logger.PanicLevel:
		l.entry.Logger.SetLevel(logrus.PanicLevel)
	}
}

func (l *Adapter) Print(args ...any) { l.entry.Print(args...) }
func (l *Adapter) Trace(args ...any) { l.entry.Trace(args...) }
func (l *Adapter) Debug(args ...any) { l.entry.Debug(args...) }
func (l *Adapter) Info(args ...any)  { l.entry.Info(args...) }
func (l *Adapter) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *Adapter) Error(args ...any) { l.entry.Error(args...) }
func (l *Adapter) Fatal(args ...any) { l.entry.Fatal(args...) }
func (l *Adapter) Panic(args ...any) { l.entry.Panic(args...) }

func (l *Adapter) Printf(format string, args ...any) { l.entry.Printf(format, args...) }
func (l *Adapter) Tracef(format string, args ...any) { l.entry.Tracef(format, args...) }
func (l *Adapter) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Adapter) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Adapter) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Adapter) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *Adapter) Fatalf(format string, args ...any) { l.entry.Fatalf(format, args...) }
func (l *Adapter) Panicf(format string, args ...any) { l.entry.Panicf(format, args...) }
