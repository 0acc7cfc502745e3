package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// logrusLoggerService is the text logger used by command line tools
type logrusLoggerService struct {
	entry *logrus.Entry
}

// NewLogrusLogger creates a Logger backed by logrus with a full timestamp text formatter
func NewLogrusLogger(config *Config) (Logger, error) {
	base := logrus.New()
	base.SetOutput(os.Stdout)

	if config.Format == "json" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %v", err)
	}
	base.SetLevel(level)

	return &logrusLoggerService{entry: logrus.NewEntry(base)}, nil
}

func (l *logrusLoggerService) LogInfo(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *logrusLoggerService) LogError(err error, msg string) error {
	l.entry.WithError(err).Error(msg)
	return err
}

func (l *logrusLoggerService) LogErrorf(err error, format string, args ...interface{}) error {
	l.entry.WithError(err).Errorf(format, args...)
	return err
}

func (l *logrusLoggerService) LogFatal(err error, context string) {
	l.entry.WithError(err).Fatal(context)
}

func (l *logrusLoggerService) LogDebug(message string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(message)
}

func (l *logrusLoggerService) LogWarn(message string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(message)
}

func (l *logrusLoggerService) WithFields(fields map[string]interface{}) Logger {
	return &logrusLoggerService{entry: l.entry.WithFields(fields)}
}

func (l *logrusLoggerService) WithRequestID(requestID string) Logger {
	return l.WithFields(map[string]interface{}{"requestID": requestID})
}

func (l *logrusLoggerService) WithUserID(userID string) Logger {
	return l.WithFields(map[string]interface{}{"userID": userID})
}
