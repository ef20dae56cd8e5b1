package whatsapp

import (
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
)

// zapLogger adapts zap to whatsmeow's logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// Logger returns a whatsmeow logger writing to l under module.
func Logger(l *zap.Logger, module string) waLog.Logger {
	return &zapLogger{s: l.Named(module).Sugar()}
}

func (z *zapLogger) Debugf(msg string, args ...interface{}) { z.s.Debugf(msg, args...) }
func (z *zapLogger) Infof(msg string, args ...interface{})  { z.s.Infof(msg, args...) }
func (z *zapLogger) Warnf(msg string, args ...interface{})  { z.s.Warnf(msg, args...) }
func (z *zapLogger) Errorf(msg string, args ...interface{}) { z.s.Errorf(msg, args...) }

func (z *zapLogger) Sub(module string) waLog.Logger {
	return &zapLogger{s: z.s.Named(module)}
}
