package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	name  string
	level zap.AtomicLevel
	// core passes every level; level does the filtering.
	core     zapcore.Core
	registry *Registry

	sugared *zap.SugaredLogger
}

func newImpl(name string, level zap.AtomicLevel, core zapcore.Core) *impl {
	leveled, err := zapcore.NewIncreaseLevelCore(core, level)
	if err != nil {
		leveled = core
	}
	logger := zap.New(leveled, zap.AddCaller(), zap.AddCallerSkip(1))
	if name != "" {
		logger = logger.Named(name)
	}
	return &impl{name: name, level: level, core: core, sugared: logger.Sugar()}
}

func (imp *impl) Name() string {
	return imp.name
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	sub := newImpl(newName, zap.NewAtomicLevelAt(imp.level.Level()), imp.core)
	if imp.registry == nil {
		return sub
	}
	sub.registry = imp.registry
	return imp.registry.getOrRegister(newName, sub)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.AsZap())
}

func (imp *impl) GetLevel() Level {
	return LevelFromZap(imp.level.Level())
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	return imp.sugared
}

func (imp *impl) Sync() error {
	return imp.sugared.Sync()
}

func (imp *impl) Debug(args ...interface{}) { imp.sugared.Debug(args...) }

func (imp *impl) Debugf(template string, args ...interface{}) { imp.sugared.Debugf(template, args...) }

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.sugared.Debugw(msg, keysAndValues...)
}

func (imp *impl) Info(args ...interface{}) { imp.sugared.Info(args...) }

func (imp *impl) Infof(template string, args ...interface{}) { imp.sugared.Infof(template, args...) }

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.sugared.Infow(msg, keysAndValues...)
}

func (imp *impl) Warn(args ...interface{}) { imp.sugared.Warn(args...) }

func (imp *impl) Warnf(template string, args ...interface{}) { imp.sugared.Warnf(template, args...) }

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.sugared.Warnw(msg, keysAndValues...)
}

func (imp *impl) Error(args ...interface{}) { imp.sugared.Error(args...) }

func (imp *impl) Errorf(template string, args ...interface{}) { imp.sugared.Errorf(template, args...) }

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.sugared.Errorw(msg, keysAndValues...)
}
