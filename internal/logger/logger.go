package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log - глобальный экземпляр логгера
var Log *zap.SugaredLogger

// Logger представляет интерфейс для логирования
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// DefaultLogger реализует интерфейс Logger, оборачивая глобальные функции
type DefaultLogger struct{}

func (l *DefaultLogger) Debug(msg string, args ...any) { Debug(msg, args...) }
func (l *DefaultLogger) Info(msg string, args ...any)  { Info(msg, args...) }
func (l *DefaultLogger) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (l *DefaultLogger) Error(msg string, args ...any) { Error(msg, args...) }
func (l *DefaultLogger) Fatal(msg string, args ...any) { Fatal(msg, args...) }

// NewLogger создает новый экземпляр логгера, который можно передавать в другие компоненты
func NewLogger() Logger {
	if Log == nil {
		Init("dev")
	}
	return &DefaultLogger{}
}

// nopLogger отбрасывает все сообщения; используется в тестах
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}

// NewNop возвращает логгер, который ничего не пишет
func NewNop() Logger {
	return nopLogger{}
}

// Init инициализирует логгер на основе переданного окружения
// env: "prod" для продакшена, иначе используется development конфигурация
func Init(env string) {
	if env == "prod" {
		initProductionLogger()
	} else {
		initDevelopmentLogger()
	}
}

// initProductionLogger инициализирует JSON-логгер с уровнем Info
func initProductionLogger() {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)

	options := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	}

	Log = zap.New(core, options...).Sugar()
}

// initDevelopmentLogger инициализирует консольный логгер с уровнем Debug.
// Вывод идет в stderr, чтобы не мешать данным клиента в stdout
func initDevelopmentLogger() {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)

	options := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Development(),
	}

	Log = zap.New(core, options...).Sugar()
}

// Close закрывает логгер и освобождает ресурсы
func Close() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}

// Debug логирует с уровнем Debug
func Debug(msg string, args ...any) {
	Log.Debugw(msg, args...)
}

// Info логирует с уровнем Info
func Info(msg string, args ...any) {
	Log.Infow(msg, args...)
}

// Warn логирует с уровнем Warn
func Warn(msg string, args ...any) {
	Log.Warnw(msg, args...)
}

// Error логирует с уровнем Error
func Error(msg string, args ...any) {
	Log.Errorw(msg, args...)
}

// Fatal логирует с уровнем Fatal и завершает программу с кодом 1
func Fatal(msg string, args ...any) {
	Log.Fatalw(msg, args...)
}
