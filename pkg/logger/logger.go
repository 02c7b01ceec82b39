package logger

import (
	"fmt"
	"os"
	"robodesk/conf"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log   *zap.Logger
	sugar *zap.SugaredLogger
)

func init() {
	// 未初始化前使用开发模式的logger，避免测试或启动阶段panic
	log, _ = zap.NewDevelopment()
	sugar = log.Sugar()
}

// InitLogger 根据配置初始化zap，文件按lumberjack规则切割
func InitLogger(cfg *conf.LogConfig, appName string) {
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if cfg.FileName != "" {
		writer := &lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(writer), level))
	}
	if cfg.Console || len(cores) == 0 {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stdout), level))
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("app", appName))
	sugar = log.Sugar()
}

// Pair 构造一个结构化字段
func Pair(key string, value any) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { log.Fatal(msg, fields...) }

func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...any) { sugar.Fatalf(format, args...) }

// Sync 刷新缓冲区，退出前调用
func Sync() {
	if err := log.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "logger sync: %v\n", err)
	}
}
