// Package log 是对 zap 的薄封装，服务端和 appealctl 共用同一套日志入口。
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 未调用 Init 时使用 Nop logger，避免测试或工具代码里出现 nil panic。
var (
	zapLogger   = zap.NewNop()
	sugarLogger = zapLogger.Sugar()
)

// Init 根据级别、编码格式和输出目录构建全局 logger。
// format 为 "console" 时使用开发配置（彩色级别），否则输出 JSON。
// outputDir 非空时同时写入 outputDir/app.log。
func Init(level, format, outputDir string) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		panic(fmt.Errorf("invalid log level %q: %w", level, err))
	}

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "json"
	}
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapConfig.Level = atomicLevel

	// CLI 的标准输出留给命令结果，日志统一走 stderr
	zapConfig.OutputPaths = []string{"stderr"}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			panic(fmt.Errorf("failed to create log directory: %w", err))
		}
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, filepath.Join(outputDir, "app.log"))
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Errorf("failed to build logger: %w", err))
	}

	zapLogger = logger
	sugarLogger = logger.Sugar()
}

// Info 记录一条 info 级别的日志
func Info(msg string) {
	sugarLogger.Info(msg)
}

// Infof 使用格式化字符串记录一条 info 级别的日志
func Infof(format string, args ...interface{}) {
	sugarLogger.Infof(format, args...)
}

// Infow 使用键值对记录一条 info 级别的日志
func Infow(msg string, keysAndValues ...interface{}) {
	sugarLogger.Infow(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	sugarLogger.Debugw(msg, keysAndValues...)
}

// Warnf 使用格式化字符串记录一条 warn 级别的日志
func Warnf(template string, args ...interface{}) {
	sugarLogger.Warnf(template, args...)
}

// Warnw 使用键值对记录一条 warn 级别的日志。
// 控制台侧的乐观更新失败都走这里：只给开发者看，不打扰最终用户。
func Warnw(msg string, keysAndValues ...interface{}) {
	sugarLogger.Warnw(msg, keysAndValues...)
}

// Error 记录一条 error 级别的日志，并附带 error 信息
func Error(msg string, err error) {
	sugarLogger.Errorw(msg, "error", err)
}

func Errorf(template string, args ...interface{}) {
	sugarLogger.Errorf(template, args...)
}

// Fatal 记录一条 fatal 级别的日志，并附带 error 信息，然后退出程序
func Fatal(msg string, err error) {
	sugarLogger.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugarLogger.Fatalf(template, args...)
}

// Sync 刷新缓冲区，程序退出前调用。
func Sync() {
	_ = sugarLogger.Sync()
	_ = zapLogger.Sync()
}

// GetLogger 返回底层 *zap.Logger，供 zapgorm2 等需要原始 logger 的组件使用。
func GetLogger() *zap.Logger {
	return zapLogger
}
