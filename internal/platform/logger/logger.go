package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON production logger tagged with service. With no
// outputPaths it writes to stderr.
func New(service string, verbose bool, outputPaths ...string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}
	config.OutputPaths = outputPaths
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]any{
		"service": service,
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
