package config

import "go.uber.org/zap"

// NewLogger builds a zap logger: JSON production encoding when format is
// "json", console development encoding otherwise. An unparsable level falls
// back to info.
func (c LogConfig) NewLogger(service string) (*zap.Logger, error) {
	var zapConfig zap.Config
	if c.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level
	zapConfig.InitialFields = map[string]interface{}{
		"service": service,
	}
	return zapConfig.Build()
}
