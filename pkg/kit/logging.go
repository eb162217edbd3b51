package kit

import "go.uber.org/zap"

// NewLogger builds the service logger: JSON production config by default,
// console development config when dev is set. Every line carries the
// service name.
func NewLogger(service string, dev bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.InitialFields = map[string]any{"service": service}

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
