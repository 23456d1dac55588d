package wizard

import "github.com/infradraft/infradraft/internal/config"

// BuildConfig creates a Config struct from the wizard result.
// The bucket name itself stays empty until a name is generated.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Commands:   result.Commands,
		Model:      result.Model,
		OutputFile: result.OutputFile,
	}

	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = config.DefaultOutputFile
	}

	return cfg
}
