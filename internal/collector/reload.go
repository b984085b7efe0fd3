package collector

import (
	"github.com/Data-Corruption/logcollector/internal/config"
	"github.com/Data-Corruption/logcollector/internal/diag"
)

// processReload rereads configPath into cfg in place and reports whether
// log_directory changed relative to currentLogDir. Only the directory
// comparison feeds back into a rotation request; rotation_age_minutes,
// rotation_size_kib, and log_filename_prefix take effect on the next
// rotation naturally, and redirect_stderr changes are ignored
// post-startup, simply because this function never reads or acts on them
// beyond the reread itself.
func processReload(configPath string, cfg *config.Config, currentLogDir *string, log *diag.Logger) (dirChanged bool) {
	if err := config.Reload(configPath, cfg); err != nil {
		log.Errorf("reload: could not reread configuration: %v", err)
		return false
	}
	if cfg.LogDirectory != *currentLogDir {
		*currentLogDir = cfg.LogDirectory
		return true
	}
	return false
}
