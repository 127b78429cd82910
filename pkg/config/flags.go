package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags registers the configuration-relevant persistent flags on flags
// and binds them into v so that explicit flag values take precedence over
// environment variables and defaults (see Load).
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("workspace-root", "", "workspace root directory (default: XDG data dir)")
	flags.String("data-dir", "", "session store data directory (default: XDG data dir)")
	flags.String("jj-path", "", "override the jj binary location")
	flags.String("zellij-path", "", "override the zellij binary location")

	for _, f := range []struct{ flag, key string }{
		{"workspace-root", "workspace_root"},
		{"data-dir", "data_dir"},
		{"jj-path", "jj_path"},
		{"zellij-path", "zellij_path"},
	} {
		if err := v.BindPFlag(f.key, flags.Lookup(f.flag)); err != nil {
			return err
		}
	}

	BindEnv(v)
	return nil
}
