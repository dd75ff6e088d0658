/*
@Description: Profile dictionary parsing for the SizeCeph and XOR codecs
@Language: Go 1.23.4
*/

package sizeceph

import (
	"strconv"

	"github.com/pkg/errors"
)

// Technique names the profile may carry in the "technique" key.
const (
	TechniqueSizeCeph = "sizeceph"
	TechniqueXOR      = "simple_xor"
)

// profileConfig is the flat, hand-parsed form of the profile dictionary the
// host hands to init. Only k, m, technique and force_all_chunks are read;
// everything else in the profile is ignored here, exactly as a generic
// config/validation layer is explicitly out of scope.
type profileConfig struct {
	k              int
	m              int
	technique      string
	forceAllChunks bool
	hasForceAll    bool
}

// parseProfile walks profile and fills a profileConfig, defaulting "k" to
// defaultK and "m" to defaultM when the profile omits them.
func parseProfile(profile map[string]string, defaultK, defaultM int, defaultTechnique string) (profileConfig, error) {
	cfg := profileConfig{
		k:         defaultK,
		m:         defaultM,
		technique: defaultTechnique,
	}

	if v, ok := profile["k"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "profile key %q is not an integer", "k")
		}
		cfg.k = n
	}

	if v, ok := profile["m"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "profile key %q is not an integer", "m")
		}
		cfg.m = n
	}

	if v, ok := profile["technique"]; ok {
		cfg.technique = v
	}

	if v, ok := profile["force_all_chunks"]; ok {
		cfg.hasForceAll = true
		cfg.forceAllChunks = v == "true"
	}

	return cfg, nil
}
