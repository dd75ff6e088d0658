/*
@Description: Plugin registration: host entry points for codec discovery and construction
@Language: Go 1.23.4
*/

package sizeceph

import (
	"sync"

	"github.com/pkg/errors"
)

// PluginVersion is the string the host logs at registration time. It
// names the plugin, not this module's own release.
const PluginVersion = "sizeceph-plugin/1.0"

// factoryFn constructs a fresh, uninitialized Codec instance.
type factoryFn func() Codec

var (
	registryMu sync.Mutex
	registry   = map[string]factoryFn{
		TechniqueSizeCeph: func() Codec { return NewSizeCephCodec() },
		TechniqueXOR:      func() Codec { return NewXORCodec() },
	}
)

// PluginInit registers name as an alias for directory's technique family.
// The directory argument mirrors the host's plugin-path convention; it
// carries no meaning here since both techniques are built into this
// module rather than loaded from separate shared objects.
func PluginInit(name, directory string) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		return newStatusErr(StatusInvalid, "plugin name already registered: "+name)
	}

	switch directory {
	case TechniqueSizeCeph:
		registry[name] = func() Codec { return NewSizeCephCodec() }
	case TechniqueXOR:
		registry[name] = func() Codec { return NewXORCodec() }
	default:
		return newStatusErr(StatusNotFound, "unknown codec family: "+directory)
	}
	return nil
}

// Factory builds and initializes a Codec for the named technique, reading
// "technique" out of profile to choose between SizeCeph and simple_xor.
// On Init failure the partially constructed instance is closed before
// the error is returned, so the host never holds a live reference to a
// codec that failed to initialize.
func Factory(directory string, profile map[string]string) (Codec, error) {
	technique := profile["technique"]
	if technique == "" {
		technique = directory
	}

	registryMu.Lock()
	newCodec, ok := registry[technique]
	registryMu.Unlock()
	if !ok {
		return nil, newStatusErr(StatusNotFound, "no codec registered for technique: "+technique)
	}

	codec := newCodec()
	if err := codec.Init(profile); err != nil {
		codec.Close()
		return nil, errors.WithMessage(err, "factory: init failed")
	}
	return codec, nil
}
