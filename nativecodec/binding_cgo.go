//go:build cgo && (linux || darwin)

/*
@Description: dlopen/dlsym binding to the SizeCeph native codec
@Language: Go 1.23.4 (cgo)
*/

package nativecodec

/*
#include <dlfcn.h>
#include <stdlib.h>
#include <stdint.h>

typedef void    (*size_split_fn)(uint8_t **out, const uint8_t *in, uint32_t len);
typedef int32_t (*size_restore_fn)(uint8_t *out, const uint8_t **in, uint32_t len);
typedef int32_t (*size_can_restore_fn)(const uint8_t **in);

static void call_size_split(void *fn, uint8_t **out, const uint8_t *in, uint32_t len) {
	((size_split_fn)fn)(out, in, len);
}

static int32_t call_size_restore(void *fn, uint8_t *out, const uint8_t **in, uint32_t len) {
	return ((size_restore_fn)fn)(out, in, len);
}

static int32_t call_size_can_restore(void *fn, const uint8_t **in) {
	return ((size_can_restore_fn)fn)(in);
}
*/
import "C"

import (
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// ShardCount is N, the total shard count the native ABI always operates
// over: 9 for SizeCeph.
const ShardCount = 9

// EnvOverrideVar names the environment variable consulted before the
// fixed fallback search list.
const EnvOverrideVar = "SIZECEPH_CODEC_LIBRARY"

var fallbackSearchPaths = []string{
	"/usr/lib/sizeceph/libsizeceph.so",
	"/usr/local/lib/sizeceph/libsizeceph.so",
	"./libsizeceph.so",
}

var (
	mu           sync.Mutex
	handle       unsafe.Pointer
	refCount     int
	loaded       bool
	fnSplit      unsafe.Pointer
	fnRestore    unsafe.Pointer
	fnCanRestore unsafe.Pointer
)

// Binding is a handle to the process-wide native codec. Multiple Binding
// values may be constructed by multiple codec instances; they all share
// one underlying dlopen handle, reference-counted across Load/Release.
type Binding struct {
	released bool
}

// Load resolves size_split, size_restore and size_can_get_restore_fn,
// dlopen-ing the first candidate path that exposes all three. Safe for
// concurrent use; construction/destruction is serialized behind a mutex.
func Load() (*Binding, error) {
	mu.Lock()
	defer mu.Unlock()

	if loaded {
		refCount++
		return &Binding{}, nil
	}

	var lastErr error
	for _, path := range candidatePaths() {
		if err := tryLoad(path); err == nil {
			refCount++
			return &Binding{}, nil
		} else {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no candidate native codec library configured")
	}
	return nil, errors.Wrap(lastErr, "nativecodec: failed to load SizeCeph native codec")
}

func candidatePaths() []string {
	paths := make([]string, 0, len(fallbackSearchPaths)+1)
	if override := os.Getenv(EnvOverrideVar); override != "" {
		paths = append(paths, override)
	}
	return append(paths, fallbackSearchPaths...)
}

func tryLoad(path string) error {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	h := C.dlopen(cPath, C.RTLD_NOW)
	if h == nil {
		return errors.Errorf("dlopen %s: %s", path, C.GoString(C.dlerror()))
	}

	split := resolveSymbol(h, "size_split")
	restore := resolveSymbol(h, "size_restore")
	canRestore := resolveSymbol(h, "size_can_get_restore_fn")

	if split == nil || restore == nil || canRestore == nil {
		C.dlclose(h)
		return errors.Errorf("%s: missing one of size_split/size_restore/size_can_get_restore_fn", path)
	}

	handle = h
	fnSplit = split
	fnRestore = restore
	fnCanRestore = canRestore
	loaded = true
	return nil
}

func resolveSymbol(h unsafe.Pointer, name string) unsafe.Pointer {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.dlsym(h, cName)
}

// Release decrements the shared reference count; at zero the handle is
// dlclose'd and all three function pointers are cleared together.
// Release is idempotent on a single Binding value.
func (b *Binding) Release() {
	mu.Lock()
	defer mu.Unlock()

	if b.released {
		return
	}
	b.released = true

	if refCount > 0 {
		refCount--
	}
	if refCount == 0 && loaded {
		C.dlclose(handle)
		handle = nil
		fnSplit = nil
		fnRestore = nil
		fnCanRestore = nil
		loaded = false
	}
}

// RefCount reports the current process-wide reference count.
func RefCount() int {
	mu.Lock()
	defer mu.Unlock()
	return refCount
}

// Loaded reports whether the native binding currently resolves.
func Loaded() bool {
	mu.Lock()
	defer mu.Unlock()
	return loaded
}

// Split drives size_split. len(in) must already be a multiple of A; it
// writes len(in)/A bytes into each buffer of out.
func (b *Binding) Split(out [][]byte, in []byte) error {
	split, ok := snapshotFn(&fnSplit)
	if !ok {
		return errors.New("nativecodec: not loaded")
	}

	outPtrs := make([]*C.uint8_t, len(out))
	for i := range out {
		outPtrs[i] = bytePtr(out[i])
	}

	var inPtr *C.uint8_t
	if len(in) > 0 {
		inPtr = (*C.uint8_t)(unsafe.Pointer(&in[0]))
	}

	var outHead **C.uint8_t
	if len(outPtrs) > 0 {
		outHead = (**C.uint8_t)(unsafe.Pointer(&outPtrs[0]))
	}

	C.call_size_split(split, outHead, inPtr, C.uint32_t(len(in)))
	return nil
}

// Restore drives size_restore. Missing input shards carry a nil slice,
// translated to a null pointer for the native call.
func (b *Binding) Restore(out []byte, in [][]byte) error {
	restore, ok := snapshotFn(&fnRestore)
	if !ok {
		return errors.New("nativecodec: not loaded")
	}

	inPtrs := make([]*C.uint8_t, len(in))
	for i := range in {
		inPtrs[i] = bytePtr(in[i])
	}

	var outPtr *C.uint8_t
	if len(out) > 0 {
		outPtr = (*C.uint8_t)(unsafe.Pointer(&out[0]))
	}

	var inHead **C.uint8_t
	if len(inPtrs) > 0 {
		inHead = (**C.uint8_t)(unsafe.Pointer(&inPtrs[0]))
	}

	rc := C.call_size_restore(restore, outPtr, inHead, C.uint32_t(len(out)))
	if rc != 0 {
		return errors.Errorf("nativecodec: size_restore returned %d", int32(rc))
	}
	return nil
}

// CanRestore drives size_can_get_restore_fn, returning true iff the
// native validator accepts the present/absent pattern in in.
func (b *Binding) CanRestore(in [][]byte) bool {
	canRestore, ok := snapshotFn(&fnCanRestore)
	if !ok {
		return false
	}

	inPtrs := make([]*C.uint8_t, len(in))
	for i := range in {
		inPtrs[i] = bytePtr(in[i])
	}

	var inHead **C.uint8_t
	if len(inPtrs) > 0 {
		inHead = (**C.uint8_t)(unsafe.Pointer(&inPtrs[0]))
	}

	rc := C.call_size_can_restore(canRestore, inHead)
	return rc != 0
}

func snapshotFn(fn *unsafe.Pointer) (unsafe.Pointer, bool) {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		return nil, false
	}
	return *fn, true
}

func bytePtr(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}
