// Package nativecodec binds the three SizeCeph native entry points —
// size_split, size_restore and size_can_get_restore_fn — behind a single
// process-wide, reference-counted handle.
//
// The native library is reached with dlopen/dlsym rather than a Go
// module: it is a C ABI the host object store's SizeCeph implementation
// ships as a shared object, not a Go package. Load/Release share one
// underlying handle across every Binding value; the last Release clears
// it, and the three function pointers are never partially populated.
package nativecodec
