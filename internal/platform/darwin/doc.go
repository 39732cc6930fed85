// Package darwin provides the macOS accessibility backend. It binds
// CoreFoundation and ApplicationServices at runtime with purego, so it builds
// without cgo.
package darwin
