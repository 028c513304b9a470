//go:build !linux && !darwin && !windows

package platform

// Notify discards notifications on platforms without a supported service.
func Notify(string, string, Options) error { return nil }
