// Package host wraps the OS-side collaborators of the reconciler: command
// lookup with a glob fallback, version-flag invocation of the managed tool,
// installed-software and build-number inspection, and the provisioned-package
// and silent-installer mechanisms.
//
// The real implementations live behind windows build tags; everything is
// expressed as small interfaces so the reconciliation workflow stays testable
// on any platform.
package host
