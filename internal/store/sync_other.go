//go:build !unix

package store

// Directories can't be fsynced on this platform; the rename itself is durable.
func syncDir(dir string) error {
	return nil
}
