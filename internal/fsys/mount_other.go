//go:build !unix

package fsys

// DeviceMountDetector never reports a mountpoint on platforms without unix
// device numbers.
func DeviceMountDetector(string, bool) (bool, error) {
	return false, nil
}
