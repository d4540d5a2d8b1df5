// Package progress renders per-transfer progress bars for downloads.
//
// Each in-flight transfer gets its own bar showing cumulative bytes
// against the total reported by the object store's metadata. Display is
// purely observational: nothing in the download path depends on it, and
// a nil Tracker silently disables it.
//
// # Usage
//
//	tracker := progress.NewTracker(progress.Options{})
//
//	tr := tracker.StartTransfer("surface_elevation.nc", totalBytes)
//	n, err := io.Copy(dst, tr.Reader(src))
//	if err != nil {
//	    tr.Abort()
//	} else {
//	    tr.Complete()
//	}
//
//	tracker.Wait()
package progress
