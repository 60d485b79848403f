// Package sensor exposes best-effort host resource readings used for
// startup reporting and readiness checks.
package sensor

// DiskStats is a point-in-time view of the filesystem holding a path.
// Fields may be zero on unsupported platforms.
type DiskStats struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// Disk samples the filesystem containing path.
func Disk(path string) (DiskStats, error) {
	return statfs(path)
}
