//go:build linux

package sensor

import "golang.org/x/sys/unix"

func statfs(path string) (DiskStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return DiskStats{}, err
	}
	bs := uint64(st.Bsize)
	return DiskStats{
		TotalBytes: st.Blocks * bs,
		FreeBytes:  st.Bavail * bs,
	}, nil
}
