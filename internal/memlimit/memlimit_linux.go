//go:build linux

package memlimit

import "golang.org/x/sys/unix"

// physicalRAM reads total physical RAM via sysinfo(2).
func physicalRAM() (uint64, bool) {
	var info unix.Sysinfo_t

	if err := unix.Sysinfo(&info); err != nil {
		return 0, false
	}

	return uint64(info.Totalram) * uint64(info.Unit), true
}
