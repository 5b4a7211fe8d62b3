//go:build unix

package platform

import "golang.org/x/sys/unix"

func uname() map[string]string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return nil
	}
	return map[string]string{
		"SYSNAME": unix.ByteSliceToString(u.Sysname[:]),
		"RELEASE": unix.ByteSliceToString(u.Release[:]),
		"MACHINE": unix.ByteSliceToString(u.Machine[:]),
	}
}
