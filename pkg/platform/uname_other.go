//go:build !unix

package platform

func uname() map[string]string { return nil }
