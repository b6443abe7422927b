//go:build !linux

package wakelock

func New(_ bool) Lock {
	return Noop{}
}
