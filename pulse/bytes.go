package pulse

import "unsafe"

func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}

// SliceAsBytes reinterprets the memory of values without copying
func SliceAsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zeroT T

	n := unsafe.Sizeof(zeroT) * uintptr(len(values))
	ptr := (*byte)(unsafe.Pointer(&values[0]))

	return unsafe.Slice(ptr, n)
}
