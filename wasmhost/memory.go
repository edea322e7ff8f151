package wasmhost

import (
	"bytes"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/feos-abi/boundary"
	"github.com/wippyai/feos-abi/errors"
)

func memoryOf(mod api.Module) (api.Memory, error) {
	if mod == nil || mod.Memory() == nil {
		return nil, errors.Unsupported(errors.PhaseHost, "calling module exports no memory")
	}
	return mod.Memory(), nil
}

func outOfBounds(mem api.Memory, what string, ptr uint32, n uint64) error {
	return errors.OutOfBounds(errors.PhaseHost, []string{"memory", what}, int(uint64(ptr)+n), int(mem.Size()))
}

// count decodes a non-negative i32 length.
func count(v uint64, what string) (uint32, error) {
	n := api.DecodeI32(v)
	if n < 0 {
		return 0, errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Value(n).Detail("%s is negative", what).Build()
	}
	return uint32(n), nil
}

// readBytes copies n bytes at ptr out of guest memory.
func readBytes(mod api.Module, what string, ptr, n uint32) ([]byte, error) {
	mem, err := memoryOf(mod)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseHost, what)
	}
	b, ok := mem.Read(ptr, n)
	if !ok {
		return nil, outOfBounds(mem, what, ptr, uint64(n))
	}
	return bytes.Clone(b), nil
}

func readString(mod api.Module, what string, ptr, n uint32) (string, error) {
	b, err := readBytes(mod, what, ptr, n)
	return string(b), err
}

// readFloats reads n little-endian f64 values at ptr. The range is checked
// against the memory size before anything is allocated.
func readFloats(mod api.Module, what string, ptr, n uint32) ([]float64, error) {
	mem, err := memoryOf(mod)
	if err != nil {
		return nil, err
	}
	if n > 0 && ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseHost, what)
	}
	size := 8 * uint64(n)
	if uint64(ptr)+size > uint64(mem.Size()) {
		return nil, outOfBounds(mem, what, ptr, size)
	}
	out := make([]float64, n)
	for i := range out {
		v, ok := mem.ReadFloat64Le(ptr + uint32(i)*8)
		if !ok {
			return nil, outOfBounds(mem, what, ptr, size)
		}
		out[i] = v
	}
	return out, nil
}

// readNames splits a buffer of null-separated names, ignoring a trailing
// terminator.
func readNames(mod api.Module, what string, ptr, n uint32) ([]string, error) {
	b, err := readBytes(mod, what, ptr, n)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSuffix(b, []byte{0})
	if len(b) == 0 {
		return nil, nil
	}
	parts := bytes.Split(b, []byte{0})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out, nil
}

func writeFloat(mod api.Module, ptr uint32, v float64) error {
	mem, err := memoryOf(mod)
	if err != nil {
		return err
	}
	if ptr == 0 {
		return errors.NilPointer(errors.PhaseHost, "out")
	}
	if !mem.WriteFloat64Le(ptr, v) {
		return outOfBounds(mem, "out", ptr, 8)
	}
	return nil
}

// writeMessage stores msg in the guest's (ptr, cap) buffer. A zero cap or
// null pointer skips the write. The host buffer never exceeds the message,
// the capacity or the memory left after ptr.
func writeMessage(mod api.Module, ptr, capacity uint32, msg string) {
	if ptr == 0 || capacity == 0 {
		return
	}
	mem, err := memoryOf(mod)
	if err != nil {
		return
	}
	if ptr >= mem.Size() {
		Logger().Debug("message buffer out of bounds",
			zap.Uint32("ptr", ptr),
			zap.Uint32("cap", capacity))
		return
	}
	n := min(uint64(capacity), uint64(len(msg))+1, uint64(mem.Size()-ptr))
	buf := make([]byte, n)
	boundary.WriteMessage(buf, msg)
	end := bytes.IndexByte(buf, 0) + 1
	if !mem.Write(ptr, buf[:end]) {
		Logger().Debug("message buffer out of bounds",
			zap.Uint32("ptr", ptr),
			zap.Uint32("cap", capacity))
	}
}
