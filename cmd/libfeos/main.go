// Command libfeos builds the C shared library:
//
//	go build -buildmode=c-shared -o libfeos.so ./cmd/libfeos
//
// Handles are uint64_t values; 0 is null. Set FEOS_LOG=debug (or info,
// warn, error) to log to stderr.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"math"
	"os"
	"unsafe"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/feos-abi/boundary"
	"github.com/wippyai/feos-abi/errors"
)

func init() {
	level := os.Getenv("FEOS_LOG")
	if level == "" {
		return
	}
	cfg := zap.NewDevelopmentConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if l, err := cfg.Build(); err == nil {
		boundary.SetLogger(l.Named("feos"))
	}
}

func main() {}

type handle = boundary.Handle

func floats(ptr *C.double, n C.size_t) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.NilPointer(errors.PhaseBoundary, "array")
	}
	src := unsafe.Slice((*float64)(unsafe.Pointer(ptr)), int(n))
	return append([]float64(nil), src...), nil
}

func message(msg *C.char, msglen C.size_t) []byte {
	if msg == nil || msglen == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(msg)), int(msglen))
}

// report writes err to the message buffer and returns its status.
func report(err error, msg *C.char, msglen C.size_t) C.int32_t {
	status := boundary.StatusOf(err)
	if err != nil {
		boundary.WriteMessage(message(msg, msglen), err.Error())
	} else {
		boundary.WriteMessage(message(msg, msglen), "")
	}
	return C.int32_t(status)
}

func nan() C.double { return C.double(math.NaN()) }

//export eos_from_json
func eos_from_json(json *C.char) C.uint64_t {
	if json == nil {
		boundary.Logger().Debug("eos_from_json: null document")
		return 0
	}
	return C.uint64_t(boundary.EosFromJSON([]byte(C.GoString(json))))
}

//export free_eos_ptr
func free_eos_ptr(eos C.uint64_t) {
	_ = boundary.FreeEOS(handle(eos))
}

//export feos_eos_free
func feos_eos_free(eos C.uint64_t) {
	_ = boundary.FreeEOS(handle(eos))
}

//export feos_eos_components
func feos_eos_components(eos C.uint64_t) C.int64_t {
	n, err := boundary.EosComponents(handle(eos))
	if err != nil {
		return -1
	}
	return C.int64_t(n)
}

//export feos_pcsaft_parameters_from_json
func feos_pcsaft_parameters_from_json(substances **C.char, n C.size_t, filePure, fileBinary, identifierOption *C.char, msg *C.char, msglen C.size_t) C.uint64_t {
	var names []string
	if n > 0 {
		if substances == nil {
			report(errors.NilPointer(errors.PhaseBoundary, "substances"), msg, msglen)
			return 0
		}
		for i, s := range unsafe.Slice(substances, int(n)) {
			if s == nil {
				report(errors.New(errors.PhaseBoundary, errors.KindInvalidInput).
					Value(i).Detail("substance %d is null", i).Build(), msg, msglen)
				return 0
			}
			names = append(names, C.GoString(s))
		}
	}
	if filePure == nil {
		report(errors.NilPointer(errors.PhaseBoundary, "file_pure"), msg, msglen)
		return 0
	}
	var binary, opt string
	if fileBinary != nil {
		binary = C.GoString(fileBinary)
	}
	if identifierOption != nil {
		opt = C.GoString(identifierOption)
	}
	h, err := boundary.PcSaftParametersFromFiles(names, C.GoString(filePure), binary, opt)
	report(err, msg, msglen)
	return C.uint64_t(h)
}

//export feos_pcsaft_parameters_free
func feos_pcsaft_parameters_free(params C.uint64_t) {
	_ = boundary.FreePcSaftParameters(handle(params))
}

//export feos_eos_pcsaft
func feos_eos_pcsaft(params C.uint64_t) C.uint64_t {
	h, _ := boundary.EosPcSaft(handle(params))
	return C.uint64_t(h)
}

//export feos_state_new_npt
func feos_state_new_npt(eos C.uint64_t, temperature, pressure C.double, moles *C.double, n C.size_t, phase *C.char, msg *C.char, msglen C.size_t) C.uint64_t {
	x, err := floats(moles, n)
	if err != nil {
		report(err, msg, msglen)
		return 0
	}
	var hint string
	if phase != nil {
		hint = C.GoString(phase)
	}
	h, err := boundary.StateNewNPT(handle(eos), float64(temperature), float64(pressure), x, hint)
	report(err, msg, msglen)
	return C.uint64_t(h)
}

//export feos_state_new_tdx
func feos_state_new_tdx(eos C.uint64_t, temperature, density C.double, molefracs *C.double, n C.size_t, msg *C.char, msglen C.size_t) C.uint64_t {
	x, err := floats(molefracs, n)
	if err != nil {
		report(err, msg, msglen)
		return 0
	}
	h, err := boundary.StateNewTDX(handle(eos), float64(temperature), float64(density), x)
	report(err, msg, msglen)
	return C.uint64_t(h)
}

//export feos_state_free
func feos_state_free(state C.uint64_t) {
	_ = boundary.FreeState(handle(state))
}

//export feos_state_temperature
func feos_state_temperature(state C.uint64_t) C.double {
	return C.double(boundary.Float(boundary.StateTemperature(handle(state))))
}

//export feos_state_pressure
func feos_state_pressure(state C.uint64_t, contributions C.int32_t) C.double {
	return C.double(boundary.Float(boundary.StatePressure(handle(state), int32(contributions))))
}

//export feos_state_density
func feos_state_density(state C.uint64_t) C.double {
	return C.double(boundary.Float(boundary.StateDensity(handle(state))))
}

//export feos_state_mass_density
func feos_state_mass_density(state C.uint64_t) C.double {
	return C.double(boundary.Float(boundary.StateMassDensity(handle(state))))
}

//export feos_state_entropy
func feos_state_entropy(state C.uint64_t, contributions C.int32_t) C.double {
	return C.double(boundary.Float(boundary.StateEntropy(handle(state), int32(contributions))))
}

//export feos_state_is_stable
func feos_state_is_stable(state C.uint64_t) C.int32_t {
	return C.int32_t(boundary.Flag(boundary.StateIsStable(handle(state))))
}

//export feos_state_residual_derivative
func feos_state_residual_derivative(state C.uint64_t, orderT, orderRho C.int32_t, out *C.double, msg *C.char, msglen C.size_t) C.int32_t {
	v, err := boundary.StateResidualDerivative(handle(state), int(orderT), int(orderRho))
	if out != nil {
		*out = C.double(v)
	}
	return report(err, msg, msglen)
}

//export feos_eos_residual_derivative
func feos_eos_residual_derivative(eos C.uint64_t, temperature, density C.double, molefracs *C.double, n C.size_t, orderT, orderRho C.int32_t, out *C.double, msg *C.char, msglen C.size_t) C.int32_t {
	x, err := floats(molefracs, n)
	if err != nil {
		return report(err, msg, msglen)
	}
	v, err := boundary.EosResidualDerivative(handle(eos), float64(temperature), float64(density), x, int(orderT), int(orderRho))
	if out != nil {
		*out = C.double(v)
	}
	return report(err, msg, msglen)
}

//export pressure_bar
func pressure_bar(eos C.uint64_t, temperature, density C.double, molefracs *C.double, n C.size_t) C.double {
	x, err := floats(molefracs, n)
	if err != nil {
		return nan()
	}
	return C.double(boundary.Float(boundary.PressureBar(handle(eos), float64(temperature), float64(density), x)))
}

//export da_dv
func da_dv(eos C.uint64_t, temperature, density C.double, molefracs *C.double, n C.size_t) C.double {
	x, err := floats(molefracs, n)
	if err != nil {
		return nan()
	}
	return C.double(boundary.Float(boundary.DaDv(handle(eos), float64(temperature), float64(density), x)))
}
