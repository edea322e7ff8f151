package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/feos-abi/boundary"
)

type handle = boundary.Handle

// report writes err (or an empty message) to the guest buffer and returns
// the encoded status.
func report(mod api.Module, ptr, capacity uint32, err error) uint64 {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	writeMessage(mod, ptr, capacity, msg)
	return api.EncodeI32(int32(boundary.StatusOf(err)))
}

func encodeFlag(ok bool, err error) uint64 {
	return api.EncodeI32(boundary.Flag(ok, err))
}

func encodeFloat(v float64, err error) uint64 {
	return api.EncodeF64(boundary.Float(v, err))
}

func encodeHandle(h handle, err error) uint64 {
	if err != nil {
		return 0
	}
	return uint64(h)
}

// point reads the (eos, t, rho, x_ptr, n) argument group.
func point(mod api.Module, stack []uint64) (handle, float64, float64, []float64, error) {
	n, err := count(stack[4], "n")
	if err != nil {
		return 0, 0, 0, nil, err
	}
	x, err := readFloats(mod, "molefracs", api.DecodeU32(stack[3]), n)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	return handle(stack[0]), api.DecodeF64(stack[1]), api.DecodeF64(stack[2]), x, nil
}

func functions() []FuncDef {
	return []FuncDef{
		{
			Name:        "eos_from_json",
			Handler:     eosFromJSON,
			ParamTypes:  params(i32, i32),
			ResultTypes: params(i64),
			Fail:        failHandle,
		},
		{
			Name:        "eos_free",
			Handler:     eosFree,
			ParamTypes:  params(i64),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "free_eos_ptr",
			Handler:     eosFree,
			ParamTypes:  params(i64),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "eos_components",
			Handler:     eosComponents,
			ParamTypes:  params(i64),
			ResultTypes: params(i64),
			Fail:        failCount,
		},
		{
			Name:        "pcsaft_parameters_from_json",
			Handler:     pcsaftParametersFromJSON,
			ParamTypes:  params(i32, i32, i32, i32, i32, i32, i32, i32, i32, i32),
			ResultTypes: params(i64),
			Fail:        failHandle,
		},
		{
			Name:        "pcsaft_parameters_free",
			Handler:     pcsaftParametersFree,
			ParamTypes:  params(i64),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "eos_pcsaft",
			Handler:     eosPcSaft,
			ParamTypes:  params(i64, i32, i32),
			ResultTypes: params(i64),
			Fail:        failHandle,
		},
		{
			Name:        "state_new_npt",
			Handler:     stateNewNPT,
			ParamTypes:  params(i64, f64, f64, i32, i32, i32, i32, i32, i32),
			ResultTypes: params(i64),
			Fail:        failHandle,
		},
		{
			Name:        "state_new_tdx",
			Handler:     stateNewTDX,
			ParamTypes:  params(i64, f64, f64, i32, i32, i32, i32),
			ResultTypes: params(i64),
			Fail:        failHandle,
		},
		{
			Name:        "state_free",
			Handler:     stateFree,
			ParamTypes:  params(i64),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "state_temperature",
			Handler:     stateTemperature,
			ParamTypes:  params(i64),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "state_pressure",
			Handler:     statePressure,
			ParamTypes:  params(i64, i32),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "state_density",
			Handler:     stateDensity,
			ParamTypes:  params(i64),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "state_mass_density",
			Handler:     stateMassDensity,
			ParamTypes:  params(i64),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "state_entropy",
			Handler:     stateEntropy,
			ParamTypes:  params(i64, i32),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "state_is_stable",
			Handler:     stateIsStable,
			ParamTypes:  params(i64),
			ResultTypes: params(i32),
			Fail:        failFlag,
		},
		{
			Name:        "state_residual_derivative",
			Handler:     stateResidualDerivative,
			ParamTypes:  params(i64, i32, i32, i32, i32, i32),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "eos_residual_derivative",
			Handler:     eosResidualDerivative,
			ParamTypes:  params(i64, f64, f64, i32, i32, i32, i32, i32, i32, i32),
			ResultTypes: params(i32),
			Fail:        failStatus,
		},
		{
			Name:        "pressure_bar",
			Handler:     pressureBar,
			ParamTypes:  params(i64, f64, f64, i32, i32),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
		{
			Name:        "da_dv",
			Handler:     daDv,
			ParamTypes:  params(i64, f64, f64, i32, i32),
			ResultTypes: params(f64),
			Fail:        failFloat,
		},
	}
}

// eos_from_json(doc_ptr, doc_len) -> eos
func eosFromJSON(_ context.Context, mod api.Module, stack []uint64) {
	doc, err := readBytes(mod, "json", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	if err != nil || len(doc) == 0 {
		stack[0] = 0
		return
	}
	stack[0] = uint64(boundary.EosFromJSON(doc))
}

// eos_free(eos) -> status
func eosFree(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(boundary.StatusOf(boundary.FreeEOS(handle(stack[0])))))
}

// eos_components(eos) -> n, or -1
func eosComponents(_ context.Context, _ api.Module, stack []uint64) {
	n, err := boundary.EosComponents(handle(stack[0]))
	if err != nil {
		stack[0] = failCount
		return
	}
	stack[0] = api.EncodeI64(int64(n))
}

// pcsaft_parameters_from_json(names_ptr, names_len, pure_ptr, pure_len,
// binary_ptr, binary_len, option_ptr, option_len, msg_ptr, msg_cap) -> params
//
// Substance names are null-separated.
func pcsaftParametersFromJSON(_ context.Context, mod api.Module, stack []uint64) {
	msgPtr, msgCap := api.DecodeU32(stack[8]), api.DecodeU32(stack[9])
	h, err := func() (handle, error) {
		names, err := readNames(mod, "substances", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
		if err != nil {
			return 0, err
		}
		pure, err := readString(mod, "pure file", api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
		if err != nil {
			return 0, err
		}
		binary, err := readString(mod, "binary file", api.DecodeU32(stack[4]), api.DecodeU32(stack[5]))
		if err != nil {
			return 0, err
		}
		opt, err := readString(mod, "identifier option", api.DecodeU32(stack[6]), api.DecodeU32(stack[7]))
		if err != nil {
			return 0, err
		}
		return boundary.PcSaftParametersFromFiles(names, pure, binary, opt)
	}()
	report(mod, msgPtr, msgCap, err)
	stack[0] = encodeHandle(h, err)
}

// pcsaft_parameters_free(params) -> status
func pcsaftParametersFree(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(boundary.StatusOf(boundary.FreePcSaftParameters(handle(stack[0])))))
}

// eos_pcsaft(params, msg_ptr, msg_cap) -> eos
func eosPcSaft(_ context.Context, mod api.Module, stack []uint64) {
	h, err := boundary.EosPcSaft(handle(stack[0]))
	report(mod, api.DecodeU32(stack[1]), api.DecodeU32(stack[2]), err)
	stack[0] = encodeHandle(h, err)
}

// state_new_npt(eos, t, p, moles_ptr, n, phase_ptr, phase_len, msg_ptr,
// msg_cap) -> state
func stateNewNPT(_ context.Context, mod api.Module, stack []uint64) {
	msgPtr, msgCap := api.DecodeU32(stack[7]), api.DecodeU32(stack[8])
	h, err := func() (handle, error) {
		n, err := count(stack[4], "n")
		if err != nil {
			return 0, err
		}
		moles, err := readFloats(mod, "moles", api.DecodeU32(stack[3]), n)
		if err != nil {
			return 0, err
		}
		phase, err := readString(mod, "phase", api.DecodeU32(stack[5]), api.DecodeU32(stack[6]))
		if err != nil {
			return 0, err
		}
		return boundary.StateNewNPT(handle(stack[0]), api.DecodeF64(stack[1]), api.DecodeF64(stack[2]), moles, phase)
	}()
	report(mod, msgPtr, msgCap, err)
	stack[0] = encodeHandle(h, err)
}

// state_new_tdx(eos, t, rho, x_ptr, n, msg_ptr, msg_cap) -> state
func stateNewTDX(_ context.Context, mod api.Module, stack []uint64) {
	msgPtr, msgCap := api.DecodeU32(stack[5]), api.DecodeU32(stack[6])
	h, err := func() (handle, error) {
		e, t, rho, x, err := point(mod, stack)
		if err != nil {
			return 0, err
		}
		return boundary.StateNewTDX(e, t, rho, x)
	}()
	report(mod, msgPtr, msgCap, err)
	stack[0] = encodeHandle(h, err)
}

// state_free(state) -> status
func stateFree(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(int32(boundary.StatusOf(boundary.FreeState(handle(stack[0])))))
}

func stateTemperature(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFloat(boundary.StateTemperature(handle(stack[0])))
}

func statePressure(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFloat(boundary.StatePressure(handle(stack[0]), api.DecodeI32(stack[1])))
}

func stateDensity(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFloat(boundary.StateDensity(handle(stack[0])))
}

func stateMassDensity(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFloat(boundary.StateMassDensity(handle(stack[0])))
}

func stateEntropy(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFloat(boundary.StateEntropy(handle(stack[0]), api.DecodeI32(stack[1])))
}

func stateIsStable(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = encodeFlag(boundary.StateIsStable(handle(stack[0])))
}

// state_residual_derivative(state, order_t, order_rho, out_ptr, msg_ptr,
// msg_cap) -> status
func stateResidualDerivative(_ context.Context, mod api.Module, stack []uint64) {
	out, msgPtr, msgCap := api.DecodeU32(stack[3]), api.DecodeU32(stack[4]), api.DecodeU32(stack[5])
	v, err := boundary.StateResidualDerivative(handle(stack[0]), int(api.DecodeI32(stack[1])), int(api.DecodeI32(stack[2])))
	if werr := writeFloat(mod, out, boundary.Float(v, err)); err == nil {
		err = werr
	}
	stack[0] = report(mod, msgPtr, msgCap, err)
}

// eos_residual_derivative(eos, t, rho, x_ptr, n, order_t, order_rho,
// out_ptr, msg_ptr, msg_cap) -> status
func eosResidualDerivative(_ context.Context, mod api.Module, stack []uint64) {
	out, msgPtr, msgCap := api.DecodeU32(stack[7]), api.DecodeU32(stack[8]), api.DecodeU32(stack[9])
	v, err := func() (float64, error) {
		e, t, rho, x, err := point(mod, stack)
		if err != nil {
			return 0, err
		}
		return boundary.EosResidualDerivative(e, t, rho, x, int(api.DecodeI32(stack[5])), int(api.DecodeI32(stack[6])))
	}()
	if werr := writeFloat(mod, out, boundary.Float(v, err)); err == nil {
		err = werr
	}
	stack[0] = report(mod, msgPtr, msgCap, err)
}

// pressure_bar(eos, t, rho, x_ptr, n) -> bar
func pressureBar(_ context.Context, mod api.Module, stack []uint64) {
	e, t, rho, x, err := point(mod, stack)
	if err != nil {
		stack[0] = failFloat
		return
	}
	stack[0] = encodeFloat(boundary.PressureBar(e, t, rho, x))
}

// da_dv(eos, t, rho, x_ptr, n) -> 1/Å³
func daDv(_ context.Context, mod api.Module, stack []uint64) {
	e, t, rho, x, err := point(mod, stack)
	if err != nil {
		stack[0] = failFloat
		return
	}
	stack[0] = encodeFloat(boundary.DaDv(e, t, rho, x))
}
