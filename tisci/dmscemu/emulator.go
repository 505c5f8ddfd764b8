// Package dmscemu emulates the power-management firmware behind a mailbox
// connection. It answers the command set the tisci client speaks against an
// in-memory device and clock table; tests and demos use it in place of the
// real system controller.
package dmscemu

import (
	"log"
	"sync"

	"github.com/soclab/edma/mbox"
	"github.com/soclab/edma/tisci"
)

type deviceState struct {
	state            uint8
	contextLossCount uint32
	resets           uint32
}

type clockState struct {
	state  uint8
	freqHz uint64
	minHz  uint64
	maxHz  uint64
}

type clockKey struct {
	device uint32
	clock  uint8
}

// An Emulator answers firmware requests arriving on its mailbox end.
type Emulator struct {
	conn mbox.Conn

	mu      sync.Mutex
	devices map[uint32]*deviceState
	clocks  map[clockKey]*clockState

	// Drop, when set, silently swallows requests. Tests use it to provoke
	// client timeouts.
	Drop bool
}

// Firmware identity reported by the version command.
const (
	fwDescription = "DMSC-emu"
	fwVersion     = 0x0101
	abiMajor      = 3
	abiMinor      = 1
)

// New creates an Emulator serving on conn.
func New(conn mbox.Conn) *Emulator {
	e := &Emulator{
		conn:    conn,
		devices: make(map[uint32]*deviceState),
		clocks:  make(map[clockKey]*clockState),
	}

	conn.OnReceive(e.handleRequest)

	return e
}

// AddDevice registers a device id the firmware manages.
func (e *Emulator) AddDevice(id uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices[id] = &deviceState{state: tisci.DeviceSwStateAutoOff}
}

// AddClock registers a clock with its frequency range. The clock starts
// unrequested at freqHz.
func (e *Emulator) AddClock(device uint32, clock uint8, freqHz, minHz, maxHz uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clocks[clockKey{device, clock}] = &clockState{
		state:  tisci.ClockSwStateUnreq,
		freqHz: freqHz,
		minHz:  minHz,
		maxHz:  maxHz,
	}
}

// DeviceState returns the software state of a device, for assertions.
func (e *Emulator) DeviceState(id uint32) (uint8, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, ok := e.devices[id]
	if !ok {
		return 0, false
	}
	return d.state, true
}

func (e *Emulator) handleRequest(msg []byte) {
	h, payload, err := tisci.DecodeHeader(msg)
	if err != nil {
		log.Printf("dmscemu: dropping malformed request: %v", err)
		return
	}

	e.mu.Lock()
	if e.Drop {
		e.mu.Unlock()
		return
	}

	body, ok := e.dispatch(h.Type, payload)
	e.mu.Unlock()

	flags := uint32(0)
	if ok {
		flags = tisci.FlagRespGenericAck
	}

	resp, err := tisci.EncodeMessage(tisci.Header{
		Type:  h.Type,
		Host:  h.Host,
		Seq:   h.Seq,
		Flags: flags,
	}, body)
	if err != nil {
		log.Printf("dmscemu: cannot encode response: %v", err)
		return
	}

	if err := e.conn.Send(resp); err != nil {
		log.Printf("dmscemu: cannot send response: %v", err)
	}
}

// dispatch answers one request body. It returns the response body and
// whether the request is acknowledged.
func (e *Emulator) dispatch(msgType uint16, payload []byte) (any, bool) {
	switch msgType {
	case tisci.MsgVersion:
		return e.version(), true

	case tisci.MsgSetDeviceState:
		var req tisci.SetDeviceStateReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		d, ok := e.devices[req.ID]
		if !ok {
			return nil, false
		}
		d.state = req.State
		return nil, true

	case tisci.MsgGetDeviceState:
		var req tisci.GetDeviceStateReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		d, ok := e.devices[req.ID]
		if !ok {
			return nil, false
		}
		return tisci.GetDeviceStateResp{
			ContextLossCount: d.contextLossCount,
			Resets:           d.resets,
			ProgrammedState:  d.state,
			CurrentState:     d.state,
		}, true

	case tisci.MsgSetClockState:
		var req tisci.SetClockStateReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		clk, ok := e.clocks[clockKey{req.Device, req.Clock}]
		if !ok {
			return nil, false
		}
		clk.state = req.RequestState
		return nil, true

	case tisci.MsgGetClockState:
		var req tisci.GetClockStateReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		clk, ok := e.clocks[clockKey{req.Device, req.Clock}]
		if !ok {
			return nil, false
		}
		current := tisci.ClockHwStateNotReady
		if clk.state == tisci.ClockSwStateReq {
			current = tisci.ClockHwStateReady
		}
		return tisci.GetClockStateResp{
			ProgrammedState: clk.state,
			CurrentState:    current,
		}, true

	case tisci.MsgSetClockFreq:
		var req tisci.SetClockFreqReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		clk, ok := e.clocks[clockKey{req.Device, req.Clock}]
		if !ok {
			return nil, false
		}
		if req.TargetFreq < clk.minHz || req.TargetFreq > clk.maxHz {
			return nil, false
		}
		clk.freqHz = req.TargetFreq
		return nil, true

	case tisci.MsgGetClockFreq:
		var req tisci.GetClockFreqReq
		if tisci.DecodeBody(payload, &req) != nil {
			return nil, false
		}
		clk, ok := e.clocks[clockKey{req.Device, req.Clock}]
		if !ok {
			return nil, false
		}
		return tisci.GetClockFreqResp{FreqHz: clk.freqHz}, true

	default:
		return nil, false
	}
}

func (e *Emulator) version() tisci.VersionResp {
	resp := tisci.VersionResp{
		Version:  fwVersion,
		ABIMajor: abiMajor,
		ABIMinor: abiMinor,
	}
	copy(resp.Description[:], fwDescription)
	return resp
}
