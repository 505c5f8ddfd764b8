// Package tisci implements the client side of the TI system-controller
// message protocol. Requests and responses are little-endian packed frames
// carried over a mailbox connection; every exchange is correlated by the
// sequence byte of the shared header.
package tisci

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Message types understood by the power-management firmware.
const (
	MsgVersion        uint16 = 0x0002
	MsgSetClockState  uint16 = 0x0100
	MsgGetClockState  uint16 = 0x0101
	MsgSetClockFreq   uint16 = 0x010c
	MsgGetClockFreq   uint16 = 0x010e
	MsgSetDeviceState uint16 = 0x0200
	MsgGetDeviceState uint16 = 0x0201
)

// Header flags. A request asks for an acknowledgement; a response missing
// the generic ACK is a NACK.
const (
	FlagReqAckOnProcessed uint32 = 1 << 1
	FlagRespGenericAck    uint32 = 1 << 1
)

// Device software states for SetDeviceState.
const (
	DeviceSwStateAutoOff   uint8 = 0
	DeviceSwStateRetention uint8 = 1
	DeviceSwStateOn        uint8 = 2
)

// Clock software request states for SetClockState.
const (
	ClockSwStateUnreq uint8 = 0
	ClockSwStateAuto  uint8 = 1
	ClockSwStateReq   uint8 = 2
)

// Clock hardware states reported by GetClockState.
const (
	ClockHwStateNotReady uint8 = 0
	ClockHwStateReady    uint8 = 1
)

// HeaderLen is the wire size of the shared message header.
const HeaderLen = 8

// Header is the shared secure-message header carried by every request and
// response.
type Header struct {
	Type  uint16
	Host  uint8
	Seq   uint8
	Flags uint32
}

func EncodeMessage(h Header, body any) ([]byte, error) {
	buf := &bytes.Buffer{}

	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	if body != nil {
		if err := binary.Write(buf, binary.LittleEndian, body); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func DecodeHeader(msg []byte) (Header, []byte, error) {
	if len(msg) < HeaderLen {
		return Header{}, nil, fmt.Errorf("tisci: short message: %d bytes", len(msg))
	}

	var h Header
	if err := binary.Read(
		bytes.NewReader(msg[:HeaderLen]), binary.LittleEndian, &h,
	); err != nil {
		return Header{}, nil, err
	}

	return h, msg[HeaderLen:], nil
}

func DecodeBody(payload []byte, body any) error {
	return binary.Read(bytes.NewReader(payload), binary.LittleEndian, body)
}

// Wire layouts of the command bodies. binary.Write packs fields without
// padding, matching the firmware's packed structs.

type VersionResp struct {
	Description [32]byte
	Version     uint16
	ABIMajor    uint8
	ABIMinor    uint8
}

type SetDeviceStateReq struct {
	ID       uint32
	Reserved uint32
	State    uint8
}

type GetDeviceStateReq struct {
	ID uint32
}

type GetDeviceStateResp struct {
	ContextLossCount uint32
	Resets           uint32
	ProgrammedState  uint8
	CurrentState     uint8
}

type SetClockStateReq struct {
	Device       uint32
	Clock        uint8
	RequestState uint8
}

type GetClockStateReq struct {
	Device uint32
	Clock  uint8
}

type GetClockStateResp struct {
	ProgrammedState uint8
	CurrentState    uint8
}

type SetClockFreqReq struct {
	Device     uint32
	MinFreqHz  uint64
	TargetFreq uint64
	MaxFreqHz  uint64
	Clock      uint8
}

type GetClockFreqReq struct {
	Device uint32
	Clock  uint8
}

type GetClockFreqResp struct {
	FreqHz uint64
}
