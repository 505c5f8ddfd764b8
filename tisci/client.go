package tisci

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/soclab/edma/mbox"
)

// The firmware answers well within this bound; a silent mailbox means the
// controller is gone.
const responseTimeout = 100 * time.Millisecond

var (
	// ErrTimeout reports that the firmware did not answer in time.
	ErrTimeout = errors.New("tisci: response timeout")

	// ErrNACK reports that the firmware rejected the request.
	ErrNACK = errors.New("tisci: request not acknowledged")
)

// A Client exchanges messages with the system-controller firmware. One
// request is in flight at a time; concurrent callers serialize on the
// client.
type Client struct {
	conn mbox.Conn
	host uint8

	timeout time.Duration

	xferMu sync.Mutex

	mu      sync.Mutex
	waiting bool
	expect  uint8
	seq     uint8
	respCh  chan []byte
}

// NewClient creates a Client speaking on behalf of host over conn.
func NewClient(conn mbox.Conn, host uint8) *Client {
	c := &Client{
		conn:    conn,
		host:    host,
		timeout: responseTimeout,
	}

	conn.OnReceive(c.handleMessage)

	return c
}

func (c *Client) handleMessage(msg []byte) {
	h, _, err := DecodeHeader(msg)
	if err != nil {
		log.Printf("tisci: dropping malformed message: %v", err)
		return
	}

	c.mu.Lock()
	if !c.waiting || h.Seq != c.expect {
		c.mu.Unlock()
		log.Printf("tisci: dropping message with unexpected seq %d", h.Seq)
		return
	}
	c.waiting = false
	ch := c.respCh
	c.mu.Unlock()

	ch <- msg
}

// xfer sends one request and waits for the matching response, returning its
// payload.
func (c *Client) xfer(msgType uint16, body any) ([]byte, error) {
	c.xferMu.Lock()
	defer c.xferMu.Unlock()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	ch := make(chan []byte, 1)
	c.respCh = ch
	c.expect = seq
	c.waiting = true
	c.mu.Unlock()

	msg, err := EncodeMessage(Header{
		Type:  msgType,
		Host:  c.host,
		Seq:   seq,
		Flags: FlagReqAckOnProcessed,
	}, body)
	if err != nil {
		return nil, err
	}

	if err := c.conn.Send(msg); err != nil {
		return nil, fmt.Errorf("tisci: send: %w", err)
	}

	select {
	case resp := <-ch:
		h, payload, err := DecodeHeader(resp)
		if err != nil {
			return nil, err
		}
		if h.Flags&FlagRespGenericAck == 0 {
			return nil, fmt.Errorf("%w: message type 0x%04x", ErrNACK, msgType)
		}
		return payload, nil

	case <-time.After(c.timeout):
		c.mu.Lock()
		c.waiting = false
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: message type 0x%04x", ErrTimeout, msgType)
	}
}

// Version describes the firmware revision.
type Version struct {
	Description string
	Version     uint16
	ABIMajor    uint8
	ABIMinor    uint8
}

// GetVersion queries the firmware revision and ABI.
func (c *Client) GetVersion() (Version, error) {
	payload, err := c.xfer(MsgVersion, nil)
	if err != nil {
		return Version{}, err
	}

	var resp VersionResp
	if err := DecodeBody(payload, &resp); err != nil {
		return Version{}, err
	}

	return Version{
		Description: strings.TrimRight(string(resp.Description[:]), "\x00"),
		Version:     resp.Version,
		ABIMajor:    resp.ABIMajor,
		ABIMinor:    resp.ABIMinor,
	}, nil
}

// SetDeviceState requests a device software state.
func (c *Client) SetDeviceState(device uint32, state uint8) error {
	_, err := c.xfer(MsgSetDeviceState, SetDeviceStateReq{
		ID:    device,
		State: state,
	})
	return err
}

// GetDevice powers a device on.
func (c *Client) GetDevice(device uint32) error {
	return c.SetDeviceState(device, DeviceSwStateOn)
}

// IdleDevice puts a device into retention.
func (c *Client) IdleDevice(device uint32) error {
	return c.SetDeviceState(device, DeviceSwStateRetention)
}

// PutDevice releases a device, letting the firmware power it off.
func (c *Client) PutDevice(device uint32) error {
	return c.SetDeviceState(device, DeviceSwStateAutoOff)
}

// DeviceState is the firmware's view of one device.
type DeviceState struct {
	ContextLossCount uint32
	Resets           uint32
	ProgrammedState  uint8
	CurrentState     uint8
}

// GetDeviceState queries the firmware's view of a device.
func (c *Client) GetDeviceState(device uint32) (DeviceState, error) {
	payload, err := c.xfer(MsgGetDeviceState, GetDeviceStateReq{ID: device})
	if err != nil {
		return DeviceState{}, err
	}

	var resp GetDeviceStateResp
	if err := DecodeBody(payload, &resp); err != nil {
		return DeviceState{}, err
	}

	return DeviceState{
		ContextLossCount: resp.ContextLossCount,
		Resets:           resp.Resets,
		ProgrammedState:  resp.ProgrammedState,
		CurrentState:     resp.CurrentState,
	}, nil
}

// SetClockState requests a clock software state.
func (c *Client) SetClockState(device uint32, clock, state uint8) error {
	_, err := c.xfer(MsgSetClockState, SetClockStateReq{
		Device:       device,
		Clock:        clock,
		RequestState: state,
	})
	return err
}

// GetClockState queries the programmed and current state of a clock.
func (c *Client) GetClockState(
	device uint32, clock uint8,
) (programmed, current uint8, err error) {
	payload, err := c.xfer(MsgGetClockState, GetClockStateReq{
		Device: device,
		Clock:  clock,
	})
	if err != nil {
		return 0, 0, err
	}

	var resp GetClockStateResp
	if err := DecodeBody(payload, &resp); err != nil {
		return 0, 0, err
	}

	return resp.ProgrammedState, resp.CurrentState, nil
}

// ClkIsOn reports whether a clock is requested and running.
func (c *Client) ClkIsOn(device uint32, clock uint8) (bool, error) {
	programmed, current, err := c.GetClockState(device, clock)
	if err != nil {
		return false, err
	}
	return programmed == ClockSwStateReq && current == ClockHwStateReady, nil
}

// ClkIsOff reports whether a clock is unrequested and stopped.
func (c *Client) ClkIsOff(device uint32, clock uint8) (bool, error) {
	programmed, current, err := c.GetClockState(device, clock)
	if err != nil {
		return false, err
	}
	return programmed == ClockSwStateUnreq && current == ClockHwStateNotReady, nil
}

// ClkGetFreq queries a clock frequency in Hz.
func (c *Client) ClkGetFreq(device uint32, clock uint8) (uint64, error) {
	payload, err := c.xfer(MsgGetClockFreq, GetClockFreqReq{
		Device: device,
		Clock:  clock,
	})
	if err != nil {
		return 0, err
	}

	var resp GetClockFreqResp
	if err := DecodeBody(payload, &resp); err != nil {
		return 0, err
	}

	return resp.FreqHz, nil
}

// ClkSetFreq programs a clock frequency, bounded by [minHz, maxHz].
func (c *Client) ClkSetFreq(
	device uint32, clock uint8, minHz, targetHz, maxHz uint64,
) error {
	_, err := c.xfer(MsgSetClockFreq, SetClockFreqReq{
		Device:     device,
		MinFreqHz:  minHz,
		TargetFreq: targetHz,
		MaxFreqHz:  maxHz,
		Clock:      clock,
	})
	return err
}
