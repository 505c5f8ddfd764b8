// Package xmodem implements the sending side of the XMODEM-1K protocol
// used to push firmware images into the boot ROM over a serial line. The
// receiver drives the handshake: it polls with 'C' to request CRC mode, and
// acknowledges every 1024-byte block.
package xmodem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Protocol control bytes.
const (
	soh     = 0x01
	stx     = 0x02
	eot     = 0x04
	ack     = 0x06
	nak     = 0x15
	crcPing = 'C'
)

const (
	blockSize  = 1024
	maxRetries = 10

	// The receiver pings while it waits; anything else on the line before
	// the handshake is noise, bounded so a broken line fails fast.
	maxPingNoise = 128
)

// ErrRetriesExceeded reports that a block was rejected too many times.
var ErrRetriesExceeded = errors.New("xmodem: retries exceeded")

// Send transfers data over rw in 1024-byte CRC-checked blocks. The final
// block is zero padded.
func Send(rw io.ReadWriter, data []byte) error {
	if err := waitForPing(rw); err != nil {
		return err
	}

	blockNum := byte(1)
	for offset := 0; offset < len(data); offset += blockSize {
		end := offset + blockSize
		if end > len(data) {
			end = len(data)
		}

		if err := sendBlock(rw, blockNum, data[offset:end]); err != nil {
			return err
		}

		// Wraps 0xFF to 0x00, as the protocol requires.
		blockNum++
	}

	return sendEOT(rw)
}

// SendImage transfers a flash image prefixed with the 12-byte big-endian
// loader header: destination offset, image size and flags.
func SendImage(rw io.ReadWriter, data []byte, flashOffset, flags uint32) error {
	header := make([]byte, 12)
	binary.BigEndian.PutUint32(header[0:4], flashOffset)
	binary.BigEndian.PutUint32(header[4:8], uint32(len(data)))
	binary.BigEndian.PutUint32(header[8:12], flags)

	return Send(rw, append(header, data...))
}

func waitForPing(rw io.ReadWriter) error {
	for i := 0; i < maxPingNoise; i++ {
		b, err := readByte(rw)
		if err != nil {
			return fmt.Errorf("xmodem: waiting for receiver: %w", err)
		}
		if b == crcPing {
			return nil
		}
	}

	return errors.New("xmodem: receiver never requested CRC mode")
}

func sendBlock(rw io.ReadWriter, blockNum byte, payload []byte) error {
	frame := make([]byte, 3+blockSize+2)
	frame[0] = stx
	frame[1] = blockNum
	frame[2] = 0xFF - blockNum
	copy(frame[3:3+blockSize], payload)

	crc := CRC16(frame[3 : 3+blockSize])
	binary.BigEndian.PutUint16(frame[3+blockSize:], crc)

	for attempt := 0; attempt < maxRetries; attempt++ {
		if _, err := rw.Write(frame); err != nil {
			return err
		}

		b, err := readByte(rw)
		if err != nil {
			return err
		}

		switch b {
		case ack:
			return nil
		case nak:
			continue
		case crcPing:
			// The receiver is still pinging for the first block.
			if blockNum == 1 {
				continue
			}
			return fmt.Errorf("xmodem: unexpected ping at block %d", blockNum)
		default:
			return fmt.Errorf("xmodem: unexpected reply 0x%02x", b)
		}
	}

	return fmt.Errorf("%w: block %d", ErrRetriesExceeded, blockNum)
}

func sendEOT(rw io.ReadWriter) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		if _, err := rw.Write([]byte{eot}); err != nil {
			return err
		}

		b, err := readByte(rw)
		if err != nil {
			return err
		}
		if b == ack {
			return nil
		}
	}

	return fmt.Errorf("%w: end of transmission", ErrRetriesExceeded)
}

func readByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// CRC16 computes the CRC-16/XMODEM checksum (polynomial 0x1021, zero
// initial value).
func CRC16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
