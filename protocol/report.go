// Package protocol implements the wire framing for motion reports sent
// to the quadrature adapter, typically over a UART. Frames are fixed
// size and carry a CRC so the decoder can resynchronize after line noise
// or a partial read.
package protocol

// Frame layout:
//
//	byte 0     sync (0x6D)
//	byte 1     port index
//	byte 2     dx, signed
//	byte 3     dy, signed
//	byte 4     button bitfield
//	bytes 5-6  CRC16 over bytes 1-4, big endian
const (
	FrameSync = 0x6D
	FrameLen  = 7

	payloadOff = 1
	payloadLen = 4
)

// Button bitfield values.
const (
	ButtonLeft   = 1 << 0
	ButtonRight  = 1 << 1
	ButtonMiddle = 1 << 2
)

// Report is one motion/button report for an emulated mouse port.
// Deltas are bounded to the signed byte range, one HID report tick.
type Report struct {
	Port    uint8
	DX      int8
	DY      int8
	Buttons uint8
}

// AppendFrame appends the encoded frame for r to dst.
func AppendFrame(dst []byte, r Report) []byte {
	dst = append(dst, FrameSync, r.Port, uint8(r.DX), uint8(r.DY), r.Buttons)
	crc := CRC16(dst[len(dst)-payloadLen:])
	return append(dst, byte(crc>>8), byte(crc))
}

// ReportHandler consumes one decoded report.
type ReportHandler func(Report)

// Stream is a resynchronizing frame decoder. Bytes are fed in whatever
// chunks the transport delivers; garbage before a sync byte is discarded,
// and a frame whose CRC fails costs exactly one byte of input before the
// scan resumes (the real frame may start inside the corrupted one).
type Stream struct {
	handler   ReportHandler
	buf       []byte
	crcErrors uint32
	dropped   uint32
}

// NewStream creates a decoder delivering reports to handler.
func NewStream(handler ReportHandler) *Stream {
	return &Stream{handler: handler, buf: make([]byte, 0, 2*FrameLen)}
}

// Feed consumes a chunk of raw bytes, invoking the handler once per
// complete valid frame. Partial frames are retained for the next call.
func (s *Stream) Feed(data []byte) {
	s.buf = append(s.buf, data...)

	for {
		// Discard noise up to the next sync byte.
		i := 0
		for i < len(s.buf) && s.buf[i] != FrameSync {
			i++
		}
		if i > 0 {
			s.dropped += uint32(i)
			s.buf = s.buf[i:]
		}
		if len(s.buf) < FrameLen {
			// Compact so the retained tail doesn't pin a growing array.
			s.buf = append(s.buf[:0:0], s.buf...)
			return
		}

		frame := s.buf[:FrameLen]
		want := uint16(frame[FrameLen-2])<<8 | uint16(frame[FrameLen-1])
		if CRC16(frame[payloadOff:payloadOff+payloadLen]) != want {
			s.crcErrors++
			s.buf = s.buf[1:]
			continue
		}

		s.handler(Report{
			Port:    frame[1],
			DX:      int8(frame[2]),
			DY:      int8(frame[3]),
			Buttons: frame[4],
		})
		s.buf = s.buf[FrameLen:]
	}
}

// CRCErrors returns the number of frames rejected by checksum.
func (s *Stream) CRCErrors() uint32 { return s.crcErrors }

// Dropped returns the number of noise bytes discarded between frames.
func (s *Stream) Dropped() uint32 { return s.dropped }
