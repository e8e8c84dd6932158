package serialspy

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"go.bug.st/serial"

	"github.com/soar/skinview/internal/controller"
)

const (
	DefaultBaud = 115200

	packetTerminator = '\n'
	maxPacketSize    = 4096
)

// OpenFunc opens the byte stream packets are read from.
type OpenFunc func() (io.ReadCloser, error)

// Reader decodes newline-terminated packets from a stream into states. A
// read failure or end of stream ends Run and counts as a disconnect.
type Reader struct {
	*controller.Emitter
	name   string
	open   OpenFunc
	decode Decoder
}

// NewReader reads packets from the serial port at the given baud rate.
func NewReader(port string, baud int, decode Decoder) *Reader {
	if baud <= 0 {
		baud = DefaultBaud
	}
	open := func() (io.ReadCloser, error) {
		return serial.Open(port, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
	}
	return NewStreamReader(port, open, decode)
}

// NewStreamReader reads packets from whatever open returns.
func NewStreamReader(name string, open OpenFunc, decode Decoder) *Reader {
	return &Reader{
		Emitter: controller.NewEmitter(64),
		name:    name,
		open:    open,
		decode:  decode,
	}
}

func (r *Reader) Run(ctx context.Context) error {
	defer r.Close()

	if r.name == "" {
		return fmt.Errorf("serialspy: no port configured")
	}
	rc, err := r.open()
	if err != nil {
		return fmt.Errorf("serialspy: open %s: %w", r.name, err)
	}
	log.Printf("Serial port opened: %s", r.name)

	// closing the stream unblocks the pending read
	stop := context.AfterFunc(ctx, func() { rc.Close() })
	defer stop()
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 256), maxPacketSize)
	sc.Split(splitPackets)
	for sc.Scan() {
		if st, ok := r.decode(sc.Bytes()); ok {
			r.Emit(st)
		}
	}

	if ctx.Err() != nil {
		return nil
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("serialspy: read %s: %w", r.name, err)
	}
	log.Printf("Serial port closed: %s", r.name)
	return nil
}

// splitPackets splits on the terminator byte only. Unlike bufio.ScanLines
// it keeps carriage returns, which are valid packet bytes.
func splitPackets(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, packetTerminator); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
