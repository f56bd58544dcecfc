package dataplane

import (
	"errors"
	"math"
	"strconv"
)

// maxAccumulatedBytes is the absolute ceiling on buffered chunk data for a
// single call, independent of what the agent declared. 512 MiB.
const maxAccumulatedBytes = 512 << 20

var (
	errAccumulatorDone  = errors.New("accumulator is no longer receiving")
	errDeclaredExceeded = errors.New("chunk data exceeds declared total size")
	errLimitExceeded    = errors.New("chunk data exceeds accumulation limit")
)

type accState int

const (
	accReceiving accState = iota
	accCompleted
	accCancelled
	accFailed
)

// accumulator buffers the chunks of one in-flight streaming call. One call
// equals one transfer, so the accumulator is owned by the RPC handler and
// never shared; any terminal transition discards the buffered data so a
// partial transfer can never surface as a truncated completion.
type accumulator struct {
	state    accState
	chunks   [][]byte
	received int64
	declared int64 // 0 when the agent sent no usable total
}

// newAccumulator parses the declared total size defensively. Anything
// unparseable counts as undeclared.
func newAccumulator(totalSize string) *accumulator {
	return &accumulator{declared: parseByteCount(totalSize)}
}

// append buffers one chunk. The data is copied, since gRPC may reuse the
// receive buffer. Overruns of the declared size or the absolute limit fail
// the accumulator.
func (a *accumulator) append(data []byte) error {
	if a.state != accReceiving {
		return errAccumulatorDone
	}

	next := a.received + int64(len(data))
	if a.declared > 0 && next > a.declared {
		a.fail()
		return errDeclaredExceeded
	}
	if next > maxAccumulatedBytes {
		a.fail()
		return errLimitExceeded
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	a.chunks = append(a.chunks, buf)
	a.received = next
	return nil
}

// progress reports bytes received, declared total and a whole percentage.
// With no usable total the percentage is 0.
func (a *accumulator) progress() (received, total int64, percentage int) {
	if a.declared > 0 {
		percentage = int(math.Round(float64(a.received) / float64(a.declared) * 100))
	}
	return a.received, a.declared, percentage
}

// assemble concatenates every chunk in arrival order and completes the
// accumulator. Calling it twice returns nil.
func (a *accumulator) assemble() []byte {
	if a.state != accReceiving {
		return nil
	}
	a.state = accCompleted

	out := make([]byte, 0, a.received)
	for _, c := range a.chunks {
		out = append(out, c...)
	}
	a.chunks = nil
	return out
}

// cancel discards the buffer on client-initiated disconnect.
func (a *accumulator) cancel() {
	if a.state == accReceiving {
		a.state = accCancelled
		a.chunks = nil
	}
}

// fail discards the buffer on a transport or limit error.
func (a *accumulator) fail() {
	if a.state == accReceiving {
		a.state = accFailed
		a.chunks = nil
	}
}

// parseByteCount reads a decimal byte counter that travels as a string on the
// wire. Malformed or negative values collapse to 0 rather than erroring the
// stream.
func parseByteCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseCounter is parseByteCount for unsigned gauge fields.
func parseCounter(s string) uint64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
