package dataplane

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorReassemblesChunksInOrder(t *testing.T) {
	const chunkSize = 1_000_000
	const chunkCount = 10
	total := chunkSize * chunkCount

	acc := newAccumulator(fmt.Sprintf("%d", total))

	var want bytes.Buffer
	for i := 0; i < chunkCount; i++ {
		chunk := bytes.Repeat([]byte{byte(i + 1)}, chunkSize)
		want.Write(chunk)

		require.NoError(t, acc.append(chunk))

		_, _, percentage := acc.progress()
		assert.Equal(t, (i+1)*10, percentage)
	}

	got := acc.assemble()
	require.Len(t, got, total)
	assert.True(t, bytes.Equal(want.Bytes(), got))
	assert.Equal(t, accCompleted, acc.state)
}

func TestAccumulatorProgressWithoutDeclaredTotal(t *testing.T) {
	for _, totalSize := range []string{"", "0", "not-a-number", "-5"} {
		acc := newAccumulator(totalSize)
		require.NoError(t, acc.append([]byte("hello")))

		received, total, percentage := acc.progress()
		assert.Equal(t, int64(5), received, "totalSize=%q", totalSize)
		assert.Equal(t, int64(0), total, "totalSize=%q", totalSize)
		assert.Equal(t, 0, percentage, "totalSize=%q", totalSize)
	}
}

func TestAccumulatorRejectsOverrunOfDeclaredSize(t *testing.T) {
	acc := newAccumulator("10")
	require.NoError(t, acc.append(make([]byte, 10)))

	err := acc.append([]byte{1})
	require.ErrorIs(t, err, errDeclaredExceeded)
	assert.Equal(t, accFailed, acc.state)
	assert.Nil(t, acc.assemble())
}

func TestAccumulatorCancelDiscardsPartialData(t *testing.T) {
	acc := newAccumulator("100")
	require.NoError(t, acc.append(make([]byte, 50)))

	acc.cancel()
	assert.Equal(t, accCancelled, acc.state)
	assert.Nil(t, acc.assemble())
	assert.ErrorIs(t, acc.append([]byte{1}), errAccumulatorDone)
}

func TestAccumulatorCopiesChunkData(t *testing.T) {
	acc := newAccumulator("")
	chunk := []byte{1, 2, 3}
	require.NoError(t, acc.append(chunk))

	// gRPC reuses receive buffers; mutating the caller's slice must not
	// corrupt the accumulated data.
	chunk[0] = 99

	got := acc.assemble()
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestParseByteCount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"12345", 12345},
		{"-1", 0},
		{"garbage", 0},
		{"9223372036854775807", 9223372036854775807},
		{"99999999999999999999999999", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseByteCount(tt.in), "input %q", tt.in)
	}
}

func TestParseCounter(t *testing.T) {
	assert.Equal(t, uint64(18446744073709551615), parseCounter("18446744073709551615"))
	assert.Equal(t, uint64(0), parseCounter("-1"))
	assert.Equal(t, uint64(0), parseCounter("1.5"))
	assert.Equal(t, uint64(0), parseCounter(""))
}
