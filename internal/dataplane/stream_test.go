package dataplane

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/wardenhq/warden-server/internal/registry"
	"github.com/wardenhq/warden-server/proto"
)

// mockStream supplies the grpc.ServerStream plumbing shared by the
// per-RPC stream fakes below.
type mockStream struct {
	ctx     context.Context
	summary *proto.StreamSummary
}

func newMockStream() mockStream {
	return mockStream{ctx: context.Background()}
}

func (m *mockStream) SetHeader(metadata.MD) error  { return nil }
func (m *mockStream) SendHeader(metadata.MD) error { return nil }
func (m *mockStream) SetTrailer(metadata.MD)       {}
func (m *mockStream) Context() context.Context     { return m.ctx }
func (m *mockStream) SendMsg(any) error            { return nil }
func (m *mockStream) RecvMsg(any) error            { return nil }

func (m *mockStream) SendAndClose(s *proto.StreamSummary) error {
	m.summary = s
	return nil
}

// metricsStream replays a scripted message sequence, then the final error.
type metricsStream struct {
	mockStream
	msgs  []*proto.Metrics
	final error
}

func (m *metricsStream) Recv() (*proto.Metrics, error) {
	if len(m.msgs) == 0 {
		return nil, m.final
	}
	msg := m.msgs[0]
	m.msgs = m.msgs[1:]
	return msg, nil
}

type logStream struct {
	mockStream
	msgs  []*proto.LogBatch
	final error
}

func (m *logStream) Recv() (*proto.LogBatch, error) {
	if len(m.msgs) == 0 {
		return nil, m.final
	}
	msg := m.msgs[0]
	m.msgs = m.msgs[1:]
	return msg, nil
}

type fileStream struct {
	mockStream
	msgs  []*proto.FileChunk
	final error
}

func (m *fileStream) Recv() (*proto.FileChunk, error) {
	if len(m.msgs) == 0 {
		return nil, m.final
	}
	msg := m.msgs[0]
	m.msgs = m.msgs[1:]
	return msg, nil
}

func TestStreamMetricsLifecycle(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	reg := registry.New()
	notifier := &captureNotifier{}
	srv := NewServer(0, reg, fs, notifier, nil)

	stream := &metricsStream{
		mockStream: newMockStream(),
		msgs: []*proto.Metrics{
			{AgentId: "agent-1", Timestamp: 1700000000, CpuPercent: 10},
			{AgentId: "agent-1", Timestamp: 1700000005, CpuPercent: 20},
			{AgentId: "agent-1", Timestamp: 1700000010, CpuPercent: 30},
		},
		final: io.EOF,
	}

	require.NoError(t, srv.StreamMetrics(stream))

	require.NotNil(t, stream.summary)
	assert.True(t, stream.summary.Success)
	assert.Equal(t, int32(3), stream.summary.ReceivedCount)

	require.Len(t, fs.samples, 3)
	assert.Equal(t, 30.0, fs.samples[2].CPUPercent)

	// Connected flag written exactly twice: once true on first sight,
	// once false when the stream ends.
	assert.Equal(t, 2, fs.dataPlaneWrites)
	assert.False(t, fs.dataPlane[device.ID])
	_, registered := reg.Get("agent-1", registry.ChannelData)
	assert.False(t, registered)

	assert.Len(t, notifier.payloadsFor("metrics:updated"), 3)
}

func TestStreamMetricsCancelledIsCleanEnd(t *testing.T) {
	fs := newFakeStore()
	device := fs.addDevice("agent-1")
	reg := registry.New()
	srv := NewServer(0, reg, fs, &captureNotifier{}, nil)

	stream := &metricsStream{
		mockStream: newMockStream(),
		msgs:       []*proto.Metrics{{AgentId: "agent-1", Timestamp: 1700000000}},
		final:      status.Error(codes.Canceled, "client hung up"),
	}

	require.NoError(t, srv.StreamMetrics(stream))
	assert.Nil(t, stream.summary)

	assert.False(t, fs.dataPlane[device.ID])
	_, registered := reg.Get("agent-1", registry.ChannelData)
	assert.False(t, registered)
}

func TestStreamMetricsDropsUnknownAgent(t *testing.T) {
	fs := newFakeStore()
	srv, _ := newTestServer(fs)

	stream := &metricsStream{
		mockStream: newMockStream(),
		msgs:       []*proto.Metrics{{AgentId: "ghost"}, {AgentId: "ghost"}},
		final:      io.EOF,
	}

	require.NoError(t, srv.StreamMetrics(stream))
	require.NotNil(t, stream.summary)
	assert.Equal(t, int32(0), stream.summary.ReceivedCount)
	assert.Empty(t, fs.samples)
	assert.Equal(t, 0, fs.dataPlaneWrites)
}

func TestStreamLogsPersistsBatch(t *testing.T) {
	fs := newFakeStore()
	fs.addDevice("agent-1")
	srv, notifier := newTestServer(fs)

	stream := &logStream{
		mockStream: newMockStream(),
		msgs: []*proto.LogBatch{{
			AgentId: "agent-1",
			Entries: []*proto.LogEntry{
				{Timestamp: 1700000000, Level: "info", Source: "system", Message: "boot"},
				{Timestamp: 1700000001, Level: "warn", Source: "disk", Message: "almost full"},
			},
		}},
		final: io.EOF,
	}

	require.NoError(t, srv.StreamLogs(stream))
	require.NotNil(t, stream.summary)
	assert.True(t, stream.summary.Success)
	assert.Equal(t, int32(2), stream.summary.ReceivedCount)

	require.Len(t, fs.logEntries, 2)
	assert.Equal(t, "disk", fs.logEntries[1].Source)
	assert.True(t, notifier.published("logs:new"))
}

func TestStreamLogsStoreFailureDropsBatchNotStream(t *testing.T) {
	fs := newFakeStore()
	fs.addDevice("agent-1")
	fs.lookupErr = errors.New("connection refused")
	srv, _ := newTestServer(fs)

	stream := &logStream{
		mockStream: newMockStream(),
		msgs: []*proto.LogBatch{{
			AgentId: "agent-1",
			Entries: []*proto.LogEntry{{Level: "info", Source: "system", Message: "boot"}},
		}},
		final: io.EOF,
	}

	require.NoError(t, srv.StreamLogs(stream))
	require.NotNil(t, stream.summary)
	assert.Equal(t, int32(0), stream.summary.ReceivedCount)
	assert.Empty(t, fs.logEntries)
}

func TestStreamFileContentReassemblesAndNotifies(t *testing.T) {
	fs := newFakeStore()
	srv, notifier := newTestServer(fs)

	chunkA := bytes.Repeat([]byte{1}, 40)
	chunkB := bytes.Repeat([]byte{2}, 60)
	stream := &fileStream{
		mockStream: newMockStream(),
		msgs: []*proto.FileChunk{
			{AgentId: "agent-1", RequestId: "req-9", FilePath: "/etc/hosts", TotalSize: "100", Data: chunkA},
			{AgentId: "agent-1", RequestId: "req-9", FilePath: "/etc/hosts", TotalSize: "100", Data: chunkB, IsLast: true},
		},
		final: io.EOF,
	}

	require.NoError(t, srv.StreamFileContent(stream))
	require.NotNil(t, stream.summary)
	assert.True(t, stream.summary.Success)

	progress := notifier.payloadsFor("files:progress")
	require.Len(t, progress, 2)
	assert.Equal(t, 40, progress[0]["percentage"])
	assert.Equal(t, 100, progress[1]["percentage"])
	assert.Equal(t, "/etc/hosts", progress[0]["filePath"])

	complete := notifier.payloadsFor("files:complete")
	require.Len(t, complete, 1)
	assert.Equal(t, "req-9", complete[0]["requestId"])
	assert.Equal(t, 100, complete[0]["size"])

	decoded, err := base64.StdEncoding.DecodeString(complete[0]["data"].(string))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(append(append([]byte{}, chunkA...), chunkB...), decoded))
}

func TestStreamFileContentCancelledDiscardsTransfer(t *testing.T) {
	fs := newFakeStore()
	srv, notifier := newTestServer(fs)

	stream := &fileStream{
		mockStream: newMockStream(),
		msgs: []*proto.FileChunk{
			{AgentId: "agent-1", RequestId: "req-9", FilePath: "/var/log/syslog", TotalSize: "1000", Data: make([]byte, 100)},
		},
		final: status.Error(codes.Canceled, "client hung up"),
	}

	require.NoError(t, srv.StreamFileContent(stream))
	assert.Nil(t, stream.summary)
	assert.Empty(t, notifier.payloadsFor("files:complete"))
}

func TestStreamFileContentRejectsChunkAfterLast(t *testing.T) {
	fs := newFakeStore()
	srv, _ := newTestServer(fs)

	stream := &fileStream{
		mockStream: newMockStream(),
		msgs: []*proto.FileChunk{
			{AgentId: "agent-1", RequestId: "req-9", FilePath: "/tmp/x", TotalSize: "5", Data: []byte("hello"), IsLast: true},
			{AgentId: "agent-1", RequestId: "req-9", FilePath: "/tmp/x", TotalSize: "5", Data: []byte("!")},
		},
		final: io.EOF,
	}

	err := srv.StreamFileContent(stream)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
