// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.11
// 	protoc        (unknown)
// source: proto/dataplane.proto

package proto

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type Metrics struct {
	state           protoimpl.MessageState `protogen:"open.v1"`
	AgentId         string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Timestamp       int64                  `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	CpuPercent      float64                `protobuf:"fixed64,3,opt,name=cpu_percent,json=cpuPercent,proto3" json:"cpu_percent,omitempty"`
	MemoryPercent   float64                `protobuf:"fixed64,4,opt,name=memory_percent,json=memoryPercent,proto3" json:"memory_percent,omitempty"`
	MemoryUsed      string                 `protobuf:"bytes,5,opt,name=memory_used,json=memoryUsed,proto3" json:"memory_used,omitempty"`
	MemoryAvailable string                 `protobuf:"bytes,6,opt,name=memory_available,json=memoryAvailable,proto3" json:"memory_available,omitempty"`
	DiskPercent     float64                `protobuf:"fixed64,7,opt,name=disk_percent,json=diskPercent,proto3" json:"disk_percent,omitempty"`
	DiskUsed        string                 `protobuf:"bytes,8,opt,name=disk_used,json=diskUsed,proto3" json:"disk_used,omitempty"`
	DiskTotal       string                 `protobuf:"bytes,9,opt,name=disk_total,json=diskTotal,proto3" json:"disk_total,omitempty"`
	NetworkRxBytes  string                 `protobuf:"bytes,10,opt,name=network_rx_bytes,json=networkRxBytes,proto3" json:"network_rx_bytes,omitempty"`
	NetworkTxBytes  string                 `protobuf:"bytes,11,opt,name=network_tx_bytes,json=networkTxBytes,proto3" json:"network_tx_bytes,omitempty"`
	ProcessCount    int32                  `protobuf:"varint,12,opt,name=process_count,json=processCount,proto3" json:"process_count,omitempty"`
	Uptime          string                 `protobuf:"bytes,13,opt,name=uptime,proto3" json:"uptime,omitempty"`
	unknownFields   protoimpl.UnknownFields
	sizeCache       protoimpl.SizeCache
}

func (x *Metrics) Reset() {
	*x = Metrics{}
	mi := &file_proto_dataplane_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *Metrics) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*Metrics) ProtoMessage() {}

func (x *Metrics) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use Metrics.ProtoReflect.Descriptor instead.
func (*Metrics) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{0}
}

func (x *Metrics) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *Metrics) GetTimestamp() int64 {
	if x != nil {
		return x.Timestamp
	}
	return 0
}

func (x *Metrics) GetCpuPercent() float64 {
	if x != nil {
		return x.CpuPercent
	}
	return 0
}

func (x *Metrics) GetMemoryPercent() float64 {
	if x != nil {
		return x.MemoryPercent
	}
	return 0
}

func (x *Metrics) GetMemoryUsed() string {
	if x != nil {
		return x.MemoryUsed
	}
	return ""
}

func (x *Metrics) GetMemoryAvailable() string {
	if x != nil {
		return x.MemoryAvailable
	}
	return ""
}

func (x *Metrics) GetDiskPercent() float64 {
	if x != nil {
		return x.DiskPercent
	}
	return 0
}

func (x *Metrics) GetDiskUsed() string {
	if x != nil {
		return x.DiskUsed
	}
	return ""
}

func (x *Metrics) GetDiskTotal() string {
	if x != nil {
		return x.DiskTotal
	}
	return ""
}

func (x *Metrics) GetNetworkRxBytes() string {
	if x != nil {
		return x.NetworkRxBytes
	}
	return ""
}

func (x *Metrics) GetNetworkTxBytes() string {
	if x != nil {
		return x.NetworkTxBytes
	}
	return ""
}

func (x *Metrics) GetProcessCount() int32 {
	if x != nil {
		return x.ProcessCount
	}
	return 0
}

func (x *Metrics) GetUptime() string {
	if x != nil {
		return x.Uptime
	}
	return ""
}

type SystemInfo struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Hostname      string                 `protobuf:"bytes,1,opt,name=hostname,proto3" json:"hostname,omitempty"`
	Os            string                 `protobuf:"bytes,2,opt,name=os,proto3" json:"os,omitempty"`
	OsVersion     string                 `protobuf:"bytes,3,opt,name=os_version,json=osVersion,proto3" json:"os_version,omitempty"`
	Platform      string                 `protobuf:"bytes,4,opt,name=platform,proto3" json:"platform,omitempty"`
	Architecture  string                 `protobuf:"bytes,5,opt,name=architecture,proto3" json:"architecture,omitempty"`
	CpuModel      string                 `protobuf:"bytes,6,opt,name=cpu_model,json=cpuModel,proto3" json:"cpu_model,omitempty"`
	CpuCores      int32                  `protobuf:"varint,7,opt,name=cpu_cores,json=cpuCores,proto3" json:"cpu_cores,omitempty"`
	CpuThreads    int32                  `protobuf:"varint,8,opt,name=cpu_threads,json=cpuThreads,proto3" json:"cpu_threads,omitempty"`
	CpuSpeed      float64                `protobuf:"fixed64,9,opt,name=cpu_speed,json=cpuSpeed,proto3" json:"cpu_speed,omitempty"`
	TotalMemory   string                 `protobuf:"bytes,10,opt,name=total_memory,json=totalMemory,proto3" json:"total_memory,omitempty"`
	SerialNumber  string                 `protobuf:"bytes,11,opt,name=serial_number,json=serialNumber,proto3" json:"serial_number,omitempty"`
	Manufacturer  string                 `protobuf:"bytes,12,opt,name=manufacturer,proto3" json:"manufacturer,omitempty"`
	Model         string                 `protobuf:"bytes,13,opt,name=model,proto3" json:"model,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SystemInfo) Reset() {
	*x = SystemInfo{}
	mi := &file_proto_dataplane_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SystemInfo) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SystemInfo) ProtoMessage() {}

func (x *SystemInfo) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SystemInfo.ProtoReflect.Descriptor instead.
func (*SystemInfo) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{1}
}

func (x *SystemInfo) GetHostname() string {
	if x != nil {
		return x.Hostname
	}
	return ""
}

func (x *SystemInfo) GetOs() string {
	if x != nil {
		return x.Os
	}
	return ""
}

func (x *SystemInfo) GetOsVersion() string {
	if x != nil {
		return x.OsVersion
	}
	return ""
}

func (x *SystemInfo) GetPlatform() string {
	if x != nil {
		return x.Platform
	}
	return ""
}

func (x *SystemInfo) GetArchitecture() string {
	if x != nil {
		return x.Architecture
	}
	return ""
}

func (x *SystemInfo) GetCpuModel() string {
	if x != nil {
		return x.CpuModel
	}
	return ""
}

func (x *SystemInfo) GetCpuCores() int32 {
	if x != nil {
		return x.CpuCores
	}
	return 0
}

func (x *SystemInfo) GetCpuThreads() int32 {
	if x != nil {
		return x.CpuThreads
	}
	return 0
}

func (x *SystemInfo) GetCpuSpeed() float64 {
	if x != nil {
		return x.CpuSpeed
	}
	return 0
}

func (x *SystemInfo) GetTotalMemory() string {
	if x != nil {
		return x.TotalMemory
	}
	return ""
}

func (x *SystemInfo) GetSerialNumber() string {
	if x != nil {
		return x.SerialNumber
	}
	return ""
}

func (x *SystemInfo) GetManufacturer() string {
	if x != nil {
		return x.Manufacturer
	}
	return ""
}

func (x *SystemInfo) GetModel() string {
	if x != nil {
		return x.Model
	}
	return ""
}

type InstalledSoftware struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Name          string                 `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Version       string                 `protobuf:"bytes,2,opt,name=version,proto3" json:"version,omitempty"`
	Publisher     string                 `protobuf:"bytes,3,opt,name=publisher,proto3" json:"publisher,omitempty"`
	InstallDate   string                 `protobuf:"bytes,4,opt,name=install_date,json=installDate,proto3" json:"install_date,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *InstalledSoftware) Reset() {
	*x = InstalledSoftware{}
	mi := &file_proto_dataplane_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *InstalledSoftware) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*InstalledSoftware) ProtoMessage() {}

func (x *InstalledSoftware) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use InstalledSoftware.ProtoReflect.Descriptor instead.
func (*InstalledSoftware) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{2}
}

func (x *InstalledSoftware) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *InstalledSoftware) GetVersion() string {
	if x != nil {
		return x.Version
	}
	return ""
}

func (x *InstalledSoftware) GetPublisher() string {
	if x != nil {
		return x.Publisher
	}
	return ""
}

func (x *InstalledSoftware) GetInstallDate() string {
	if x != nil {
		return x.InstallDate
	}
	return ""
}

type InventoryData struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Timestamp     int64                  `protobuf:"varint,2,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	SystemInfo    *SystemInfo            `protobuf:"bytes,3,opt,name=system_info,json=systemInfo,proto3" json:"system_info,omitempty"`
	Software      []*InstalledSoftware   `protobuf:"bytes,4,rep,name=software,proto3" json:"software,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *InventoryData) Reset() {
	*x = InventoryData{}
	mi := &file_proto_dataplane_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *InventoryData) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*InventoryData) ProtoMessage() {}

func (x *InventoryData) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use InventoryData.ProtoReflect.Descriptor instead.
func (*InventoryData) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{3}
}

func (x *InventoryData) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *InventoryData) GetTimestamp() int64 {
	if x != nil {
		return x.Timestamp
	}
	return 0
}

func (x *InventoryData) GetSystemInfo() *SystemInfo {
	if x != nil {
		return x.SystemInfo
	}
	return nil
}

func (x *InventoryData) GetSoftware() []*InstalledSoftware {
	if x != nil {
		return x.Software
	}
	return nil
}

type LogEntry struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Timestamp     int64                  `protobuf:"varint,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Level         string                 `protobuf:"bytes,2,opt,name=level,proto3" json:"level,omitempty"`
	Source        string                 `protobuf:"bytes,3,opt,name=source,proto3" json:"source,omitempty"`
	Message       string                 `protobuf:"bytes,4,opt,name=message,proto3" json:"message,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LogEntry) Reset() {
	*x = LogEntry{}
	mi := &file_proto_dataplane_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LogEntry) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LogEntry) ProtoMessage() {}

func (x *LogEntry) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LogEntry.ProtoReflect.Descriptor instead.
func (*LogEntry) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{4}
}

func (x *LogEntry) GetTimestamp() int64 {
	if x != nil {
		return x.Timestamp
	}
	return 0
}

func (x *LogEntry) GetLevel() string {
	if x != nil {
		return x.Level
	}
	return ""
}

func (x *LogEntry) GetSource() string {
	if x != nil {
		return x.Source
	}
	return ""
}

func (x *LogEntry) GetMessage() string {
	if x != nil {
		return x.Message
	}
	return ""
}

type LogBatch struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Entries       []*LogEntry            `protobuf:"bytes,2,rep,name=entries,proto3" json:"entries,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *LogBatch) Reset() {
	*x = LogBatch{}
	mi := &file_proto_dataplane_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *LogBatch) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*LogBatch) ProtoMessage() {}

func (x *LogBatch) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use LogBatch.ProtoReflect.Descriptor instead.
func (*LogBatch) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{5}
}

func (x *LogBatch) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *LogBatch) GetEntries() []*LogEntry {
	if x != nil {
		return x.Entries
	}
	return nil
}

type FileChunk struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	RequestId     string                 `protobuf:"bytes,2,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	FilePath      string                 `protobuf:"bytes,3,opt,name=file_path,json=filePath,proto3" json:"file_path,omitempty"`
	TotalSize     string                 `protobuf:"bytes,4,opt,name=total_size,json=totalSize,proto3" json:"total_size,omitempty"`
	Data          []byte                 `protobuf:"bytes,5,opt,name=data,proto3" json:"data,omitempty"`
	IsLast        bool                   `protobuf:"varint,6,opt,name=is_last,json=isLast,proto3" json:"is_last,omitempty"`
	ChunkIndex    int32                  `protobuf:"varint,7,opt,name=chunk_index,json=chunkIndex,proto3" json:"chunk_index,omitempty"`
	TotalChunks   int32                  `protobuf:"varint,8,opt,name=total_chunks,json=totalChunks,proto3" json:"total_chunks,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *FileChunk) Reset() {
	*x = FileChunk{}
	mi := &file_proto_dataplane_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *FileChunk) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*FileChunk) ProtoMessage() {}

func (x *FileChunk) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use FileChunk.ProtoReflect.Descriptor instead.
func (*FileChunk) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{6}
}

func (x *FileChunk) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *FileChunk) GetRequestId() string {
	if x != nil {
		return x.RequestId
	}
	return ""
}

func (x *FileChunk) GetFilePath() string {
	if x != nil {
		return x.FilePath
	}
	return ""
}

func (x *FileChunk) GetTotalSize() string {
	if x != nil {
		return x.TotalSize
	}
	return ""
}

func (x *FileChunk) GetData() []byte {
	if x != nil {
		return x.Data
	}
	return nil
}

func (x *FileChunk) GetIsLast() bool {
	if x != nil {
		return x.IsLast
	}
	return false
}

func (x *FileChunk) GetChunkIndex() int32 {
	if x != nil {
		return x.ChunkIndex
	}
	return 0
}

func (x *FileChunk) GetTotalChunks() int32 {
	if x != nil {
		return x.TotalChunks
	}
	return 0
}

type BulkDataChunk struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	RequestId     string                 `protobuf:"bytes,2,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	DataType      string                 `protobuf:"bytes,3,opt,name=data_type,json=dataType,proto3" json:"data_type,omitempty"`
	TotalSize     string                 `protobuf:"bytes,4,opt,name=total_size,json=totalSize,proto3" json:"total_size,omitempty"`
	Data          []byte                 `protobuf:"bytes,5,opt,name=data,proto3" json:"data,omitempty"`
	IsLast        bool                   `protobuf:"varint,6,opt,name=is_last,json=isLast,proto3" json:"is_last,omitempty"`
	ChunkIndex    int32                  `protobuf:"varint,7,opt,name=chunk_index,json=chunkIndex,proto3" json:"chunk_index,omitempty"`
	TotalChunks   int32                  `protobuf:"varint,8,opt,name=total_chunks,json=totalChunks,proto3" json:"total_chunks,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *BulkDataChunk) Reset() {
	*x = BulkDataChunk{}
	mi := &file_proto_dataplane_proto_msgTypes[7]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *BulkDataChunk) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*BulkDataChunk) ProtoMessage() {}

func (x *BulkDataChunk) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[7]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use BulkDataChunk.ProtoReflect.Descriptor instead.
func (*BulkDataChunk) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{7}
}

func (x *BulkDataChunk) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *BulkDataChunk) GetRequestId() string {
	if x != nil {
		return x.RequestId
	}
	return ""
}

func (x *BulkDataChunk) GetDataType() string {
	if x != nil {
		return x.DataType
	}
	return ""
}

func (x *BulkDataChunk) GetTotalSize() string {
	if x != nil {
		return x.TotalSize
	}
	return ""
}

func (x *BulkDataChunk) GetData() []byte {
	if x != nil {
		return x.Data
	}
	return nil
}

func (x *BulkDataChunk) GetIsLast() bool {
	if x != nil {
		return x.IsLast
	}
	return false
}

func (x *BulkDataChunk) GetChunkIndex() int32 {
	if x != nil {
		return x.ChunkIndex
	}
	return 0
}

func (x *BulkDataChunk) GetTotalChunks() int32 {
	if x != nil {
		return x.TotalChunks
	}
	return 0
}

type UploadResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Success       bool                   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Error         string                 `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *UploadResponse) Reset() {
	*x = UploadResponse{}
	mi := &file_proto_dataplane_proto_msgTypes[8]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *UploadResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*UploadResponse) ProtoMessage() {}

func (x *UploadResponse) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[8]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use UploadResponse.ProtoReflect.Descriptor instead.
func (*UploadResponse) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{8}
}

func (x *UploadResponse) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *UploadResponse) GetError() string {
	if x != nil {
		return x.Error
	}
	return ""
}

type StreamSummary struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Success       bool                   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Error         string                 `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
	ReceivedCount int32                  `protobuf:"varint,3,opt,name=received_count,json=receivedCount,proto3" json:"received_count,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *StreamSummary) Reset() {
	*x = StreamSummary{}
	mi := &file_proto_dataplane_proto_msgTypes[9]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *StreamSummary) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*StreamSummary) ProtoMessage() {}

func (x *StreamSummary) ProtoReflect() protoreflect.Message {
	mi := &file_proto_dataplane_proto_msgTypes[9]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use StreamSummary.ProtoReflect.Descriptor instead.
func (*StreamSummary) Descriptor() ([]byte, []int) {
	return file_proto_dataplane_proto_rawDescGZIP(), []int{9}
}

func (x *StreamSummary) GetSuccess() bool {
	if x != nil {
		return x.Success
	}
	return false
}

func (x *StreamSummary) GetError() string {
	if x != nil {
		return x.Error
	}
	return ""
}

func (x *StreamSummary) GetReceivedCount() int32 {
	if x != nil {
		return x.ReceivedCount
	}
	return 0
}

var File_proto_dataplane_proto protoreflect.FileDescriptor

const file_proto_dataplane_proto_rawDesc = "" +
	"\n" +
	"\x15proto/dataplane.proto\x12\tdataplane\"\xc6\x03\n" +
	"\aMetrics\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1c\n" +
	"\ttimestamp\x18\x02 \x01(\x03R\ttimestamp\x12\x1f\n" +
	"\vcpu_percent\x18\x03 \x01(\x01R\n" +
	"cpuPercent\x12%\n" +
	"\x0ememory_percent\x18\x04 \x01(\x01R\rmemoryPercent\x12\x1f\n" +
	"\vmemory_used\x18\x05 \x01(\tR\n" +
	"memoryUsed\x12)\n" +
	"\x10memory_available\x18\x06 \x01(\tR\x0fmemoryAvailable\x12!\n" +
	"\fdisk_percent\x18\a \x01(\x01R\vdiskPercent\x12\x1b\n" +
	"\tdisk_used\x18\b \x01(\tR\bdiskUsed\x12\x1d\n" +
	"\n" +
	"disk_total\x18\t \x01(\tR\tdiskTotal\x12(\n" +
	"\x10network_rx_bytes\x18\n" +
	" \x01(\tR\x0enetworkRxBytes\x12(\n" +
	"\x10network_tx_bytes\x18\v \x01(\tR\x0enetworkTxBytes\x12#\n" +
	"\rprocess_count\x18\f \x01(\x05R\fprocessCount\x12\x16\n" +
	"\x06uptime\x18\r \x01(\tR\x06uptime\"\x91\x03\n" +
	"\n" +
	"SystemInfo\x12\x1a\n" +
	"\bhostname\x18\x01 \x01(\tR\bhostname\x12\x0e\n" +
	"\x02os\x18\x02 \x01(\tR\x02os\x12\x1d\n" +
	"\n" +
	"os_version\x18\x03 \x01(\tR\tosVersion\x12\x1a\n" +
	"\bplatform\x18\x04 \x01(\tR\bplatform\x12\"\n" +
	"\farchitecture\x18\x05 \x01(\tR\farchitecture\x12\x1b\n" +
	"\tcpu_model\x18\x06 \x01(\tR\bcpuModel\x12\x1b\n" +
	"\tcpu_cores\x18\a \x01(\x05R\bcpuCores\x12\x1f\n" +
	"\vcpu_threads\x18\b \x01(\x05R\n" +
	"cpuThreads\x12\x1b\n" +
	"\tcpu_speed\x18\t \x01(\x01R\bcpuSpeed\x12!\n" +
	"\ftotal_memory\x18\n" +
	" \x01(\tR\vtotalMemory\x12#\n" +
	"\rserial_number\x18\v \x01(\tR\fserialNumber\x12\"\n" +
	"\fmanufacturer\x18\f \x01(\tR\fmanufacturer\x12\x14\n" +
	"\x05model\x18\r \x01(\tR\x05model\"\x82\x01\n" +
	"\x11InstalledSoftware\x12\x12\n" +
	"\x04name\x18\x01 \x01(\tR\x04name\x12\x18\n" +
	"\aversion\x18\x02 \x01(\tR\aversion\x12\x1c\n" +
	"\tpublisher\x18\x03 \x01(\tR\tpublisher\x12!\n" +
	"\finstall_date\x18\x04 \x01(\tR\vinstallDate\"\xba\x01\n" +
	"\rInventoryData\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1c\n" +
	"\ttimestamp\x18\x02 \x01(\x03R\ttimestamp\x126\n" +
	"\vsystem_info\x18\x03 \x01(\v2\x15.dataplane.SystemInfoR\n" +
	"systemInfo\x128\n" +
	"\bsoftware\x18\x04 \x03(\v2\x1c.dataplane.InstalledSoftwareR\bsoftware\"p\n" +
	"\bLogEntry\x12\x1c\n" +
	"\ttimestamp\x18\x01 \x01(\x03R\ttimestamp\x12\x14\n" +
	"\x05level\x18\x02 \x01(\tR\x05level\x12\x16\n" +
	"\x06source\x18\x03 \x01(\tR\x06source\x12\x18\n" +
	"\amessage\x18\x04 \x01(\tR\amessage\"T\n" +
	"\bLogBatch\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12-\n" +
	"\aentries\x18\x02 \x03(\v2\x13.dataplane.LogEntryR\aentries\"\xf2\x01\n" +
	"\tFileChunk\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1d\n" +
	"\n" +
	"request_id\x18\x02 \x01(\tR\trequestId\x12\x1b\n" +
	"\tfile_path\x18\x03 \x01(\tR\bfilePath\x12\x1d\n" +
	"\n" +
	"total_size\x18\x04 \x01(\tR\ttotalSize\x12\x12\n" +
	"\x04data\x18\x05 \x01(\fR\x04data\x12\x17\n" +
	"\ais_last\x18\x06 \x01(\bR\x06isLast\x12\x1f\n" +
	"\vchunk_index\x18\a \x01(\x05R\n" +
	"chunkIndex\x12!\n" +
	"\ftotal_chunks\x18\b \x01(\x05R\vtotalChunks\"\xf6\x01\n" +
	"\rBulkDataChunk\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1d\n" +
	"\n" +
	"request_id\x18\x02 \x01(\tR\trequestId\x12\x1b\n" +
	"\tdata_type\x18\x03 \x01(\tR\bdataType\x12\x1d\n" +
	"\n" +
	"total_size\x18\x04 \x01(\tR\ttotalSize\x12\x12\n" +
	"\x04data\x18\x05 \x01(\fR\x04data\x12\x17\n" +
	"\ais_last\x18\x06 \x01(\bR\x06isLast\x12\x1f\n" +
	"\vchunk_index\x18\a \x01(\x05R\n" +
	"chunkIndex\x12!\n" +
	"\ftotal_chunks\x18\b \x01(\x05R\vtotalChunks\"@\n" +
	"\x0eUploadResponse\x12\x18\n" +
	"\asuccess\x18\x01 \x01(\bR\asuccess\x12\x14\n" +
	"\x05error\x18\x02 \x01(\tR\x05error\"f\n" +
	"\rStreamSummary\x12\x18\n" +
	"\asuccess\x18\x01 \x01(\bR\asuccess\x12\x14\n" +
	"\x05error\x18\x02 \x01(\tR\x05error\x12%\n" +
	"\x0ereceived_count\x18\x03 \x01(\x05R\rreceivedCount2\xe9\x02\n" +
	"\x10DataPlaneService\x12?\n" +
	"\rStreamMetrics\x12\x12.dataplane.Metrics\x1a\x18.dataplane.StreamSummary(\x01\x12F\n" +
	"\x0fUploadInventory\x12\x18.dataplane.InventoryData\x1a\x19.dataplane.UploadResponse\x12=\n" +
	"\n" +
	"StreamLogs\x12\x13.dataplane.LogBatch\x1a\x18.dataplane.StreamSummary(\x01\x12E\n" +
	"\x11StreamFileContent\x12\x14.dataplane.FileChunk\x1a\x18.dataplane.StreamSummary(\x01\x12F\n" +
	"\x0eUploadBulkData\x12\x18.dataplane.BulkDataChunk\x1a\x18.dataplane.StreamSummary(\x01B)Z'github.com/wardenhq/warden-server/protob\x06proto3"

var (
	file_proto_dataplane_proto_rawDescOnce sync.Once
	file_proto_dataplane_proto_rawDescData []byte
)

func file_proto_dataplane_proto_rawDescGZIP() []byte {
	file_proto_dataplane_proto_rawDescOnce.Do(func() {
		file_proto_dataplane_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_proto_dataplane_proto_rawDesc), len(file_proto_dataplane_proto_rawDesc)))
	})
	return file_proto_dataplane_proto_rawDescData
}

var file_proto_dataplane_proto_msgTypes = make([]protoimpl.MessageInfo, 10)
var file_proto_dataplane_proto_goTypes = []any{
	(*Metrics)(nil),           // 0: dataplane.Metrics
	(*SystemInfo)(nil),        // 1: dataplane.SystemInfo
	(*InstalledSoftware)(nil), // 2: dataplane.InstalledSoftware
	(*InventoryData)(nil),     // 3: dataplane.InventoryData
	(*LogEntry)(nil),          // 4: dataplane.LogEntry
	(*LogBatch)(nil),          // 5: dataplane.LogBatch
	(*FileChunk)(nil),         // 6: dataplane.FileChunk
	(*BulkDataChunk)(nil),     // 7: dataplane.BulkDataChunk
	(*UploadResponse)(nil),    // 8: dataplane.UploadResponse
	(*StreamSummary)(nil),     // 9: dataplane.StreamSummary
}
var file_proto_dataplane_proto_depIdxs = []int32{
	1, // 0: dataplane.InventoryData.system_info:type_name -> dataplane.SystemInfo
	2, // 1: dataplane.InventoryData.software:type_name -> dataplane.InstalledSoftware
	4, // 2: dataplane.LogBatch.entries:type_name -> dataplane.LogEntry
	0, // 3: dataplane.DataPlaneService.StreamMetrics:input_type -> dataplane.Metrics
	3, // 4: dataplane.DataPlaneService.UploadInventory:input_type -> dataplane.InventoryData
	5, // 5: dataplane.DataPlaneService.StreamLogs:input_type -> dataplane.LogBatch
	6, // 6: dataplane.DataPlaneService.StreamFileContent:input_type -> dataplane.FileChunk
	7, // 7: dataplane.DataPlaneService.UploadBulkData:input_type -> dataplane.BulkDataChunk
	9, // 8: dataplane.DataPlaneService.StreamMetrics:output_type -> dataplane.StreamSummary
	8, // 9: dataplane.DataPlaneService.UploadInventory:output_type -> dataplane.UploadResponse
	9, // 10: dataplane.DataPlaneService.StreamLogs:output_type -> dataplane.StreamSummary
	9, // 11: dataplane.DataPlaneService.StreamFileContent:output_type -> dataplane.StreamSummary
	9, // 12: dataplane.DataPlaneService.UploadBulkData:output_type -> dataplane.StreamSummary
	8, // [8:13] is the sub-list for method output_type
	3, // [3:8] is the sub-list for method input_type
	3, // [3:3] is the sub-list for extension type_name
	3, // [3:3] is the sub-list for extension extendee
	0, // [0:3] is the sub-list for field type_name
}

func init() { file_proto_dataplane_proto_init() }
func file_proto_dataplane_proto_init() {
	if File_proto_dataplane_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_proto_dataplane_proto_rawDesc), len(file_proto_dataplane_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   10,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_proto_dataplane_proto_goTypes,
		DependencyIndexes: file_proto_dataplane_proto_depIdxs,
		MessageInfos:      file_proto_dataplane_proto_msgTypes,
	}.Build()
	File_proto_dataplane_proto = out.File
	file_proto_dataplane_proto_goTypes = nil
	file_proto_dataplane_proto_depIdxs = nil
}
