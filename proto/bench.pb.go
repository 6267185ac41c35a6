// source: bench.proto
//
// This file is hand-authored, not protoc-generated (no .pb.go precedent
// exists in the retrieval pack to generate from — see DESIGN.md). The
// struct layout and field tags follow protoc-gen-go's output exactly, but
// rather than hand-crafting the raw FileDescriptorProto bytes a real
// generator embeds, ProtoReflect is implemented by bridging through
// protoadapt: google.golang.org/protobuf's legacy-message path derives a
// message descriptor from the same struct tags at runtime, which is the
// same mechanism that keeps pre-v2 protoc-gen-go output (plain
// Reset/String/ProtoMessage, no ProtoReflect) working against the modern
// proto.Message interface today.
package proto

import (
	fmt "fmt"
	math "math"

	proto "github.com/golang/protobuf/proto"
	protoadapt "google.golang.org/protobuf/protoadapt"
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
)

// Reference imports to suppress errors if they are not otherwise used.
var _ = proto.Marshal
var _ = fmt.Errorf
var _ = math.Inf

type ProcessRequest struct {
	RequestId      string `protobuf:"bytes,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	ClientSendTime int64  `protobuf:"varint,2,opt,name=client_send_time,json=clientSendTime,proto3" json:"client_send_time,omitempty"`
}

func (m *ProcessRequest) Reset()         { *m = ProcessRequest{} }
func (m *ProcessRequest) String() string { return proto.CompactTextString(m) }
func (*ProcessRequest) ProtoMessage()    {}

// processRequestLegacy mirrors ProcessRequest but deliberately omits
// ProtoReflect, so protoadapt.MessageV2Of takes the legacy struct-tag
// bridging path instead of seeing a type that already looks like a v2
// message (which would just hand the same value back, and calling
// ProtoReflect on that would recurse into itself forever).
type processRequestLegacy ProcessRequest

func (m *processRequestLegacy) Reset()         { *m = processRequestLegacy{} }
func (m *processRequestLegacy) String() string { return proto.CompactTextString((*ProcessRequest)(m)) }
func (*processRequestLegacy) ProtoMessage()    {}

// ProtoReflect satisfies google.golang.org/protobuf/proto.Message, which
// grpc's default codec requires of every request/response type.
func (m *ProcessRequest) ProtoReflect() protoreflect.Message {
	return protoadapt.MessageV2Of((*processRequestLegacy)(m)).ProtoReflect()
}

func (m *ProcessRequest) GetRequestId() string {
	if m != nil {
		return m.RequestId
	}
	return ""
}

func (m *ProcessRequest) GetClientSendTime() int64 {
	if m != nil {
		return m.ClientSendTime
	}
	return 0
}

// ServerTimeline carries the four monotonic ticks (internal/workitem.Timeline)
// the server observed while handling one request: arrival, the moment the
// work item entered the queue, the moment the single worker dequeued it,
// and completion. All four are nanoseconds since the server process
// started (internal/workitem.NowTicks), never wall-clock time.
type ServerTimeline struct {
	ArrivalTime  int64 `protobuf:"varint,1,opt,name=arrival_time,json=arrivalTime,proto3" json:"arrival_time,omitempty"`
	EnqueueTime  int64 `protobuf:"varint,2,opt,name=enqueue_time,json=enqueueTime,proto3" json:"enqueue_time,omitempty"`
	DequeueTime  int64 `protobuf:"varint,3,opt,name=dequeue_time,json=dequeueTime,proto3" json:"dequeue_time,omitempty"`
	CompleteTime int64 `protobuf:"varint,4,opt,name=complete_time,json=completeTime,proto3" json:"complete_time,omitempty"`
}

func (m *ServerTimeline) Reset()         { *m = ServerTimeline{} }
func (m *ServerTimeline) String() string { return proto.CompactTextString(m) }
func (*ServerTimeline) ProtoMessage()    {}

type serverTimelineLegacy ServerTimeline

func (m *serverTimelineLegacy) Reset()         { *m = serverTimelineLegacy{} }
func (m *serverTimelineLegacy) String() string { return proto.CompactTextString((*ServerTimeline)(m)) }
func (*serverTimelineLegacy) ProtoMessage()    {}

func (m *ServerTimeline) ProtoReflect() protoreflect.Message {
	return protoadapt.MessageV2Of((*serverTimelineLegacy)(m)).ProtoReflect()
}

func (m *ServerTimeline) GetArrivalTime() int64 {
	if m != nil {
		return m.ArrivalTime
	}
	return 0
}

func (m *ServerTimeline) GetEnqueueTime() int64 {
	if m != nil {
		return m.EnqueueTime
	}
	return 0
}

func (m *ServerTimeline) GetDequeueTime() int64 {
	if m != nil {
		return m.DequeueTime
	}
	return 0
}

func (m *ServerTimeline) GetCompleteTime() int64 {
	if m != nil {
		return m.CompleteTime
	}
	return 0
}

type ProcessResponse struct {
	RequestId           string          `protobuf:"bytes,1,opt,name=request_id,json=requestId,proto3" json:"request_id,omitempty"`
	Success             bool            `protobuf:"varint,2,opt,name=success,proto3" json:"success,omitempty"`
	QueueDepthAtEnqueue int32           `protobuf:"varint,3,opt,name=queue_depth_at_enqueue,json=queueDepthAtEnqueue,proto3" json:"queue_depth_at_enqueue,omitempty"`
	Timeline            *ServerTimeline `protobuf:"bytes,4,opt,name=timeline,proto3" json:"timeline,omitempty"`
}

func (m *ProcessResponse) Reset()         { *m = ProcessResponse{} }
func (m *ProcessResponse) String() string { return proto.CompactTextString(m) }
func (*ProcessResponse) ProtoMessage()    {}

type processResponseLegacy ProcessResponse

func (m *processResponseLegacy) Reset()         { *m = processResponseLegacy{} }
func (m *processResponseLegacy) String() string { return proto.CompactTextString((*ProcessResponse)(m)) }
func (*processResponseLegacy) ProtoMessage()    {}

func (m *ProcessResponse) ProtoReflect() protoreflect.Message {
	return protoadapt.MessageV2Of((*processResponseLegacy)(m)).ProtoReflect()
}

func (m *ProcessResponse) GetRequestId() string {
	if m != nil {
		return m.RequestId
	}
	return ""
}

func (m *ProcessResponse) GetSuccess() bool {
	if m != nil {
		return m.Success
	}
	return false
}

func (m *ProcessResponse) GetQueueDepthAtEnqueue() int32 {
	if m != nil {
		return m.QueueDepthAtEnqueue
	}
	return 0
}

func (m *ProcessResponse) GetTimeline() *ServerTimeline {
	if m != nil {
		return m.Timeline
	}
	return nil
}

func init() {
	proto.RegisterType((*ProcessRequest)(nil), "qprobe.ProcessRequest")
	proto.RegisterType((*ServerTimeline)(nil), "qprobe.ServerTimeline")
	proto.RegisterType((*ProcessResponse)(nil), "qprobe.ProcessResponse")
}
