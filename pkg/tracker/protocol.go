package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// 帧类型
const (
	FramePointer = "pointer" // 手部位置
	FrameStatus  = "status"  // 追踪端状态（摄像头、模型加载等）
)

// Frame 追踪端发来的一帧
//
// 文本消息按 JSON 解码，二进制消息按 msgpack 解码，字段名相同。
// 坐标已由追踪端完成镜像和校准。
type Frame struct {
	Type string `json:"type" msgpack:"type"`

	// pointer 帧
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	Normalized bool    `json:"normalized" msgpack:"normalized"` // 为 true 时坐标在 [0,1]，按画布尺寸换算
	Lost       bool    `json:"lost" msgpack:"lost"`             // 本帧未检测到手

	// status 帧
	Ready   bool   `json:"ready" msgpack:"ready"`
	Message string `json:"message" msgpack:"message"`
}

// DecodeFrame 按 WebSocket 消息类型解码一帧
func DecodeFrame(messageType int, data []byte) (Frame, error) {
	var f Frame
	switch messageType {
	case websocket.TextMessage:
		if err := json.Unmarshal(data, &f); err != nil {
			return Frame{}, fmt.Errorf("failed to decode json frame: %w", err)
		}
	case websocket.BinaryMessage:
		if err := msgpack.Unmarshal(data, &f); err != nil {
			return Frame{}, fmt.Errorf("failed to decode msgpack frame: %w", err)
		}
	default:
		return Frame{}, fmt.Errorf("unsupported message type: %d", messageType)
	}
	if f.Type == "" {
		f.Type = FramePointer
	}
	return f, nil
}

// EncodeFrame 编码为 msgpack（追踪端模拟器与测试使用）
func EncodeFrame(f Frame) ([]byte, error) {
	return msgpack.Marshal(&f)
}
