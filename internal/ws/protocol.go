package ws

import (
	"encoding/json"

	"github.com/yola1107/kratos/v2/errors"
)

// Op 帧类型
type Op string

const (
	OpRequest  Op = "req"
	OpResponse Op = "rsp"
	OpPush     Op = "push"
	OpPing     Op = "ping"
	OpPong     Op = "pong"
)

// Frame 统一的 JSON 帧结构. 请求/响应通过 Seq 配对,
// 推送无 Seq. Body 为各命令自己的 JSON 负载.
type Frame struct {
	Op   Op              `json:"op"`
	Seq  int32           `json:"seq,omitempty"`
	Cmd  string          `json:"cmd,omitempty"`
	Code int32           `json:"code,omitempty"`
	Msg  string          `json:"msg,omitempty"`
	Body json.RawMessage `json:"body,omitempty"`
}

func (f *Frame) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

func Unmarshal(data []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, err
	}
	return f, nil
}

// NewResponse 构造响应帧, err 转为错误码写入帧头
func NewResponse(seq int32, cmd string, body any, err error) (*Frame, error) {
	f := &Frame{Op: OpResponse, Seq: seq, Cmd: cmd}
	if err != nil {
		e := errors.FromError(err)
		f.Code = e.GetCode()
		f.Msg = e.GetReason()
		return f, nil
	}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		f.Body = raw
	}
	return f, nil
}

// NewPush 构造推送帧
func NewPush(cmd string, body any) (*Frame, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Frame{Op: OpPush, Cmd: cmd, Body: raw}, nil
}
