package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yola1107/arcade/pkg/codes"
)

type echoBody struct {
	GameID string `json:"gameId"`
}

func TestFrameRoundTrip(t *testing.T) {
	f, err := NewResponse(7, "game.command", &echoBody{GameID: "g1"}, nil)
	require.NoError(t, err)

	data, err := f.Marshal()
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, OpResponse, got.Op)
	assert.EqualValues(t, 7, got.Seq)
	assert.Equal(t, "game.command", got.Cmd)
	assert.EqualValues(t, 0, got.Code)

	rsp := &echoBody{}
	require.NoError(t, DecodeBody(got.Body, rsp))
	assert.Equal(t, "g1", rsp.GameID)
}

func TestNewResponseError(t *testing.T) {
	f, err := NewResponse(3, "game.command", nil, codes.ErrGameIDMismatch)
	require.NoError(t, err)

	// 错误只进帧头, 不带负载
	assert.Equal(t, codes.ErrGameIDMismatch.GetCode(), f.Code)
	assert.Equal(t, codes.ErrGameIDMismatch.GetReason(), f.Msg)
	assert.Empty(t, f.Body)
}

func TestNewPush(t *testing.T) {
	f, err := NewPush("area.changed", &echoBody{GameID: "g2"})
	require.NoError(t, err)
	assert.Equal(t, OpPush, f.Op)
	assert.Equal(t, "area.changed", f.Cmd)
	assert.EqualValues(t, 0, f.Seq)

	push := &echoBody{}
	require.NoError(t, DecodeBody(f.Body, push))
	assert.Equal(t, "g2", push.GameID)
}

func TestDecodeBodyEmpty(t *testing.T) {
	rsp := &echoBody{}
	require.NoError(t, DecodeBody(nil, rsp))
	assert.Empty(t, rsp.GameID)
}

func TestUnmarshalBad(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)
}
