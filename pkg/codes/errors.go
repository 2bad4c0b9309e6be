package codes

import (
	"github.com/yola1107/kratos/v2/errors"
)

const SUCCESS = 0

var (
	ErrFail            = errors.New(1, "FAIL", "failed")
	ErrSessionNotFound = errors.New(2, "SESSION_NOT_FOUND", "session not found")
	ErrPlayerNotFound  = errors.New(3, "PLAYER_NOT_FOUND", "player not found")
	ErrAreaNotFound    = errors.New(4, "AREA_NOT_FOUND", "area not found")
	ErrAreaFull        = errors.New(5, "AREA_FULL", "area is full")
	ErrNotEnoughArea   = errors.New(6, "NOT_ENOUGH_AREA", "not enough area")
	ErrEnterAreaFail   = errors.New(7, "ENTER_AREA_FAIL", "enter area fail")
	ErrKickByBroke     = errors.New(8, "KICK_BY_BROKE", "kick by broke")

	ErrInvalidCommand    = errors.New(20, "INVALID_COMMAND", "Invalid command")
	ErrGameNotInProgress = errors.New(21, "GAME_NOT_IN_PROGRESS", "Game is not in progress")
	ErrGameIDMismatch    = errors.New(22, "GAME_ID_MISSMATCH", "Game ID mismatch")
	ErrPlayerNotInGame   = errors.New(23, "PLAYER_NOT_IN_GAME", "Player is not in this game")
	ErrAlreadyInGame     = errors.New(24, "PLAYER_ALREADY_IN_GAME", "Player is already in this game")
	ErrGameFull          = errors.New(25, "GAME_FULL", "Game is full")
	ErrGameNotStartable  = errors.New(26, "GAME_NOT_STARTABLE", "Game is not startable")
	ErrGameNotJoinable   = errors.New(27, "GAME_NOT_JOINABLE", "Game is not joinable")
	ErrInvalidMove       = errors.New(28, "INVALID_MOVE", "Invalid move")
)

// Code 提取错误码, nil 返回 SUCCESS
func Code(err error) int32 {
	if err == nil {
		return SUCCESS
	}
	return errors.FromError(err).GetCode()
}

// Reason 提取错误原因字符串
func Reason(err error) string {
	if err == nil {
		return ""
	}
	return errors.FromError(err).GetReason()
}
