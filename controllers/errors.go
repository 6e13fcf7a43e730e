package controllers

import (
	"errors"
	"fmt"
)

var (
	// 探索器・解決器が経路を見つけられなかった場合
	ErrPathNotFound = errors.New("path not found")
)

type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request"
	KindUnknownStop    ErrorKind = "unknown_stop"
	KindUnknownRoute   ErrorKind = "unknown_route"
	KindNoPathFound    ErrorKind = "no_path_found"
	KindDataIntegrity  ErrorKind = "data_integrity"
)

// 乗換案内の失敗種別付きエラー
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// エラーの種別を返す (分類できない場合は空文字)
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrPathNotFound) {
		return KindNoPathFound
	}
	return ""
}
