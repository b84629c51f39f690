package errors

import "errors"

// 错误类别：业务错误通过 %w 包装其中之一，Handler 按类别映射 HTTP 状态码
var (
	// ErrNotFound 目标不存在（如按下标删除越界）
	ErrNotFound = errors.New("目标不存在")
	// ErrValidation 请求参数不合法
	ErrValidation = errors.New("参数校验失败")
	// ErrRendering 报表生成失败
	ErrRendering = errors.New("报表生成失败")
)
