package service

import "errors"

// 哨兵错误：对外统一语义，隐藏底层实现细节。
// handler.mapServiceError 负责把它们翻译成 HTTP 状态码。
var (
	// ErrInvalidInput 请求参数不合法
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal 内部错误（对外不暴露细节）
	ErrInternal = errors.New("internal server error")

	// ErrInvalidCredentials 用户名或密码错误（登录时统一返回，防止用户枚举）
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrCannotDeleteSelf   = errors.New("cannot delete yourself")

	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasChildren = errors.New("category has children")
	// ErrCategoryCycle 表示把分类挂到自己或自己的后代下面。
	ErrCategoryCycle = errors.New("category cannot be moved under itself")

	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")

	ErrStatusNotFound      = errors.New("status not found")
	ErrStatusAlreadyExists = errors.New("status already exists")
	// ErrSystemStatus 系统状态不能删除
	ErrSystemStatus = errors.New("system status cannot be deleted")

	// ErrInvalidReorder 重排请求里的 id 集合与当前分组不一致
	ErrInvalidReorder = errors.New("reorder ids do not match the group")

	ErrAppealNotFound = errors.New("appeal not found")
	// ErrEmailRequired 非匿名诉求必须留邮箱
	ErrEmailRequired = errors.New("email is required for non-anonymous appeals")
)
