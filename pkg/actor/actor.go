// Package actor 在context中传递当前操作人，用于created_by/updated_by审计字段
package actor

import "context"

// System 没有登录用户时的操作人（启动初始化、后台任务）
const System = "system"

type ctxKey struct{}

// WithName 把操作人写入context
func WithName(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, name)
}

// FromContext 读取操作人，没有则返回System
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return System
	}
	if name, ok := ctx.Value(ctxKey{}).(string); ok && name != "" {
		return name
	}
	return System
}
