package dbsession

import "context"

type sessionKey struct{}

// WithSession 把会话注入Context(HTTP中间件为每个请求调用一次)
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext 从Context取出会话
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
