package dbsession

// EntityState 实体在会话中的跟踪状态
type EntityState int

const (
	// Detached 未被会话跟踪
	Detached EntityState = iota
	// Unchanged 已跟踪,与数据库一致
	Unchanged
	// Added 待插入
	Added
	// Modified 待整行更新
	Modified
	// Deleted 待删除
	Deleted
)

func (s EntityState) String() string {
	switch s {
	case Detached:
		return "Detached"
	case Unchanged:
		return "Unchanged"
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// pending 是否有待提交的变更
func (s EntityState) pending() bool {
	return s == Added || s == Modified || s == Deleted
}

// Entry 会话对单个实体的跟踪记录
type Entry struct {
	session *Session
	entity  any
	state   EntityState
}

// Entity 被跟踪的实体指针
func (e *Entry) Entity() any {
	return e.entity
}

// State 当前状态
func (e *Entry) State() EntityState {
	return e.state
}

// SetState 手动修改状态
// 置为Detached会停止跟踪;从Detached置为其他状态会重新纳入跟踪
func (e *Entry) SetState(state EntityState) {
	if state == e.state {
		return
	}
	e.state = state
	if state == Detached {
		e.session.untrack(e)
		return
	}
	e.session.track(e)
}
