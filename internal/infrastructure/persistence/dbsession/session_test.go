package dbsession

import (
	"context"
	"path/filepath"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookapi/pkg/metrics"
)

// note 测试用实体
type note struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Text string `gorm:"size:50;not null"`
}

func (n note) EntityID() int { return n.ID }

// newTestDB 每个测试一个独立的sqlite文件库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func countNotes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&note{}).Count(&n).Error)
	return n
}

func TestSaveChanges_Insert(t *testing.T) {
	db := newTestDB(t)
	s := New(db)
	notes := Set[note](s)

	n := &note{Text: "first"}
	entry := notes.Add(n)
	assert.Equal(t, Added, entry.State())
	assert.True(t, s.HasChanges())

	affected, err := s.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.Positive(t, n.ID, "提交后应回填主键")
	assert.Equal(t, Unchanged, entry.State())
	assert.False(t, s.HasChanges())
	assert.EqualValues(t, 1, countNotes(t, db))
}

func TestSaveChanges_NothingPending(t *testing.T) {
	s := New(newTestDB(t))

	affected, err := s.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSaveChanges_MultipleEntitiesOneCommit(t *testing.T) {
	db := newTestDB(t)
	s := New(db)
	notes := Set[note](s)

	notes.Add(&note{Text: "a"})
	notes.Add(&note{Text: "b"})
	notes.Add(&note{Text: "c"})

	affected, err := s.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, affected)
	assert.EqualValues(t, 3, countNotes(t, db))
}

func TestSaveChanges_Update(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&note{Text: "old"}).Error)

	s := New(db)
	notes := Set[note](s)
	found, err := notes.Find(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, found)

	found.Text = "new"
	entry := notes.Update(found)
	assert.Equal(t, Modified, entry.State())

	_, err = s.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unchanged, entry.State())

	var reloaded note
	require.NoError(t, db.First(&reloaded, 1).Error)
	assert.Equal(t, "new", reloaded.Text)
}

func TestSaveChanges_UpdateReplacesTrackedInstance(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&note{Text: "old"}).Error)

	s := New(db)
	notes := Set[note](s)
	tracked, err := notes.Find(context.Background(), 1)
	require.NoError(t, err)

	replacement := &note{ID: 1, Text: "replaced"}
	notes.Update(replacement)
	assert.Equal(t, Detached, s.Entry(tracked).State(), "同主键的旧实例应停止跟踪")

	_, err = s.SaveChanges(context.Background())
	require.NoError(t, err)

	var reloaded note
	require.NoError(t, db.First(&reloaded, 1).Error)
	assert.Equal(t, "replaced", reloaded.Text)
}

func TestSaveChanges_UpdateUnknownIDInserts(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	Set[note](s).Update(&note{ID: 42, Text: "upsert"})
	_, err := s.SaveChanges(context.Background())
	require.NoError(t, err)

	var reloaded note
	require.NoError(t, db.First(&reloaded, 42).Error)
	assert.Equal(t, "upsert", reloaded.Text)
}

func TestSaveChanges_Delete(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&note{Text: "doomed"}).Error)

	s := New(db)
	notes := Set[note](s)
	found, err := notes.Find(context.Background(), 1)
	require.NoError(t, err)

	entry := notes.Remove(found)
	assert.Equal(t, Deleted, entry.State())

	affected, err := s.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.Equal(t, Detached, s.Entry(found).State())
	assert.Zero(t, countNotes(t, db))
}

func TestRemove_AddedEntityIsUnstaged(t *testing.T) {
	s := New(newTestDB(t))
	notes := Set[note](s)

	n := &note{Text: "never"}
	notes.Add(n)
	entry := notes.Remove(n)

	assert.Equal(t, Detached, entry.State())
	assert.False(t, s.HasChanges())
}

func TestSaveChanges_FailureResetsEntries(t *testing.T) {
	metrics.InitMetrics()
	failures := commitFailures(t)

	db := newTestDB(t)
	require.NoError(t, db.Create(&note{Text: "existing"}).Error)

	s := New(db)
	notes := Set[note](s)
	existing, err := notes.Find(context.Background(), 1)
	require.NoError(t, err)
	existing.Text = "changed"
	modified := notes.Update(existing)
	added := notes.Add(&note{Text: "new"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.SaveChanges(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled, "错误应原样返回")

	assert.Equal(t, Unchanged, modified.State())
	assert.Equal(t, Detached, added.State())
	assert.False(t, s.HasChanges())
	assert.EqualValues(t, 1, countNotes(t, db), "回滚后不应写入")
	assert.Equal(t, failures+1, commitFailures(t))
}

func commitFailures(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.DBCommitsTotal.WithLabelValues("failure").Write(&m))
	return m.Counter.GetValue()
}

func TestFind(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&note{Text: "hello"}).Error)
	s := New(db)
	notes := Set[note](s)

	t.Run("不存在返回nil", func(t *testing.T) {
		found, err := notes.Find(context.Background(), 999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("存在则以Unchanged跟踪", func(t *testing.T) {
		found, err := notes.Find(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "hello", found.Text)
		assert.Equal(t, Unchanged, s.Entry(found).State())

		again, err := notes.Find(context.Background(), 1)
		require.NoError(t, err)
		assert.Same(t, found, again, "同一会话内同主键返回同一实例")
	})
}

func TestAll(t *testing.T) {
	db := newTestDB(t)
	notes := Set[note](New(db))

	rows, err := notes.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	require.NoError(t, db.Create(&[]note{{Text: "a"}, {Text: "b"}, {Text: "c"}}).Error)

	rows, err = notes.All(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i+1, row.ID)
	}
}

func TestEntry_SetState(t *testing.T) {
	s := New(newTestDB(t))
	n := &note{ID: 7, Text: "x"}

	entry := s.Entry(n)
	assert.Equal(t, Detached, entry.State())

	entry.SetState(Modified)
	assert.Same(t, entry, s.Entry(n))
	assert.True(t, s.HasChanges())

	entry.SetState(Detached)
	assert.False(t, s.HasChanges())
	assert.NotSame(t, entry, s.Entry(n))
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := New(newTestDB(t))
	got, ok := FromContext(WithSession(context.Background(), s))
	assert.True(t, ok)
	assert.Same(t, s, got)
}

func TestEntityState_String(t *testing.T) {
	assert.Equal(t, "Added", Added.String())
	assert.Equal(t, "Detached", Detached.String())
	assert.Equal(t, "Unknown", EntityState(99).String())
}
