package incident

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ixugo/goddd/pkg/orm"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// ListIncidents 读取当天的事件快照，顺序由仓储决定
// 时刻不带日期，更早入库的事件只保留给清理任务，不进入视图
func (c Core) ListIncidents(ctx context.Context) ([]*Incident, error) {
	items := make([]*Incident, 0, 16)
	today := startOfDay(c.now())
	if err := c.store.Incident().Find(ctx, &items, orm.Where("created_at >= ?", today)); err != nil {
		return nil, reason.ErrDB.Withf(`ListIncidents err[%s]`, err.Error())
	}
	return items, nil
}

// FindIncidents 在快照上叠加等级过滤与关键字搜索
func (c Core) FindIncidents(ctx context.Context, in *FindIncidentInput) ([]*Incident, error) {
	criterion, err := ParseCriterion(in.Severity)
	if err != nil {
		return nil, err
	}
	items, err := c.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}
	return Search(Filter(items, criterion), in.Q), nil
}

// GetIncident Query a single object
func (c Core) GetIncident(ctx context.Context, id string) (*Incident, error) {
	var out Incident
	if err := c.store.Incident().Get(ctx, &out, orm.Where("id=?", id)); err != nil {
		if orm.IsErrRecordNotFound(err) {
			return nil, reason.ErrNotFound.Withf(`Get id[%v] err[%s]`, id, err.Error())
		}
		return nil, reason.ErrDB.Withf(`Get id[%v] err[%s]`, id, err.Error())
	}
	return &out, nil
}

// AddIncident 数据入口，非法的等级、时间、时长在此拒绝，核心不再做校验
func (c Core) AddIncident(ctx context.Context, in *AddIncidentInput) (*Incident, error) {
	out, err := NewIncident(in)
	if err != nil {
		return nil, err
	}
	var exist Incident
	err = c.store.Incident().Get(ctx, &exist, orm.Where("id=?", out.ID))
	if err == nil {
		return nil, reason.ErrBadRequest.Withf(`incident id[%s] already exists`, out.ID)
	}
	if !orm.IsErrRecordNotFound(err) {
		return nil, reason.ErrDB.Withf(`Add id[%s] err[%s]`, out.ID, err.Error())
	}
	out.CreatedAt = c.now()
	if err := c.store.Incident().Add(ctx, out); err != nil {
		return nil, reason.ErrDB.Withf(`Add id[%s] err[%s]`, in.ID, err.Error())
	}
	slog.InfoContext(ctx, "incident added", "id", out.ID, "severity", out.Severity, "camera", out.Camera)
	return out, nil
}

// ReplaceIncidents 在一个事务内按 id 覆盖写入，入库时间记为当前时间
func (c Core) ReplaceIncidents(ctx context.Context, ins []AddIncidentInput) error {
	items := make([]*Incident, 0, len(ins))
	ids := make([]string, 0, len(ins))
	for i := range ins {
		v, err := NewIncident(&ins[i])
		if err != nil {
			return err
		}
		v.CreatedAt = c.now()
		items = append(items, v)
		ids = append(ids, v.ID)
	}
	if len(items) == 0 {
		return nil
	}
	err := c.store.Incident().Session(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("id IN ?", ids).Delete(&Incident{}).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return reason.ErrDB.Withf(`ReplaceIncidents err[%s]`, err.Error())
	}
	return nil
}

// NewIncident 校验并构造事件
func NewIncident(in *AddIncidentInput) (*Incident, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, reason.ErrBadRequest.Withf("incident id is required")
	}
	severity, err := ParseSeverity(in.Severity)
	if err != nil {
		return nil, err
	}
	ts, err := ParseClockTime(in.Timestamp)
	if err != nil {
		return nil, err
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return nil, reason.ErrBadRequest.Withf("duration_minutes[%v] must not be negative", *in.DurationMinutes)
	}

	var out Incident
	if err := copier.Copy(&out, in); err != nil {
		slog.Error("Copy", "err", err)
	}
	out.ID = id
	out.Severity = severity
	out.Timestamp = ts
	return &out, nil
}
