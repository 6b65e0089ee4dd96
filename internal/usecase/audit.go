package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shibez0112/Ecommerce/internal/domain/model"
	repo "github.com/shibez0112/Ecommerce/internal/repository"

	"gorm.io/datatypes"
)

// 監査ログ1件分
type auditEntry struct {
	Actor    int64
	Action   model.AuditAction
	Resource model.AuditResourceType
	ID       int64
	Before   interface{}
	After    interface{}
}

func writeAudit(ctx context.Context, logs repo.AuditLogRepository, e auditEntry, now time.Time) error {
	before, err := toJSON(e.Before)
	if err != nil {
		return err
	}
	after, err := toJSON(e.After)
	if err != nil {
		return err
	}

	return logs.Create(ctx, model.AuditLog{
		ActorUserID:  e.Actor,
		Action:       e.Action,
		ResourceType: e.Resource,
		ResourceID:   e.ID,
		Before:       before,
		After:        after,
		CreatedAt:    now,
	})
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
