package model

import (
	"time"

	"gorm.io/datatypes"
)

// 管理者操作の種類
type AuditAction string

const (
	AuditActionBlockUser         AuditAction = "BLOCK_USER"
	AuditActionUnblockUser       AuditAction = "UNBLOCK_USER"
	AuditActionForceLogout       AuditAction = "FORCE_LOGOUT"
	AuditActionDeleteUser        AuditAction = "DELETE_USER"
	AuditActionDeleteProduct     AuditAction = "DELETE_PRODUCT"
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceUser    AuditResourceType = "user"
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	Before       datatypes.JSON    `gorm:"type:jsonb" json:"before"`
	After        datatypes.JSON    `gorm:"type:jsonb" json:"after"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}
