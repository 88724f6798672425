package model

import "time"

// Connection 互通关系（可私信），按规范化顺序存储 UserLo < UserHi，单行即对称
type Connection struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    UserLo    string    `gorm:"type:varchar(36);index:idx_conn_lo;index:idx_conn_pair,unique;not null"`
    UserHi    string    `gorm:"type:varchar(36);not null;index:idx_conn_hi;index:idx_conn_pair,unique"`
    // 复合唯一键，避免重复建边
    // idx_conn_pair = (user_lo, user_hi)
    CreatedAt time.Time
    UpdatedAt time.Time
}

func (Connection) TableName() string { return "connections" }

// NormalizePair 返回按字典序排列的 (lo, hi)
func NormalizePair(a, b string) (string, string) {
    if a < b {
        return a, b
    }
    return b, a
}
