package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/tienda-tcg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSessionRepository 会话购物车映射数据访问接口
type CartSessionRepository interface {
	GetByKey(sessionKey string) (*models.CartSession, error)
	SaveCartID(sessionKey, cartID string) error
	Touch(sessionKey string) error
	DeleteUpdatedBefore(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormCartSessionRepository
}

// GormCartSessionRepository GORM 实现
type GormCartSessionRepository struct {
	db *gorm.DB
}

// NewCartSessionRepository 创建会话购物车仓库
func NewCartSessionRepository(db *gorm.DB) *GormCartSessionRepository {
	return &GormCartSessionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartSessionRepository) WithTx(tx *gorm.DB) *GormCartSessionRepository {
	if tx == nil {
		return r
	}
	return &GormCartSessionRepository{db: tx}
}

// GetByKey 按会话 key 查询，不存在返回 nil
func (r *GormCartSessionRepository) GetByKey(sessionKey string) (*models.CartSession, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return nil, nil
	}
	var row models.CartSession
	if err := r.db.Where("session_key = ?", sessionKey).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// SaveCartID 写入或覆盖会话对应的购物车 ID
func (r *GormCartSessionRepository) SaveCartID(sessionKey, cartID string) error {
	sessionKey = strings.TrimSpace(sessionKey)
	cartID = strings.TrimSpace(cartID)
	if sessionKey == "" || cartID == "" {
		return nil
	}
	now := time.Now()
	row := models.CartSession{
		SessionKey: sessionKey,
		CartID:     cartID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cart_id", "updated_at"}),
	}).Create(&row).Error
}

// Touch 刷新会话映射的最近使用时间
func (r *GormCartSessionRepository) Touch(sessionKey string) error {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return nil
	}
	return r.db.Model(&models.CartSession{}).
		Where("session_key = ?", sessionKey).
		Update("updated_at", time.Now()).Error
}

// DeleteUpdatedBefore 清理长期未更新的映射
func (r *GormCartSessionRepository) DeleteUpdatedBefore(before time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", before).Delete(&models.CartSession{})
	return result.RowsAffected, result.Error
}
