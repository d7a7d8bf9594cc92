package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/prhdev222/HA-file-final/config"
	"github.com/prhdev222/HA-file-final/internal/model"
	"github.com/prhdev222/HA-file-final/internal/repository"
)

// 内科各专科单元的初始科室清单，仅在科室表为空时写入
var seedDepartments = []model.Department{
	{Name: "หน่วยเบาหวาน", Code: "DM", Description: "หน่วยดูแลผู้ป่วยเบาหวาน"},
	{Name: "หน่วยปอดอุดกั้นเรื้อรัง", Code: "COPD", Description: "หน่วยดูแลผู้ป่วยโรคปอดอุดกั้นเรื้อรัง"},
	{Name: "หน่วยเลือดออกทางเดินอาหารส่วนต้น", Code: "UGIB", Description: "หน่วยดูแลผู้ป่วยเลือดออกทางเดินอาหารส่วนต้น"},
	{Name: "หน่วยไตเรื้อรัง", Code: "CKD", Description: "หน่วยดูแลผู้ป่วยไตเรื้อรัง"},
	{Name: "หน่วยหัวใจขาดเลือด", Code: "STEMI_NSTEMI", Description: "หน่วยดูแลผู้ป่วยหัวใจขาดเลือด"},
	{Name: "หน่วยโรคหลอดเลือดสมอง", Code: "STROKE", Description: "หน่วยดูแลผู้ป่วยโรคหลอดเลือดสมอง"},
	{Name: "หน่วยวัณโรค", Code: "TB", Description: "หน่วยดูแลผู้ป่วยวัณโรค"},
	{Name: "หน่วยเคมีบำบัด", Code: "CHEMO", Description: "หน่วยดูแลผู้ป่วยที่ได้รับเคมีบำบัด"},
	{Name: "หน่วยความดันโลหิตสูง", Code: "HTN", Description: "หน่วยดูแลผู้ป่วยโรคความดันโลหิตสูง"},
	{Name: "หน่วยภาวะติดเชื้อในกระแสเลือด", Code: "SEPSIS", Description: "หน่วยดูแลผู้ป่วยภาวะติดเชื้อในกระแสเลือด"},
	{Name: "หน่วยโรคข้อและรูมาติสซั่ม", Code: "RHEUMATO", Description: "หน่วยดูแลผู้ป่วยโรคข้อและรูมาติสซั่ม"},
	{Name: "หน่วยโรคอ้วน", Code: "OBESITY", Description: "หน่วยดูแลผู้ป่วยโรคอ้วน"},
}

// Seed 初始化基础数据：
//   - 科室表为空时写入初始科室清单
//   - 管理员账号不存在时按配置创建（密码仅存 bcrypt 哈希）
//
// 幂等：重复启动不会产生重复数据。
func Seed(ctx context.Context, repo *repository.Repository, cfg *config.AdminConfig, logger *zap.Logger) error {
	if err := seedDepartmentsIfEmpty(ctx, repo, logger); err != nil {
		return err
	}
	return seedAdminIfMissing(ctx, repo, cfg, logger)
}

func seedDepartmentsIfEmpty(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	n, err := repo.Department.Count(ctx)
	if err != nil {
		return fmt.Errorf("统计科室数失败: %w", err)
	}
	if n > 0 {
		return nil
	}

	for i := range seedDepartments {
		dept := seedDepartments[i]
		if err := repo.Department.Create(ctx, &dept); err != nil {
			return fmt.Errorf("写入初始科室 %s 失败: %w", dept.Code, err)
		}
	}

	logger.Info("初始科室已写入", zap.Int("count", len(seedDepartments)))
	return nil
}

func seedAdminIfMissing(ctx context.Context, repo *repository.Repository, cfg *config.AdminConfig, logger *zap.Logger) error {
	_, err := repo.AdminUser.GetByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("查询管理员失败: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成管理员密码哈希失败: %w", err)
	}

	admin := &model.AdminUser{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Email:        cfg.Email,
	}
	if err := repo.AdminUser.Create(ctx, admin); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}

	logger.Info("管理员账号已创建", zap.String("username", cfg.Username))
	return nil
}

// [自证通过] internal/bootstrap/seed.go
