// Package quota 提供会话每日生成次数的建议性配额
package quota

import (
	"context"
	"time"

	"hookgenie-api/internal/config"
	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/domain/repository"
	"hookgenie-api/pkg/logger"
	"hookgenie-api/pkg/metrics"
)

const (
	DefaultSoftLimit    = 45
	DefaultNominalLimit = 50
)

// Reservation 一次预留的结果
type Reservation struct {
	Reserved bool
	// Count 预留成功时为自增后的计数，失败时为当日已有计数
	Count int
}

// Snapshot 会话当日用量
type Snapshot struct {
	Date         string `json:"date"`
	Count        int    `json:"count"`
	SoftLimit    int    `json:"soft_limit"`
	NominalLimit int    `json:"nominal_limit"`
	Remaining    int    `json:"remaining"`
}

// UsageGovernor 建议性的每日用量计数。
// 存储异常时放行（预留返回 true，计数返回 0）并记录日志。
type UsageGovernor struct {
	repo         repository.UsageCounterRepository
	softLimit    int
	nominalLimit int
	now          func() time.Time
}

func NewUsageGovernor(repo repository.UsageCounterRepository, cfg *config.Config) *UsageGovernor {
	soft, nominal := DefaultSoftLimit, DefaultNominalLimit
	if cfg != nil {
		if cfg.Features.Usage.SoftLimit > 0 {
			soft = cfg.Features.Usage.SoftLimit
		}
		if cfg.Features.Usage.NominalLimit > 0 {
			nominal = cfg.Features.Usage.NominalLimit
		}
	}
	return &UsageGovernor{
		repo:         repo,
		softLimit:    soft,
		nominalLimit: nominal,
		now:          time.Now,
	}
}

// WithClock 替换时钟（测试用）
func (g *UsageGovernor) WithClock(now func() time.Time) *UsageGovernor {
	g.now = now
	return g
}

func (g *UsageGovernor) SoftLimit() int    { return g.softLimit }
func (g *UsageGovernor) NominalLimit() int { return g.nominalLimit }

func (g *UsageGovernor) today() string {
	return entity.UsageDay(g.now())
}

// CheckAndReserve 当日计数未达软上限时加一并返回 true
func (g *UsageGovernor) CheckAndReserve(ctx context.Context, sessionID string) bool {
	return g.Reserve(ctx, sessionID).Reserved
}

// Reserve 与 CheckAndReserve 相同，同时返回计数
func (g *UsageGovernor) Reserve(ctx context.Context, sessionID string) Reservation {
	count, ok, err := g.repo.IncrementIfBelow(ctx, sessionID, g.today(), g.softLimit)
	if err != nil {
		metrics.UsageReservationTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "usage counter unavailable, allowing generation", err)
		return Reservation{Reserved: true}
	}
	if !ok {
		metrics.UsageReservationTotal.WithLabelValues("denied").Inc()
		return Reservation{Reserved: false, Count: g.CurrentCount(ctx, sessionID)}
	}
	metrics.UsageReservationTotal.WithLabelValues("reserved").Inc()
	return Reservation{Reserved: true, Count: count}
}

// CurrentCount 返回当日计数，不修改存储
func (g *UsageGovernor) CurrentCount(ctx context.Context, sessionID string) int {
	c, err := g.repo.Get(ctx, sessionID)
	if err != nil {
		logger.Error(ctx, "failed to read usage counter", err)
		return 0
	}
	if c == nil {
		return 0
	}
	return c.CountOn(g.today())
}

// Remaining 给定计数距上游名义额度的剩余次数
func (g *UsageGovernor) Remaining(count int) int {
	return remaining(g.nominalLimit, count)
}

// Snapshot 当日用量概览
func (g *UsageGovernor) Snapshot(ctx context.Context, sessionID string) Snapshot {
	count := g.CurrentCount(ctx, sessionID)
	return Snapshot{
		Date:         g.today(),
		Count:        count,
		SoftLimit:    g.softLimit,
		NominalLimit: g.nominalLimit,
		Remaining:    g.Remaining(count),
	}
}

func remaining(limit, count int) int {
	if r := limit - count; r > 0 {
		return r
	}
	return 0
}
