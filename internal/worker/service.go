package worker

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/swiftcart/internal/config"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	consumer  *Consumer
	reportCfg config.ReportConfig
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, reportCfg config.ReportConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:      "worker",
		server:    server,
		mux:       mux,
		consumer:  consumer,
		reportCfg: reportCfg,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.QueueClient != nil && s.consumer.SalesService != nil {
		go s.runDailyReportLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runDailyReportLoop 在配置时区的每日固定时刻投递销售日报任务。
func (s *Service) runDailyReportLoop(ctx context.Context) {
	loc := s.consumer.SalesService.Location()
	hour, minute := parseDailyAt(s.reportCfg.DailyAt)
	for {
		next := nextDailyAt(time.Now().In(loc), hour, minute)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		payload := queue.DailySalesReportPayload{Date: next.Format("2006-01-02")}
		if err := s.consumer.QueueClient.EnqueueDailySalesReport(payload, asynq.MaxRetry(3)); err != nil {
			logger.Warnw("worker_daily_sales_report_enqueue_failed", "date", payload.Date, "error", err)
		}
	}
}

// parseDailyAt 解析 HH:MM，非法时回退 18:00。
func parseDailyAt(raw string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) == 2 {
		hour, err1 := strconv.Atoi(parts[0])
		minute, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil && hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			return hour, minute
		}
	}
	logger.Warnw("worker_daily_report_time_invalid", "daily_at", raw)
	return 18, 0
}

// nextDailyAt 计算下一个目标时刻，今天已过则取明天。
func nextDailyAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
