package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/provider"
	"github.com/swiftcart/internal/queue"
	"github.com/swiftcart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLowStockNotify, c.handleLowStockNotify)
	mux.HandleFunc(queue.TaskDailySalesReport, c.handleDailySalesReport)
}

func (c *Consumer) handleLowStockNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_low_stock_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LowStockNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_low_stock_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_low_stock_notify_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	adminEmail := strings.TrimSpace(c.Config.Cart.AdminEmail)
	if adminEmail == "" {
		logger.Debugw("worker_low_stock_notify_skip_empty_admin_email", "product_id", payload.ProductID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_low_stock_notify_skip_email_service_nil", "product_id", payload.ProductID)
		return nil
	}
	input := service.LowStockAlertInput{
		ProductID:     payload.ProductID,
		ProductName:   payload.ProductName,
		StockQuantity: payload.StockQuantity,
		Threshold:     payload.Threshold,
	}
	if err := c.EmailService.SendLowStockAlert(adminEmail, input); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_low_stock_notify_skip_email_unavailable", "product_id", payload.ProductID, "error", err)
			return nil
		}
		logger.Warnw("worker_low_stock_notify_send_failed",
			"product_id", payload.ProductID,
			"stock_quantity", payload.StockQuantity,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleDailySalesReport(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_daily_sales_report_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DailySalesReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_daily_sales_report_unmarshal_failed", "error", err)
		return err
	}
	if c.SalesService == nil {
		logger.Warnw("worker_daily_sales_report_skip_sales_service_nil")
		return nil
	}
	report, err := c.SalesService.GetSalesByDate(payload.Date)
	if err != nil {
		logger.Warnw("worker_daily_sales_report_build_failed", "date", payload.Date, "error", err)
		return err
	}
	adminEmail := strings.TrimSpace(c.Config.Cart.AdminEmail)
	if adminEmail == "" {
		logger.Debugw("worker_daily_sales_report_skip_empty_admin_email", "date", report.Date)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_daily_sales_report_skip_email_service_nil", "date", report.Date)
		return nil
	}
	if err := c.EmailService.SendDailySalesReport(adminEmail, report); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_daily_sales_report_skip_email_unavailable", "date", report.Date, "error", err)
			return nil
		}
		logger.Warnw("worker_daily_sales_report_send_failed", "date", report.Date, "error", err)
		return err
	}
	logger.Infow("worker_daily_sales_report_sent",
		"date", report.Date,
		"order_count", report.OrderCount,
		"total_revenue", report.TotalRevenue.String(),
	)
	return nil
}
