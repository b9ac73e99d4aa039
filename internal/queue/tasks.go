package queue

import (
	"encoding/json"

	"github.com/swiftcart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLowStockNotify 低库存告警任务
	TaskLowStockNotify = constants.TaskLowStockNotify
	// TaskDailySalesReport 销售日报任务
	TaskDailySalesReport = constants.TaskDailySalesReport
)

// LowStockNotifyPayload 低库存告警任务载荷
type LowStockNotifyPayload struct {
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
}

// DailySalesReportPayload 销售日报任务载荷
type DailySalesReportPayload struct {
	// Date 统计日期（YYYY-MM-DD，按配置时区），为空表示当天
	Date string `json:"date"`
}

// NewLowStockNotifyTask 创建低库存告警任务
func NewLowStockNotifyTask(payload LowStockNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockNotify, body), nil
}

// NewDailySalesReportTask 创建销售日报任务
func NewDailySalesReportTask(payload DailySalesReportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailySalesReport, body), nil
}
