package constants

const (
	// QueueDefault 默认队列名称
	QueueDefault = "default"

	// TaskLowStockNotify 低库存告警邮件任务
	TaskLowStockNotify = "stock:low_notify"
	// TaskDailySalesReport 每日销售汇总邮件任务
	TaskDailySalesReport = "sales:daily_report"

	// DefaultLowStockThreshold 默认低库存阈值
	DefaultLowStockThreshold = 5
	// DefaultReportTimezone 默认销售日报时区
	DefaultReportTimezone = "Africa/Cairo"
	// DefaultReportDailyAt 默认销售日报发送时刻（HH:MM）
	DefaultReportDailyAt = "18:00"
)
