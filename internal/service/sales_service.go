package service

import (
	"strings"
	"time"

	"github.com/swiftcart/internal/constants"
	"github.com/swiftcart/internal/logger"
	"github.com/swiftcart/internal/models"
	"github.com/swiftcart/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductSales 单个商品的当日销售汇总
type ProductSales struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	Revenue   models.Money `json:"revenue"`
}

// DailySalesReport 销售日报
type DailySalesReport struct {
	Date         string         `json:"date"`
	Timezone     string         `json:"timezone"`
	OrderCount   int            `json:"order_count"`
	TotalRevenue models.Money   `json:"total_revenue"`
	Products     []ProductSales `json:"products"`
}

// SalesService 销售汇总服务
type SalesService struct {
	orderRepo repository.OrderRepository
	timezone  string
}

// NewSalesService 创建销售汇总服务
func NewSalesService(orderRepo repository.OrderRepository, timezone string) *SalesService {
	if strings.TrimSpace(timezone) == "" {
		timezone = constants.DefaultReportTimezone
	}
	return &SalesService{
		orderRepo: orderRepo,
		timezone:  timezone,
	}
}

// Location 报表统计时区，时区名非法时回退默认时区再回退 UTC。
func (s *SalesService) Location() *time.Location {
	loc, err := time.LoadLocation(s.timezone)
	if err == nil {
		return loc
	}
	logger.Warnw("report_timezone_invalid", "timezone", s.timezone, "error", err)
	loc, err = time.LoadLocation(constants.DefaultReportTimezone)
	if err == nil {
		return loc
	}
	return time.UTC
}

// GetTodaysSales 按配置时区汇总今天的销售数据
func (s *SalesService) GetTodaysSales() (*DailySalesReport, error) {
	loc := s.Location()
	return s.getSalesForDay(time.Now().In(loc), loc)
}

// GetSalesByDate 按日期（YYYY-MM-DD）汇总销售数据，日期为空表示今天。
func (s *SalesService) GetSalesByDate(date string) (*DailySalesReport, error) {
	loc := s.Location()
	date = strings.TrimSpace(date)
	if date == "" {
		return s.getSalesForDay(time.Now().In(loc), loc)
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, err
	}
	return s.getSalesForDay(day, loc)
}

// getSalesForDay 汇总指定自然日的订单。
// 商品分组按首次出现顺序排列，金额来自订单项的冻结价格。
func (s *SalesService) getSalesForDay(day time.Time, loc *time.Location) (*DailySalesReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	orders, err := s.orderRepo.ListCreatedBetween(start, end)
	if err != nil {
		return nil, err
	}

	report := &DailySalesReport{
		Date:         start.Format("2006-01-02"),
		Timezone:     loc.String(),
		OrderCount:   len(orders),
		TotalRevenue: models.NewMoneyFromDecimal(decimal.Zero),
		Products:     []ProductSales{},
	}

	totalRevenue := decimal.Zero
	productRevenue := map[uint]decimal.Decimal{}
	productIndex := map[uint]int{}
	for _, order := range orders {
		totalRevenue = totalRevenue.Add(order.Total.Decimal)
		for _, item := range order.Items {
			revenue := item.Subtotal().Decimal
			idx, seen := productIndex[item.ProductID]
			if !seen {
				name := ""
				if item.Product != nil {
					name = item.Product.Name
				}
				productIndex[item.ProductID] = len(report.Products)
				productRevenue[item.ProductID] = revenue
				report.Products = append(report.Products, ProductSales{
					ProductID: item.ProductID,
					Name:      name,
					Quantity:  item.Quantity,
					Revenue:   models.NewMoneyFromDecimal(revenue),
				})
				continue
			}
			report.Products[idx].Quantity += item.Quantity
			productRevenue[item.ProductID] = productRevenue[item.ProductID].Add(revenue)
			report.Products[idx].Revenue = models.NewMoneyFromDecimal(productRevenue[item.ProductID])
		}
	}
	report.TotalRevenue = models.NewMoneyFromDecimal(totalRevenue)
	return report, nil
}
