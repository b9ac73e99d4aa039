package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/swiftcart/internal/config"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// LowStockAlertInput 低库存告警邮件输入
type LowStockAlertInput struct {
	ProductID     uint
	ProductName   string
	StockQuantity int
	Threshold     int
}

// SendLowStockAlert 发送低库存告警邮件
func (s *EmailService) SendLowStockAlert(toEmail string, input LowStockAlertInput) error {
	subject, body := buildLowStockAlertContent(input)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendDailySalesReport 发送销售日报邮件
func (s *EmailService) SendDailySalesReport(toEmail string, report *DailySalesReport) error {
	if report == nil {
		return nil
	}
	subject, body := buildDailySalesReportContent(report)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail 发送自定义邮件
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "SMTP 配置测试邮件"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "这是一封来自 SwiftCart 的 SMTP 测试邮件，说明当前配置可正常发送。"
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

// buildLowStockAlertContent 生成低库存告警邮件内容
func buildLowStockAlertContent(input LowStockAlertInput) (string, string) {
	subject := fmt.Sprintf("低库存告警：%s", input.ProductName)
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("商品「%s」（ID: %d）库存告急。\n\n", input.ProductName, input.ProductID))
	buf.WriteString(fmt.Sprintf("当前库存：%d\n", input.StockQuantity))
	buf.WriteString(fmt.Sprintf("告警阈值：%d\n\n", input.Threshold))
	buf.WriteString("请及时补货。")
	return subject, buf.String()
}

// buildDailySalesReportContent 生成销售日报邮件内容
func buildDailySalesReportContent(report *DailySalesReport) (string, string) {
	subject := fmt.Sprintf("销售日报 %s", report.Date)
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("日期：%s（%s）\n", report.Date, report.Timezone))
	buf.WriteString(fmt.Sprintf("订单数：%d\n", report.OrderCount))
	buf.WriteString(fmt.Sprintf("总销售额：%s\n", report.TotalRevenue.String()))
	if len(report.Products) > 0 {
		buf.WriteString("\n商品明细：\n")
		for _, product := range report.Products {
			buf.WriteString(fmt.Sprintf("- %s（ID: %d）销量 %d，销售额 %s\n",
				product.Name, product.ProductID, product.Quantity, product.Revenue.String()))
		}
	} else {
		buf.WriteString("\n今日暂无订单。\n")
	}
	return subject, buf.String()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
