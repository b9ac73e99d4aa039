package service

import "errors"

// 业务错误定义，handler 层用 errors.Is 映射为响应码。
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrCartItemNotFound 购物车项不存在
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCart 购物车为空，无法结算
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity 数量参数非法
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidUser 用户参数非法
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidProduct 商品参数非法
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmailServiceDisabled 邮件服务未启用
	ErrEmailServiceDisabled = errors.New("email service disabled")
	// ErrEmailServiceNotConfigured 邮件服务未配置
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	// ErrInvalidEmail 邮箱地址非法
	ErrInvalidEmail = errors.New("invalid email address")
)
