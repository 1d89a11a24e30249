package service

import "errors"

// 业务哨兵错误，handler 层据此映射 HTTP 状态码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidPassword    = errors.New("原密码不正确")
	ErrWeakPassword       = errors.New("密码不符合安全要求")
	ErrPasswordMismatch   = errors.New("两次输入的密码不一致")
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrEmailNotVerified   = errors.New("邮箱尚未验证")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrNotAuthorized      = errors.New("没有操作权限")

	ErrEmailServiceNotConfigured  = errors.New("邮件服务未配置")
	ErrEmailServiceDisabled       = errors.New("邮件服务未启用")
	ErrEmailRecipientRejected     = errors.New("收件地址被拒绝")
	ErrInvalidVerifyPurpose       = errors.New("不支持的验证码用途")
	ErrVerifyCodeInvalid          = errors.New("验证码错误")
	ErrVerifyCodeExpired          = errors.New("验证码已过期")
	ErrVerifyCodeTooFrequent      = errors.New("验证码发送过于频繁")
	ErrVerifyCodeAttemptsExceeded = errors.New("验证码尝试次数过多")

	ErrCaptchaRequired      = errors.New("需要验证码")
	ErrCaptchaInvalid       = errors.New("验证码不正确")
	ErrCaptchaConfigInvalid = errors.New("验证码配置无效")

	ErrCountryNameTaken  = errors.New("国家名称已存在")
	ErrStateNameTaken    = errors.New("省份名称在该国家下已存在")
	ErrCityNameTaken     = errors.New("城市名称在该省份下已存在")
	ErrCategoryNameTaken = errors.New("分类名称已存在")
	ErrCategoryInUse     = errors.New("分类下仍有商品")
	ErrProductNameTaken  = errors.New("商品名称已存在")
	ErrInvalidPrice      = errors.New("商品价格必须大于零")
	ErrInvalidStock      = errors.New("商品库存不能为负数")
	ErrNoCategories      = errors.New("商品至少需要一个分类")

	ErrProductNotAvailable = errors.New("商品不存在或已下架")
	ErrInvalidQuantity     = errors.New("数量必须大于零")
	ErrCartItemNotFound    = errors.New("购物车项不存在")
	ErrCartEmpty           = errors.New("购物车为空")

	ErrOrderNotFound     = errors.New("订单不存在")
	ErrInvalidTransition = errors.New("订单状态不允许流转")
	ErrInsufficientStock = errors.New("商品库存不足")
)
