package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsValidEmail 邮箱格式校验
func IsValidEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// IsValidUsername 用户名仅允许字母数字及 _ . -
func IsValidUsername(username string) bool {
	return validate.Var(username, "required,min=3,max=30,excludesall= /\\") == nil
}

// NormalizeIdentity 用户名与邮箱统一去空格、小写
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
