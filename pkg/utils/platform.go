//go:build !mobile

package utils

import "os"

// IsMobile 是否运行在移动设备上
// 桌面端返回 false；设置 HERBSCAPE_MOBILE_EMULATE=1 可在本地模拟移动端（禁用窗口相关操作）
func IsMobile() bool {
	return os.Getenv("HERBSCAPE_MOBILE_EMULATE") == "1"
}
