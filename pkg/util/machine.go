package util

import (
	"sync"

	"github.com/denisbrodbeck/machineid"
)

var (
	machineID     string
	machineIDOnce sync.Once
)

// GetMachineID returns an app-scoped hash of the host id, or "" when unavailable
// GetMachineID 获取当前机器的唯一标识符（按应用做哈希），获取失败返回空字符串
func GetMachineID() string {
	machineIDOnce.Do(func() {
		if id, err := machineid.ProtectedID("fast-note-link-service"); err == nil {
			machineID = id
		}
	})
	return machineID
}
