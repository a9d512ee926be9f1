package api_router

import (
	"encoding/json"
	"expvar"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
)

// Expvar 导出 expvar 运行时指标（memstats、cmdline 等），输出 JSON
func Expvar(c *gin.Context) {
	vars := make(map[string]json.RawMessage)
	expvar.Do(func(kv expvar.KeyValue) {
		vars[kv.Key] = json.RawMessage(kv.Value.String())
	})

	body, err := sonic.Marshal(vars)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
