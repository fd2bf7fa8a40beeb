// @title        User Records API
// @version      1.0
// @description  使用者資料管理服務的後端 API 文件
// @host         localhost:3001
// @BasePath     /api
package main

import (
	"fmt"
	"os"

	_ "user-records/docs" // 引入 swag 產出的 docs
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
