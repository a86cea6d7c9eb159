// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testioc

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ecodeclub/kbites/internal/pkg/database"
	"github.com/ego-component/egorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db         *egorm.Component
	dbInitOnce sync.Once
)

// InitDB 单元测试用 SQLite 文件库，不需要启动 MySQL。
// 只有一个连接，并发的事务会排队执行
func InitDB() *egorm.Component {
	dbInitOnce.Do(func() {
		dir, err := os.MkdirTemp("", "kbites-test-*")
		if err != nil {
			panic(err)
		}
		dsn := filepath.Join(dir, "kbites.db") + "?_busy_timeout=5000"
		gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			// 唯一索引冲突翻译成 gorm.ErrDuplicatedKey
			TranslateError: true,
		})
		if err != nil {
			panic(err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
		if err = database.NewGormTracingPlugin().Initialize(gdb); err != nil {
			panic(err)
		}
		db = gdb
	})
	return db
}
